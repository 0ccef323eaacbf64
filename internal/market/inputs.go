package market

import "time"

// Creation inputs. Pointer fields are optional; see defaults.go for what an
// omitted field turns into.

type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	IsSeller *bool  `json:"isSeller,omitempty"`
}

type NewProduct struct {
	SellerID    int64   `json:"sellerId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceCents  int     `json:"priceCents"`
	Category    string  `json:"category"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

type NewShop struct {
	OwnerID     int64    `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	IsOpen      *bool    `json:"isOpen,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

type NewWishlist struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
}

type NewOffer struct {
	ShopID      int64  `json:"shopId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Discount    int    `json:"discount"`
}

type NewOrder struct {
	UserID     int64   `json:"userId"`
	Status     *Status `json:"status,omitempty"`
	TotalCents int     `json:"totalCents"`
}

// NewOrderItem has no order id: the store assigns the parent's.
type NewOrderItem struct {
	ProductID  int64 `json:"productId"`
	Qty        int   `json:"qty"`
	PriceCents int   `json:"priceCents"`
}

func (in NewUser) Build(id int64, at time.Time) User {
	in = UserDefaults.Apply(in)
	return User{
		ID:        id,
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		FullName:  in.FullName,
		IsSeller:  *in.IsSeller,
		CreatedAt: at,
	}
}

func (in NewProduct) Build(id int64, at time.Time) Product {
	in = ProductDefaults.Apply(in)
	return Product{
		ID:          id,
		SellerID:    in.SellerID,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Category:    in.Category,
		Stock:       *in.Stock,
		ImageURL:    clonePtr(in.ImageURL),
		CreatedAt:   at,
	}
}

func (in NewShop) Build(id int64, at time.Time) Shop {
	in = ShopDefaults.Apply(in)
	return Shop{
		ID:          id,
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Address:     in.Address,
		ImageURL:    in.ImageURL,
		Lat:         in.Lat,
		Lng:         in.Lng,
		IsOpen:      in.IsOpen,
		Rating:      in.Rating,
		Distance:    in.Distance,
		CreatedAt:   at,
	}.Clone()
}

func (in NewWishlist) Build(id int64, at time.Time) Wishlist {
	return Wishlist{ID: id, UserID: in.UserID, ProductID: in.ProductID, CreatedAt: at}
}

func (in NewOffer) Build(id int64, at time.Time) Offer {
	return Offer{
		ID:          id,
		ShopID:      in.ShopID,
		Title:       in.Title,
		Description: in.Description,
		Discount:    in.Discount,
		CreatedAt:   at,
	}
}

func (in NewOrder) Build(id int64, at time.Time) Order {
	in = OrderDefaults.Apply(in)
	return Order{ID: id, UserID: in.UserID, Status: *in.Status, TotalCents: in.TotalCents, CreatedAt: at}
}

// Build attaches the item to its parent order, inheriting the order's
// creation time.
func (in NewOrderItem) Build(id int64, parent Order) OrderItem {
	return OrderItem{
		ID:         id,
		OrderID:    parent.ID,
		ProductID:  in.ProductID,
		Qty:        in.Qty,
		PriceCents: in.PriceCents,
		CreatedAt:  parent.CreatedAt,
	}
}
