package market

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	IsSeller  bool      `json:"isSeller"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"priceCents"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Shop fields other than the identity ones are nullable; a nil pointer
// means the value was never supplied.
type Shop struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Address     string    `json:"address"`
	ImageURL    *string   `json:"imageUrl"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	IsOpen      *bool     `json:"isOpen"`
	Rating      *float64  `json:"rating"`
	Distance    *float64  `json:"distance"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Wishlist struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Offer struct {
	ID          int64     `json:"id"`
	ShopID      int64     `json:"shopId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Discount    int       `json:"discount"` // percent
	CreatedAt   time.Time `json:"createdAt"`
}

type Order struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Status     Status    `json:"status"`
	TotalCents int       `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderItem struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	ProductID  int64     `json:"productId"`
	Qty        int       `json:"qty"`
	PriceCents int       `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with p.
func (p Product) Clone() Product {
	p.ImageURL = clonePtr(p.ImageURL)
	return p
}

// Clone returns a copy that shares no pointers with s.
func (s Shop) Clone() Shop {
	s.ImageURL = clonePtr(s.ImageURL)
	s.Lat = clonePtr(s.Lat)
	s.Lng = clonePtr(s.Lng)
	s.IsOpen = clonePtr(s.IsOpen)
	s.Rating = clonePtr(s.Rating)
	s.Distance = clonePtr(s.Distance)
	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr is a convenience for building inputs and patches.
func Ptr[T any](v T) *T { return &v }
