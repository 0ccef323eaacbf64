package market

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	SellerID    *int64  `json:"sellerId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"priceCents,omitempty"`
	Category    *string `json:"category,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

type ShopPatch struct {
	OwnerID     *int64   `json:"ownerId,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Address     *string  `json:"address,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	IsOpen      *bool    `json:"isOpen,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

// Apply merges the supplied fields of patch onto p. ID and CreatedAt never change.
func (p Product) Apply(patch ProductPatch) Product {
	p = p.Clone()
	set(&p.SellerID, patch.SellerID)
	set(&p.Name, patch.Name)
	set(&p.Description, patch.Description)
	set(&p.PriceCents, patch.PriceCents)
	set(&p.Category, patch.Category)
	set(&p.Stock, patch.Stock)
	setPtr(&p.ImageURL, patch.ImageURL)
	return p
}

func (s Shop) Apply(patch ShopPatch) Shop {
	s = s.Clone()
	set(&s.OwnerID, patch.OwnerID)
	set(&s.Name, patch.Name)
	set(&s.Description, patch.Description)
	set(&s.Category, patch.Category)
	set(&s.Address, patch.Address)
	setPtr(&s.ImageURL, patch.ImageURL)
	setPtr(&s.Lat, patch.Lat)
	setPtr(&s.Lng, patch.Lng)
	setPtr(&s.IsOpen, patch.IsOpen)
	setPtr(&s.Rating, patch.Rating)
	setPtr(&s.Distance, patch.Distance)
	return s
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = clonePtr(v)
	}
}
