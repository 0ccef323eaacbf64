package market

// WishlistEntry is a wishlist row joined with the product it points at.
type WishlistEntry struct {
	Wishlist
	Product Product `json:"product"`
}

type OrderLine struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderDetail is an order with its line items, each joined with its product.
type OrderDetail struct {
	Order
	Items []OrderLine `json:"items"`
}
