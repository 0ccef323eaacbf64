// Package storage defines the repository contract shared by every backing
// engine. Callers depend on Storage only and never on a concrete engine.
//
// Lookups report absence through their bool result; a missing record is
// never an error. Deletes report whether a record existed. Joins that hit a
// dangling foreign key fail with an *IntegrityError.
package storage

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/session"
)

type Users interface {
	GetUser(ctx context.Context, id int64) (market.User, bool, error)
	// GetUserByUsername returns the first user with that username.
	GetUserByUsername(ctx context.Context, username string) (market.User, bool, error)
	CreateUser(ctx context.Context, in market.NewUser) (market.User, error)
}

type Products interface {
	// GetProducts lists every product, or only those in category when it is non-empty.
	GetProducts(ctx context.Context, category string) ([]market.Product, error)
	GetProductByID(ctx context.Context, id int64) (market.Product, bool, error)
	GetProductsBySellerID(ctx context.Context, sellerID int64) ([]market.Product, error)
	CreateProduct(ctx context.Context, in market.NewProduct) (market.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch market.ProductPatch) (market.Product, bool, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

// Shops mirrors Products without a delete: shops cannot be removed.
type Shops interface {
	GetShops(ctx context.Context, category string) ([]market.Shop, error)
	GetShopByID(ctx context.Context, id int64) (market.Shop, bool, error)
	GetShopsByOwnerID(ctx context.Context, ownerID int64) ([]market.Shop, error)
	CreateShop(ctx context.Context, in market.NewShop) (market.Shop, error)
	UpdateShop(ctx context.Context, id int64, patch market.ShopPatch) (market.Shop, bool, error)
}

type Wishlists interface {
	GetWishlistByUserID(ctx context.Context, userID int64) ([]market.WishlistEntry, error)
	AddToWishlist(ctx context.Context, in market.NewWishlist) (market.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, id int64) (bool, error)
}

type Offers interface {
	GetOffers(ctx context.Context) ([]market.Offer, error)
	GetOffersByShopID(ctx context.Context, shopID int64) ([]market.Offer, error)
	CreateOffer(ctx context.Context, in market.NewOffer) (market.Offer, error)
}

type Orders interface {
	GetOrdersByUserID(ctx context.Context, userID int64) ([]market.Order, error)
	// CreateOrder writes the order and all of its items as one unit. Only the
	// order is returned; items are read back through GetOrderByID.
	CreateOrder(ctx context.Context, in market.NewOrder, items []market.NewOrderItem) (market.Order, error)
	GetOrderByID(ctx context.Context, id int64) (market.OrderDetail, bool, error)
}

// Storage is the full repository contract.
type Storage interface {
	Users
	Products
	Shops
	Wishlists
	Offers
	Orders

	// SessionStore is the session backend wired in at construction. It is
	// handed to the session middleware as is.
	SessionStore() session.Store
}
