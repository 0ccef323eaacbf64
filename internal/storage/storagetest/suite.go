// Package storagetest holds the behaviour every storage engine must share.
// Engine packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) storage.Storage

func Run(t *testing.T, newStore Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"CreateThenGet", testCreateThenGet},
		{"IDsNeverReused", testIDsNeverReused},
		{"ProductDefaults", testProductDefaults},
		{"ProductFilters", testProductFilters},
		{"UpdateProduct", testUpdateProduct},
		{"UpdateUnknown", testUpdateUnknown},
		{"DeleteProduct", testDeleteProduct},
		{"Shops", testShops},
		{"Offers", testOffers},
		{"Wishlist", testWishlist},
		{"WishlistDanglingProduct", testWishlistDanglingProduct},
		{"CreateOrder", testCreateOrder},
		{"OrderDanglingProduct", testOrderDanglingProduct},
		{"SessionStore", testSessionStore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { tc.fn(t, newStore(t)) })
	}
}

func testCreateThenGet(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	u, err := s.CreateUser(ctx, market.NewUser{Username: "ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.False(t, u.IsSeller)
	got, ok, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u, got)

	byName, ok, err := s.GetUserByUsername(ctx, "ann")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, byName.ID)
	_, ok, err = s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := s.CreateProduct(ctx, market.NewProduct{SellerID: u.ID, Name: "lamp", Category: "home", PriceCents: 1500})
	require.NoError(t, err)
	gp, ok, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, gp)

	sh, err := s.CreateShop(ctx, market.NewShop{OwnerID: u.ID, Name: "corner", Category: "home", Lat: market.Ptr(1.5)})
	require.NoError(t, err)
	gs, ok, err := s.GetShopByID(ctx, sh.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sh, gs)

	_, ok, err = s.GetUser(ctx, u.ID+1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testIDsNeverReused(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a, err := s.CreateProduct(ctx, market.NewProduct{Name: "a"})
	require.NoError(t, err)
	ok, err := s.DeleteProduct(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	b, err := s.CreateProduct(ctx, market.NewProduct{Name: "b"})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func testProductDefaults(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "plain"})
	require.NoError(t, err)
	assert.Nil(t, p.ImageURL)
	assert.Equal(t, 0, p.Stock)

	p, err = s.CreateProduct(ctx, market.NewProduct{Name: "full", Stock: market.Ptr(4), ImageURL: market.Ptr("x.png")})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, "x.png", *p.ImageURL)

	// returned records are snapshots
	*p.ImageURL = "changed.png"
	again, _, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "x.png", *again.ImageURL)
}

func testProductFilters(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	mk := func(seller int64, cat string) {
		_, err := s.CreateProduct(ctx, market.NewProduct{SellerID: seller, Name: cat, Category: cat})
		require.NoError(t, err)
	}
	mk(1, "electronics")
	mk(1, "books")
	mk(2, "electronics")

	all, err := s.GetProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	elec, err := s.GetProducts(ctx, "electronics")
	require.NoError(t, err)
	require.Len(t, elec, 2)
	for _, p := range elec {
		assert.Equal(t, "electronics", p.Category)
	}

	none, err := s.GetProducts(ctx, "garden")
	require.NoError(t, err)
	assert.Empty(t, none)

	bySeller, err := s.GetProductsBySellerID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, bySeller, 2)
}

func testUpdateProduct(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "hammer", Category: "tools"})
	require.NoError(t, err)

	got, ok, err := s.UpdateProduct(ctx, p.ID, market.ProductPatch{Stock: market.Ptr(5)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, "tools", got.Category)
	assert.Equal(t, "hammer", got.Name)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	stored, _, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	got, ok, err = s.UpdateProduct(ctx, p.ID, market.ProductPatch{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func testUpdateUnknown(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "only"})
	require.NoError(t, err)

	_, ok, err := s.UpdateProduct(ctx, p.ID+1000, market.ProductPatch{Stock: market.Ptr(9)})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.UpdateShop(ctx, 999999, market.ShopPatch{Name: market.Ptr("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.GetProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []market.Product{p}, all)
}

func testDeleteProduct(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "gone"})
	require.NoError(t, err)

	ok, err := s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func testShops(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a, err := s.CreateShop(ctx, market.NewShop{OwnerID: 1, Name: "a", Category: "food"})
	require.NoError(t, err)
	assert.Nil(t, a.ImageURL)
	assert.Nil(t, a.Lat)
	assert.Nil(t, a.Lng)
	assert.Nil(t, a.IsOpen)
	assert.Nil(t, a.Rating)
	assert.Nil(t, a.Distance)
	_, err = s.CreateShop(ctx, market.NewShop{OwnerID: 2, Name: "b", Category: "books", IsOpen: market.Ptr(true)})
	require.NoError(t, err)

	food, err := s.GetShops(ctx, "food")
	require.NoError(t, err)
	require.Len(t, food, 1)
	assert.Equal(t, a.ID, food[0].ID)

	all, err := s.GetShops(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owned, err := s.GetShopsByOwnerID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.True(t, *owned[0].IsOpen)

	up, ok, err := s.UpdateShop(ctx, a.ID, market.ShopPatch{Rating: market.Ptr(4.5), IsOpen: market.Ptr(false)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4.5, *up.Rating)
	assert.False(t, *up.IsOpen)
	assert.Equal(t, "food", up.Category)
	assert.Nil(t, up.Lat)
}

func testOffers(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	o1, err := s.CreateOffer(ctx, market.NewOffer{ShopID: 1, Title: "10% off", Discount: 10})
	require.NoError(t, err)
	_, err = s.CreateOffer(ctx, market.NewOffer{ShopID: 2, Title: "bogo"})
	require.NoError(t, err)

	all, err := s.GetOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byShop, err := s.GetOffersByShopID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []market.Offer{o1}, byShop)
}

func testWishlist(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "kettle"})
	require.NoError(t, err)
	w, err := s.AddToWishlist(ctx, market.NewWishlist{UserID: 7, ProductID: p.ID})
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, market.NewWishlist{UserID: 8, ProductID: p.ID})
	require.NoError(t, err)

	rows, err := s.GetWishlistByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, w, rows[0].Wishlist)
	assert.Equal(t, p, rows[0].Product)

	ok, err := s.RemoveFromWishlist(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.RemoveFromWishlist(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err = s.GetWishlistByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testWishlistDanglingProduct(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "doomed"})
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, market.NewWishlist{UserID: 1, ProductID: p.ID})
	require.NoError(t, err)
	_, err = s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)

	rows, err := s.GetWishlistByUserID(ctx, 1)
	require.ErrorIs(t, err, storage.ErrIntegrity)
	assert.Nil(t, rows)

	var ie *storage.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "product", ie.Ref)
	assert.Equal(t, p.ID, ie.RefID)
}

func testCreateOrder(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p1, err := s.CreateProduct(ctx, market.NewProduct{Name: "pen", PriceCents: 100})
	require.NoError(t, err)
	p2, err := s.CreateProduct(ctx, market.NewProduct{Name: "ink", PriceCents: 250})
	require.NoError(t, err)

	o, err := s.CreateOrder(ctx, market.NewOrder{UserID: 1, TotalCents: 450}, []market.NewOrderItem{
		{ProductID: p1.ID, Qty: 2, PriceCents: 100},
		{ProductID: p2.ID, Qty: 1, PriceCents: 250},
	})
	require.NoError(t, err)
	assert.Equal(t, market.StatusPending, o.Status)

	d, ok, err := s.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, o, d.Order)
	require.Len(t, d.Items, 2)

	byProduct := map[int64]market.OrderLine{}
	for _, l := range d.Items {
		assert.Equal(t, o.ID, l.OrderID)
		assert.True(t, o.CreatedAt.Equal(l.CreatedAt))
		assert.Equal(t, l.ProductID, l.Product.ID)
		byProduct[l.ProductID] = l
	}
	assert.Equal(t, p1, byProduct[p1.ID].Product)
	assert.Equal(t, 2, byProduct[p1.ID].Qty)
	assert.Equal(t, p2, byProduct[p2.ID].Product)
	assert.NotEqual(t, byProduct[p1.ID].ID, byProduct[p2.ID].ID)

	paid, err := s.CreateOrder(ctx, market.NewOrder{UserID: 1, Status: market.Ptr(market.StatusPaid)}, nil)
	require.NoError(t, err)
	assert.Equal(t, market.StatusPaid, paid.Status)
	_, err = s.CreateOrder(ctx, market.NewOrder{UserID: 2}, nil)
	require.NoError(t, err)

	mine, err := s.GetOrdersByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	empty, ok, err := s.GetOrderByID(ctx, paid.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, empty.Items)

	_, ok, err = s.GetOrderByID(ctx, paid.ID+1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testOrderDanglingProduct(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	p, err := s.CreateProduct(ctx, market.NewProduct{Name: "temp"})
	require.NoError(t, err)
	o, err := s.CreateOrder(ctx, market.NewOrder{UserID: 1}, []market.NewOrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)
	_, err = s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)

	_, _, err = s.GetOrderByID(ctx, o.ID)
	assert.ErrorIs(t, err, storage.ErrIntegrity)

	// the order row itself is untouched
	list, err := s.GetOrdersByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testSessionStore(t *testing.T, s storage.Storage) {
	assert.NotNil(t, s.SessionStore())
	assert.Same(t, s.SessionStore(), s.SessionStore())
}
