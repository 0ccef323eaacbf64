package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDefaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := NewProduct{SellerID: 1, Name: "drill", Category: "tools"}.Build(7, at)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, at, p.CreatedAt)
	assert.Nil(t, p.ImageURL)
	assert.Equal(t, 0, p.Stock)

	p = NewProduct{Stock: Ptr(3), ImageURL: Ptr("a.png")}.Build(8, at)
	assert.Equal(t, 3, p.Stock)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, "a.png", *p.ImageURL)
}

func TestShopDefaultsAreIndependent(t *testing.T) {
	s := NewShop{Name: "corner", Lat: Ptr(12.5)}.Build(1, time.Now())

	require.NotNil(t, s.Lat)
	assert.Equal(t, 12.5, *s.Lat)
	assert.Nil(t, s.Lng)
	assert.Nil(t, s.ImageURL)
	assert.Nil(t, s.IsOpen)
	assert.Nil(t, s.Rating)
	assert.Nil(t, s.Distance)
	assert.Equal(t, []string{"imageUrl", "lat", "lng", "isOpen", "rating", "distance"}, ShopDefaults.Fields())
}

func TestUserAndOrderDefaults(t *testing.T) {
	u := NewUser{Username: "ann"}.Build(1, time.Now())
	assert.False(t, u.IsSeller)

	u = NewUser{Username: "bob", IsSeller: Ptr(true)}.Build(2, time.Now())
	assert.True(t, u.IsSeller)

	o := NewOrder{UserID: 1}.Build(1, time.Now())
	assert.Equal(t, StatusPending, o.Status)

	o = NewOrder{UserID: 1, Status: Ptr(StatusPaid)}.Build(2, time.Now())
	assert.Equal(t, StatusPaid, o.Status)
}

func TestDefaultsDoNotShareState(t *testing.T) {
	a := OrderDefaults.Apply(NewOrder{})
	b := OrderDefaults.Apply(NewOrder{})
	*a.Status = StatusCancelled
	assert.Equal(t, StatusPending, *b.Status)
}

func TestOrderItemInheritsParent(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	parent := NewOrder{UserID: 4}.Build(9, at)
	it := NewOrderItem{ProductID: 3, Qty: 2}.Build(11, parent)

	assert.Equal(t, int64(11), it.ID)
	assert.Equal(t, int64(9), it.OrderID)
	assert.Equal(t, at, it.CreatedAt)
}

func TestProductApplyMergesSuppliedFields(t *testing.T) {
	at := time.Now()
	p := NewProduct{Name: "saw", Category: "tools"}.Build(1, at)

	got := p.Apply(ProductPatch{Stock: Ptr(5)})
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, "tools", got.Category)
	assert.Equal(t, "saw", got.Name)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, at, got.CreatedAt)
	assert.Equal(t, 0, p.Stock, "receiver must not change")
}

func TestShopApplyDoesNotAlias(t *testing.T) {
	s := NewShop{Name: "kiosk"}.Build(1, time.Now())
	rating := 4.5
	got := s.Apply(ShopPatch{Rating: &rating, IsOpen: Ptr(true)})
	rating = 1

	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.5, *got.Rating)
	assert.True(t, *got.IsOpen)
	assert.Nil(t, s.Rating)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("lost").Valid())
}
