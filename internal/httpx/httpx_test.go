package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	st := memory.New(nil)
	r := NewRouter(nil)
	(&MarketHandler{Store: st}).Register(r)
	return st, r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	_, h := newServer(t)
	rec := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestProductsByCategory(t *testing.T) {
	st, h := newServer(t)
	ctx := context.Background()
	_, _ = st.CreateProduct(ctx, market.NewProduct{Name: "tea", Category: "drinks"})
	_, _ = st.CreateProduct(ctx, market.NewProduct{Name: "bread", Category: "bakery"})

	rec := do(h, http.MethodGet, "/products?category=drinks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ps []market.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "tea", ps[0].Name)

	rec = do(h, http.MethodGet, "/products", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	assert.Len(t, ps, 2)
}

func TestGetProduct(t *testing.T) {
	st, h := newServer(t)
	p, _ := st.CreateProduct(context.Background(), market.NewProduct{Name: "tea"})

	rec := do(h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got market.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Nil(t, got.ImageURL)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/products/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/products/abc", "").Code)
}

func TestWishlistIntegrityIs500(t *testing.T) {
	st, h := newServer(t)
	_, err := st.AddToWishlist(context.Background(), market.NewWishlist{UserID: 1, ProductID: 42})
	require.NoError(t, err)

	rec := do(h, http.MethodGet, "/users/1/wishlist", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "data integrity violation")
}

func TestCreateAndGetOrder(t *testing.T) {
	st, h := newServer(t)
	p, _ := st.CreateProduct(context.Background(), market.NewProduct{Name: "tea", PriceCents: 250})

	rec := do(h, http.MethodPost, "/orders",
		`{"userId":7,"totalCents":500,"items":[{"productId":1,"qty":2,"priceCents":250}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var o market.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, market.StatusPending, o.Status)

	rec = do(h, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d market.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.Len(t, d.Items, 1)
	assert.Equal(t, p.ID, d.Items[0].Product.ID)
	assert.Equal(t, o.ID, d.Items[0].OrderID)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/orders/5", "").Code)
}

func TestCreateOrderValidation(t *testing.T) {
	_, h := newServer(t)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/orders", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/orders", `{"userId":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/orders",
		`{"userId":1,"status":"lost","items":[{"productId":1,"qty":1}]}`).Code)
}

func TestShops(t *testing.T) {
	st, h := newServer(t)
	_, _ = st.CreateShop(context.Background(), market.NewShop{Name: "corner", Category: "grocery"})

	rec := do(h, http.MethodGet, "/shops?category=grocery", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ss []market.Shop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ss))
	require.Len(t, ss, 1)
	assert.Nil(t, ss[0].Rating)
}

func TestSessionsMiddleware(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	var seen []string
	h := Sessions(store, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFrom(r.Context())
		require.True(t, ok)
		seen = append(seen, s.ID)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	res := rec.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)

	_, ok, err := store.Get(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, seen, 3)
	assert.Equal(t, seen[0], seen[1])
	assert.NotEqual(t, "stale", seen[2])
	assert.NotEqual(t, seen[0], seen[2])
}

func TestNewAPIServesSessionsAndRoutes(t *testing.T) {
	st := memory.New(session.NewMemoryStore(time.Hour))
	var h http.Handler
	require.NotPanics(t, func() { h = NewAPI(st, time.Hour, nil) })

	rec := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)

	_, ok, err := st.SessionStore().Get(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.True(t, ok)
}

// lapsingStore reports every session as gone by the time it is touched.
type lapsingStore struct {
	*session.MemoryStore
}

func (lapsingStore) Touch(context.Context, string, time.Time) error { return session.ErrNotFound }

func TestSessionsReplacesSessionThatLapsed(t *testing.T) {
	store := lapsingStore{session.NewMemoryStore(time.Hour)}
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, session.Session{ID: "old", Expires: time.Now().Add(time.Minute)}))

	var got string
	h := Sessions(store, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFrom(r.Context())
		got = s.ID
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "old"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, got)
	assert.NotEqual(t, "old", got)
}
