// Package memory is the in-process storage engine. Every entity type lives in
// its own keyed table with its own id sequence. One lock serializes all
// operations, so multi-row writes such as CreateOrder are never observed
// half done.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions session.Store

	users      *table[market.User]
	products   *table[market.Product]
	shops      *table[market.Shop]
	wishlist   *table[market.Wishlist]
	offers     *table[market.Offer]
	orders     *table[market.Order]
	orderItems *table[market.OrderItem]
}

var _ storage.Storage = (*Store)(nil)

type Option func(*Store)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store. A nil sessions falls back to an in-process
// session store pruned once a day.
func New(sessions session.Store, opts ...Option) *Store {
	if sessions == nil {
		sessions = session.NewMemoryStore(session.DefaultPruneInterval)
	}
	s := &Store{
		now:        time.Now,
		sessions:   sessions,
		users:      newTable[market.User](nil),
		products:   newTable(market.Product.Clone),
		shops:      newTable(market.Shop.Clone),
		wishlist:   newTable[market.Wishlist](nil),
		offers:     newTable[market.Offer](nil),
		orders:     newTable[market.Order](nil),
		orderItems: newTable[market.OrderItem](nil),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) SessionStore() session.Store { return s.sessions }

// ---- users ----

func (s *Store) GetUser(_ context.Context, id int64) (market.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.get(id)
	return u, ok, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (market.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.users.order {
		if u, ok := s.users.rows[id]; ok && u.Username == username {
			return u, true, nil
		}
	}
	return market.User{}, false, nil
}

func (s *Store) CreateUser(_ context.Context, in market.NewUser) (market.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := in.Build(s.users.seq.Next(), s.now())
	s.users.put(u.ID, u)
	return u, nil
}

// ---- offers ----

func (s *Store) GetOffers(_ context.Context) ([]market.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offers.scan(nil), nil
}

func (s *Store) GetOffersByShopID(_ context.Context, shopID int64) ([]market.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offers.scan(func(o market.Offer) bool { return o.ShopID == shopID }), nil
}

func (s *Store) CreateOffer(_ context.Context, in market.NewOffer) (market.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := in.Build(s.offers.seq.Next(), s.now())
	s.offers.put(o.ID, o)
	return o, nil
}
