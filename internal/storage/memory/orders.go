package memory

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
)

func (s *Store) GetWishlistByUserID(_ context.Context, userID int64) ([]market.WishlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.wishlist.scan(func(w market.Wishlist) bool { return w.UserID == userID })
	out := make([]market.WishlistEntry, 0, len(rows))
	for _, w := range rows {
		p, ok := s.products.get(w.ProductID)
		if !ok {
			return nil, storage.MissingProduct("wishlist item", w.ID, w.ProductID)
		}
		out = append(out, market.WishlistEntry{Wishlist: w, Product: p})
	}
	return out, nil
}

func (s *Store) AddToWishlist(_ context.Context, in market.NewWishlist) (market.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := in.Build(s.wishlist.seq.Next(), s.now())
	s.wishlist.put(w.ID, w)
	return w, nil
}

func (s *Store) RemoveFromWishlist(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.delete(id), nil
}

func (s *Store) GetOrdersByUserID(_ context.Context, userID int64) ([]market.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.scan(func(o market.Order) bool { return o.UserID == userID }), nil
}

// CreateOrder stores the order and its items under one lock hold. Nothing
// in between can fail, so no reader sees the order without its items.
func (s *Store) CreateOrder(_ context.Context, in market.NewOrder, items []market.NewOrderItem) (market.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := in.Build(s.orders.seq.Next(), s.now())
	s.orders.put(o.ID, o)
	for _, it := range items {
		row := it.Build(s.orderItems.seq.Next(), o)
		s.orderItems.put(row.ID, row)
	}
	return o, nil
}

func (s *Store) GetOrderByID(_ context.Context, id int64) (market.OrderDetail, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders.get(id)
	if !ok {
		return market.OrderDetail{}, false, nil
	}
	items := s.orderItems.scan(func(it market.OrderItem) bool { return it.OrderID == id })
	lines := make([]market.OrderLine, 0, len(items))
	for _, it := range items {
		p, ok := s.products.get(it.ProductID)
		if !ok {
			return market.OrderDetail{}, false, storage.MissingProduct("order item", it.ID, it.ProductID)
		}
		lines = append(lines, market.OrderLine{OrderItem: it, Product: p})
	}
	return market.OrderDetail{Order: o, Items: lines}, true, nil
}
