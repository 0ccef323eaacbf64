package memory

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

func (s *Store) GetProducts(_ context.Context, category string) ([]market.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if category == "" {
		return s.products.scan(nil), nil
	}
	return s.products.scan(func(p market.Product) bool { return p.Category == category }), nil
}

func (s *Store) GetProductByID(_ context.Context, id int64) (market.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products.get(id)
	return p, ok, nil
}

func (s *Store) GetProductsBySellerID(_ context.Context, sellerID int64) ([]market.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.scan(func(p market.Product) bool { return p.SellerID == sellerID }), nil
}

func (s *Store) CreateProduct(_ context.Context, in market.NewProduct) (market.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := in.Build(s.products.seq.Next(), s.now())
	s.products.put(p.ID, p)
	return p.Clone(), nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, patch market.ProductPatch) (market.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products.get(id)
	if !ok {
		return market.Product{}, false, nil
	}
	next := cur.Apply(patch)
	s.products.put(id, next)
	return next, true, nil
}

// DeleteProduct leaves wishlist rows and order items that reference the
// product in place; reading them back fails with an integrity error.
func (s *Store) DeleteProduct(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.delete(id), nil
}

func (s *Store) GetShops(_ context.Context, category string) ([]market.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if category == "" {
		return s.shops.scan(nil), nil
	}
	return s.shops.scan(func(sh market.Shop) bool { return sh.Category == category }), nil
}

func (s *Store) GetShopByID(_ context.Context, id int64) (market.Shop, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shops.get(id)
	return sh, ok, nil
}

func (s *Store) GetShopsByOwnerID(_ context.Context, ownerID int64) ([]market.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shops.scan(func(sh market.Shop) bool { return sh.OwnerID == ownerID }), nil
}

func (s *Store) CreateShop(_ context.Context, in market.NewShop) (market.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := in.Build(s.shops.seq.Next(), s.now())
	s.shops.put(sh.ID, sh)
	return sh.Clone(), nil
}

func (s *Store) UpdateShop(_ context.Context, id int64, patch market.ShopPatch) (market.Shop, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.shops.get(id)
	if !ok {
		return market.Shop{}, false, nil
	}
	next := cur.Apply(patch)
	s.shops.put(id, next)
	return next, true, nil
}
