package postgres

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	"github.com/jackc/pgx/v5"
)

const (
	wishlistCols  = `id, user_id, product_id, created_at`
	orderCols     = `id, user_id, status, total_cents, created_at`
	orderItemCols = `id, order_id, product_id, qty, price_cents, created_at`
)

func scanWishlist(row pgx.Row) (market.Wishlist, error) {
	var w market.Wishlist
	err := row.Scan(&w.ID, &w.UserID, &w.ProductID, &w.CreatedAt)
	w.CreatedAt = w.CreatedAt.UTC()
	return w, err
}

func scanOrder(row pgx.Row) (market.Order, error) {
	var o market.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalCents, &o.CreatedAt)
	o.CreatedAt = o.CreatedAt.UTC()
	return o, err
}

func scanOrderItem(row pgx.Row) (market.OrderItem, error) {
	var it market.OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &it.PriceCents, &it.CreatedAt)
	it.CreatedAt = it.CreatedAt.UTC()
	return it, err
}

// ---- wishlist ----

func (s *Store) GetWishlistByUserID(ctx context.Context, userID int64) ([]market.WishlistEntry, error) {
	var out []market.WishlistEntry
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+wishlistCols+` FROM wishlist WHERE user_id=$1 ORDER BY id`, userID)
		ws, err := collect(rows, err, scanWishlist)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(ws))
		for _, w := range ws {
			ids = append(ids, w.ProductID)
		}
		products, err := productsByID(ctx, tx, ids)
		if err != nil {
			return err
		}
		out = make([]market.WishlistEntry, 0, len(ws))
		for _, w := range ws {
			p, ok := products[w.ProductID]
			if !ok {
				return storage.MissingProduct("wishlist item", w.ID, w.ProductID)
			}
			out = append(out, market.WishlistEntry{Wishlist: w, Product: p.Clone()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) AddToWishlist(ctx context.Context, in market.NewWishlist) (market.Wishlist, error) {
	w := in.Build(0, s.stamp())
	err := s.DB.QueryRow(ctx, `
		INSERT INTO wishlist(user_id, product_id, created_at) VALUES ($1, $2, $3) RETURNING id`,
		w.UserID, w.ProductID, w.CreatedAt).Scan(&w.ID)
	if err != nil {
		return market.Wishlist{}, err
	}
	return w, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, id int64) (bool, error) {
	ct, err := s.DB.Exec(ctx, `DELETE FROM wishlist WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// ---- orders ----

func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64) ([]market.Order, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+orderCols+` FROM orders WHERE user_id=$1 ORDER BY id`, userID)
	return collect(rows, err, scanOrder)
}

// CreateOrder inserts the order and every item in one transaction. Items
// carry the order's id and creation time.
func (s *Store) CreateOrder(ctx context.Context, in market.NewOrder, items []market.NewOrderItem) (market.Order, error) {
	o := in.Build(0, s.stamp())

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return market.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, status, total_cents, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		o.UserID, string(o.Status), o.TotalCents, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return market.Order{}, err
	}

	for _, it := range items {
		row := it.Build(0, o)
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, qty, price_cents, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			row.OrderID, row.ProductID, row.Qty, row.PriceCents, row.CreatedAt); err != nil {
			return market.Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return market.Order{}, err
	}
	return o, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (market.OrderDetail, bool, error) {
	var (
		out   market.OrderDetail
		found bool
	)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		rows, err := tx.Query(ctx, `SELECT `+orderItemCols+` FROM order_items WHERE order_id=$1 ORDER BY id`, id)
		items, err := collect(rows, err, scanOrderItem)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		products, err := productsByID(ctx, tx, ids)
		if err != nil {
			return err
		}
		lines := make([]market.OrderLine, 0, len(items))
		for _, it := range items {
			p, ok := products[it.ProductID]
			if !ok {
				return storage.MissingProduct("order item", it.ID, it.ProductID)
			}
			lines = append(lines, market.OrderLine{OrderItem: it, Product: p.Clone()})
		}
		out = market.OrderDetail{Order: o, Items: lines}
		return nil
	})
	if err != nil {
		return market.OrderDetail{}, false, err
	}
	return out, found, nil
}
