package postgres

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/jackc/pgx/v5"
)

const (
	userCols    = `id, username, password, email, full_name, is_seller, created_at`
	productCols = `id, seller_id, name, description, price_cents, category, stock, image_url, created_at`
	shopCols    = `id, owner_id, name, description, category, address, image_url, lat, lng, is_open, rating, distance, created_at`
	offerCols   = `id, shop_id, title, description, discount, created_at`
)

func scanUser(row pgx.Row) (market.User, error) {
	var u market.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.FullName, &u.IsSeller, &u.CreatedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, err
}

func scanProduct(row pgx.Row) (market.Product, error) {
	var p market.Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Stock, &p.ImageURL, &p.CreatedAt)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}

func scanShop(row pgx.Row) (market.Shop, error) {
	var s market.Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Category, &s.Address,
		&s.ImageURL, &s.Lat, &s.Lng, &s.IsOpen, &s.Rating, &s.Distance, &s.CreatedAt)
	s.CreatedAt = s.CreatedAt.UTC()
	return s, err
}

func scanOffer(row pgx.Row) (market.Offer, error) {
	var o market.Offer
	err := row.Scan(&o.ID, &o.ShopID, &o.Title, &o.Description, &o.Discount, &o.CreatedAt)
	o.CreatedAt = o.CreatedAt.UTC()
	return o, err
}

// ---- users ----

func (s *Store) GetUser(ctx context.Context, id int64) (market.User, bool, error) {
	return one[market.User](scanUser(s.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id)))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (market.User, bool, error) {
	return one[market.User](scanUser(s.DB.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username=$1 ORDER BY id LIMIT 1`, username)))
}

func (s *Store) CreateUser(ctx context.Context, in market.NewUser) (market.User, error) {
	u := in.Build(0, s.stamp())
	err := s.DB.QueryRow(ctx, `
		INSERT INTO users(username, password, email, full_name, is_seller, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		u.Username, u.Password, u.Email, u.FullName, u.IsSeller, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return market.User{}, err
	}
	return u, nil
}

// ---- products ----

func (s *Store) GetProducts(ctx context.Context, category string) ([]market.Product, error) {
	if category == "" {
		rows, err := s.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
		return collect(rows, err, scanProduct)
	}
	rows, err := s.DB.Query(ctx, `SELECT `+productCols+` FROM products WHERE category=$1 ORDER BY id`, category)
	return collect(rows, err, scanProduct)
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (market.Product, bool, error) {
	return one[market.Product](scanProduct(s.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)))
}

func (s *Store) GetProductsBySellerID(ctx context.Context, sellerID int64) ([]market.Product, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+productCols+` FROM products WHERE seller_id=$1 ORDER BY id`, sellerID)
	return collect(rows, err, scanProduct)
}

func (s *Store) CreateProduct(ctx context.Context, in market.NewProduct) (market.Product, error) {
	p := in.Build(0, s.stamp())
	err := s.DB.QueryRow(ctx, `
		INSERT INTO products(seller_id, name, description, price_cents, category, stock, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.SellerID, p.Name, p.Description, p.PriceCents, p.Category, p.Stock, p.ImageURL, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return market.Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch market.ProductPatch) (market.Product, bool, error) {
	var l setList
	addSet(&l, "seller_id", patch.SellerID)
	addSet(&l, "name", patch.Name)
	addSet(&l, "description", patch.Description)
	addSet(&l, "price_cents", patch.PriceCents)
	addSet(&l, "category", patch.Category)
	addSet(&l, "stock", patch.Stock)
	addSet(&l, "image_url", patch.ImageURL)
	if l.empty() {
		return s.GetProductByID(ctx, id)
	}
	sql, args := l.update("products", id, productCols)
	return one[market.Product](scanProduct(s.DB.QueryRow(ctx, sql, args...)))
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// productsByID loads the given products keyed by id. Missing ids are simply
// absent from the map; callers decide whether that is an integrity error.
func productsByID(ctx context.Context, q querier, ids []int64) (map[int64]market.Product, error) {
	out := make(map[int64]market.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `SELECT `+productCols+` FROM products WHERE id = ANY($1)`, ids)
	ps, err := collect(rows, err, scanProduct)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		out[p.ID] = p
	}
	return out, nil
}

// ---- shops ----

func (s *Store) GetShops(ctx context.Context, category string) ([]market.Shop, error) {
	if category == "" {
		rows, err := s.DB.Query(ctx, `SELECT `+shopCols+` FROM shops ORDER BY id`)
		return collect(rows, err, scanShop)
	}
	rows, err := s.DB.Query(ctx, `SELECT `+shopCols+` FROM shops WHERE category=$1 ORDER BY id`, category)
	return collect(rows, err, scanShop)
}

func (s *Store) GetShopByID(ctx context.Context, id int64) (market.Shop, bool, error) {
	return one[market.Shop](scanShop(s.DB.QueryRow(ctx, `SELECT `+shopCols+` FROM shops WHERE id=$1`, id)))
}

func (s *Store) GetShopsByOwnerID(ctx context.Context, ownerID int64) ([]market.Shop, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+shopCols+` FROM shops WHERE owner_id=$1 ORDER BY id`, ownerID)
	return collect(rows, err, scanShop)
}

func (s *Store) CreateShop(ctx context.Context, in market.NewShop) (market.Shop, error) {
	sh := in.Build(0, s.stamp())
	err := s.DB.QueryRow(ctx, `
		INSERT INTO shops(owner_id, name, description, category, address, image_url, lat, lng, is_open, rating, distance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		sh.OwnerID, sh.Name, sh.Description, sh.Category, sh.Address,
		sh.ImageURL, sh.Lat, sh.Lng, sh.IsOpen, sh.Rating, sh.Distance, sh.CreatedAt).Scan(&sh.ID)
	if err != nil {
		return market.Shop{}, err
	}
	return sh, nil
}

func (s *Store) UpdateShop(ctx context.Context, id int64, patch market.ShopPatch) (market.Shop, bool, error) {
	var l setList
	addSet(&l, "owner_id", patch.OwnerID)
	addSet(&l, "name", patch.Name)
	addSet(&l, "description", patch.Description)
	addSet(&l, "category", patch.Category)
	addSet(&l, "address", patch.Address)
	addSet(&l, "image_url", patch.ImageURL)
	addSet(&l, "lat", patch.Lat)
	addSet(&l, "lng", patch.Lng)
	addSet(&l, "is_open", patch.IsOpen)
	addSet(&l, "rating", patch.Rating)
	addSet(&l, "distance", patch.Distance)
	if l.empty() {
		return s.GetShopByID(ctx, id)
	}
	sql, args := l.update("shops", id, shopCols)
	return one[market.Shop](scanShop(s.DB.QueryRow(ctx, sql, args...)))
}

// ---- offers ----

func (s *Store) GetOffers(ctx context.Context) ([]market.Offer, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+offerCols+` FROM offers ORDER BY id`)
	return collect(rows, err, scanOffer)
}

func (s *Store) GetOffersByShopID(ctx context.Context, shopID int64) ([]market.Offer, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+offerCols+` FROM offers WHERE shop_id=$1 ORDER BY id`, shopID)
	return collect(rows, err, scanOffer)
}

func (s *Store) CreateOffer(ctx context.Context, in market.NewOffer) (market.Offer, error) {
	o := in.Build(0, s.stamp())
	err := s.DB.QueryRow(ctx, `
		INSERT INTO offers(shop_id, title, description, discount, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		o.ShopID, o.Title, o.Description, o.Discount, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return market.Offer{}, err
	}
	return o, nil
}
