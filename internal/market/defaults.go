package market

// Rule fills one optional field of T when the caller left it out.
type Rule[T any] struct {
	Field string
	Apply func(*T)
}

// Defaults is the per-entity table of optional-field rules. Every engine
// runs the table on creation input before materializing a record.
type Defaults[T any] []Rule[T]

func (d Defaults[T]) Apply(v T) T {
	for _, r := range d {
		r.Apply(&v)
	}
	return v
}

// Fields lists the optional fields the table covers, in declaration order.
func (d Defaults[T]) Fields() []string {
	out := make([]string, 0, len(d))
	for _, r := range d {
		out = append(out, r.Field)
	}
	return out
}

// Value defaults an absent field to def.
func Value[T, F any](field string, get func(*T) **F, def F) Rule[T] {
	return Rule[T]{Field: field, Apply: func(v *T) {
		if f := get(v); *f == nil {
			d := def
			*f = &d
		}
	}}
}

// Null keeps an absent field null.
func Null[T, F any](field string, get func(*T) **F) Rule[T] {
	return Rule[T]{Field: field, Apply: func(v *T) {}}
}

var UserDefaults = Defaults[NewUser]{
	Value("isSeller", func(u *NewUser) **bool { return &u.IsSeller }, false),
}

var ProductDefaults = Defaults[NewProduct]{
	Null("imageUrl", func(p *NewProduct) **string { return &p.ImageURL }),
	Value("stock", func(p *NewProduct) **int { return &p.Stock }, 0),
}

var ShopDefaults = Defaults[NewShop]{
	Null("imageUrl", func(s *NewShop) **string { return &s.ImageURL }),
	Null("lat", func(s *NewShop) **float64 { return &s.Lat }),
	Null("lng", func(s *NewShop) **float64 { return &s.Lng }),
	Null("isOpen", func(s *NewShop) **bool { return &s.IsOpen }),
	Null("rating", func(s *NewShop) **float64 { return &s.Rating }),
	Null("distance", func(s *NewShop) **float64 { return &s.Distance }),
}

var OrderDefaults = Defaults[NewOrder]{
	Value("status", func(o *NewOrder) **Status { return &o.Status }, StatusPending),
}
