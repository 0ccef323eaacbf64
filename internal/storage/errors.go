package storage

import (
	"errors"
	"fmt"
)

// ErrIntegrity marks a stored foreign key that points at a missing record.
var ErrIntegrity = errors.New("data integrity violation")

// IntegrityError names the row whose reference could not be resolved.
type IntegrityError struct {
	Entity string // e.g. "wishlist", "order item"
	ID     int64
	Ref    string // referenced entity, e.g. "product"
	RefID  int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s not found for %s %d (%s id %d)", e.Ref, e.Entity, e.ID, e.Ref, e.RefID)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

func MissingProduct(entity string, id, productID int64) error {
	return &IntegrityError{Entity: entity, ID: id, Ref: "product", RefID: productID}
}
