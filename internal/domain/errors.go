package domain

import "github.com/go-faster/errors"

var (
	// ErrProductNotFound is returned when a product, or its whole
	// (category, segment) bucket, is absent from the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrExistingProduct is returned when creating a product whose name
	// is already taken in the target bucket.
	ErrExistingProduct = errors.New("product already exists")

	// ErrInvalidPrice is returned for a non-positive price.
	ErrInvalidPrice = errors.New("price must be greater than zero")

	// ErrInvalidQuantity is returned for a negative quantity or delta.
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidSegment  = errors.New("segment not valid for category")
)
