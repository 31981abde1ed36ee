package product

import "errors"

var (
	ErrItemNotFound      = errors.New("product is not sold by this store")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrEmptyUpdate       = errors.New("nothing to update")
)
