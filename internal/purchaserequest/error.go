package purchaserequest

import "errors"

var (
	ErrRequestNotFound   = errors.New("purchase request not found")
	ErrUnknownProduct    = errors.New("product does not exist")
	ErrInvalidQuantity   = errors.New("requested quantity must be at least 1")
	ErrInvalidStatus     = errors.New("invalid purchase request status")
	ErrInvalidTransition = errors.New("purchase request status transition not allowed")
	ErrNotEditable       = errors.New("purchase request can no longer be edited")
	ErrEmptyUpdate       = errors.New("nothing to update")
)
