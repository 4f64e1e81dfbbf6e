package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingName     = errors.New("product name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock must not be negative")
)
