package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Storage defines the persistence operations the catalog service requires.
// Operations on an unknown product id must return ErrProductNotFound.
// UpdateProduct applies the partial change atomically in a single statement,
// so concurrent updates resolve to last-write-wins per field set.
type Storage interface {
	CreateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, upd Update) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
