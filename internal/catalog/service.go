package catalog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/shopgate/pkg/logger"
)

// Service implements product catalog operations over a Storage backend.
// Authorization happens upstream in the token middleware; by the time a
// request reaches this service it is already authenticated.
type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// Option configures the catalog service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the catalog service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates and persists a new product, returning it with its
// generated id.
func (s *Service) Create(ctx context.Context, name, description string, price decimal.Decimal, stock int32) (*Product, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   s.now(),
	}

	if err := s.storage.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "product created",
		logger.ProductID(p.ID),
		logger.Component("catalog"),
	)

	return p, nil
}

// List returns all products ordered by creation time.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.storage.ListProducts(ctx)
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.storage.GetProduct(ctx, id)
}

// Update applies a partial change to a product. Fields left nil keep their
// stored values.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	if upd.Name != nil && *upd.Name == "" {
		return ErrMissingName
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		return ErrNegativePrice
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return ErrNegativeStock
	}

	if err := s.storage.UpdateProduct(ctx, id, upd); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "product updated",
		logger.ProductID(id),
		logger.Component("catalog"),
	)

	return nil
}

// Delete removes a product by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "product deleted",
		logger.ProductID(id),
		logger.Component("catalog"),
	)

	return nil
}
