package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/shopgate/internal/catalog"
	"github.com/dmitrymomot/shopgate/pkg/pg"
)

// Prices travel as text in both directions so the numeric column round-trips
// exactly; converting through float64 would lose fixed-point precision.

// CreateProduct inserts a catalog record.
func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, stock, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		p.ID, p.Name, p.Description, p.Price.String(), p.Stock, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts returns all products ordered by creation time.
func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, price::text, stock, created_at
		 FROM products ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct fetches a single product, returning catalog.ErrProductNotFound
// for unknown ids.
func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, description, price::text, stock, created_at
		 FROM products WHERE id = $1`,
		id,
	)

	p, err := scanProduct(row.Scan)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateProduct applies a partial change in a single statement; COALESCE
// keeps stored values for fields the caller left nil.
func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, upd catalog.Update) error {
	var price *string
	if upd.Price != nil {
		v := upd.Price.String()
		price = &v
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4::numeric, price),
			stock       = COALESCE($5, stock)
		 WHERE id = $1`,
		id, upd.Name, upd.Description, price, upd.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product, returning catalog.ErrProductNotFound for
// unknown ids.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (*catalog.Product, error) {
	var (
		p        catalog.Product
		priceStr string
	)
	if err := scan(&p.ID, &p.Name, &p.Description, &priceStr, &p.Stock, &p.CreatedAt); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored price: %w", err)
	}
	p.Price = price

	return &p, nil
}
