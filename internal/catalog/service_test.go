package catalog_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopgate/internal/catalog"
)

type memStorage struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newMemStorage() *memStorage {
	return &memStorage{products: make(map[uuid.UUID]catalog.Product)}
}

func (m *memStorage) CreateProduct(_ context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = *p
	return nil
}

func (m *memStorage) ListProducts(_ context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStorage) GetProduct(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStorage) UpdateProduct(_ context.Context, id uuid.UUID, upd catalog.Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return catalog.ErrProductNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	m.products[id] = p
	return nil
}

func (m *memStorage) DeleteProduct(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestService_CreateGet(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(newMemStorage())
	ctx := context.Background()

	price := mustDecimal(t, "9.99")
	created, err := svc.Create(ctx, "Widget", "a widget", price, 5)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "a widget", got.Description)
	assert.True(t, got.Price.Equal(price), "price must round-trip exactly, got %s", got.Price)
	assert.Equal(t, int32(5), got.Stock)
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(newMemStorage())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "", mustDecimal(t, "1.00"), 1)
	assert.ErrorIs(t, err, catalog.ErrMissingName)

	_, err = svc.Create(ctx, "Widget", "", mustDecimal(t, "-0.01"), 1)
	assert.ErrorIs(t, err, catalog.ErrNegativePrice)

	_, err = svc.Create(ctx, "Widget", "", mustDecimal(t, "1.00"), -1)
	assert.ErrorIs(t, err, catalog.ErrNegativeStock)
}

func TestService_List_Ordering(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	svc := catalog.NewService(newMemStorage(), catalog.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, name, "", mustDecimal(t, "1.00"), 1)
		require.NoError(t, err)
	}

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "first", products[0].Name)
	assert.Equal(t, "third", products[2].Name)
}

func TestService_PartialUpdate(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(newMemStorage())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Widget", "a widget", mustDecimal(t, "9.99"), 5)
	require.NoError(t, err)

	stock := int32(7)
	require.NoError(t, svc.Update(ctx, created.ID, catalog.Update{Stock: &stock}))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name, "name must be untouched")
	assert.Equal(t, "a widget", got.Description, "description must be untouched")
	assert.True(t, got.Price.Equal(mustDecimal(t, "9.99")), "price must be untouched")
	assert.Equal(t, int32(7), got.Stock)
}

func TestService_Update_Validation(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(newMemStorage())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Widget", "", mustDecimal(t, "9.99"), 5)
	require.NoError(t, err)

	empty := ""
	assert.ErrorIs(t, svc.Update(ctx, created.ID, catalog.Update{Name: &empty}), catalog.ErrMissingName)

	neg := mustDecimal(t, "-1")
	assert.ErrorIs(t, svc.Update(ctx, created.ID, catalog.Update{Price: &neg}), catalog.ErrNegativePrice)

	badStock := int32(-1)
	assert.ErrorIs(t, svc.Update(ctx, created.ID, catalog.Update{Stock: &badStock}), catalog.ErrNegativeStock)

	one := int32(1)
	assert.ErrorIs(t, svc.Update(ctx, uuid.New(), catalog.Update{Stock: &one}), catalog.ErrProductNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(newMemStorage())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Widget", "", mustDecimal(t, "9.99"), 5)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), catalog.ErrProductNotFound)
}
