package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Clients expect prices as JSON numbers, not quoted strings, so decimals
	// must marshal without quotes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog record. Price is an exact fixed-point decimal with
// two fractional digits; it never passes through a binary float.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	CreatedAt   time.Time       `json:"-"`
}

// Update carries a partial product change. Nil fields retain the stored
// value.
type Update struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int32
}
