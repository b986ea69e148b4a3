package ports

import (
	"context"
	"qibla-zakat-service/internal/domain"
)

// Optional storage for price tables between feed refreshes.
type PriceCache interface {
	// Return the cached table, reporting false on a miss.
	Get(ctx context.Context, currency domain.Currency) (domain.PriceTable, bool, error)
	Put(ctx context.Context, table domain.PriceTable) error
}
