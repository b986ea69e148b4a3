package ports

import (
	"context"
	"qibla-zakat-service/internal/domain"
)

// Contract for retrieving gold and silver reference prices.
type PriceProvider interface {
	// Return the price table quoted in the given currency.
	GetPrices(ctx context.Context, currency domain.Currency) (domain.PriceTable, error)
}
