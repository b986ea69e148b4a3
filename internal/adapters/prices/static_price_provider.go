package prices

import (
	"context"
	"maps"
	"qibla-zakat-service/internal/domain"
)

// DefaultTable holds reference prices per gram used when no feed is configured.
func DefaultTable() domain.PriceTable {
	return domain.PriceTable{
		GoldPerGram: map[domain.Karat]float64{
			domain.Karat24: 65,
			domain.Karat22: 60,
			domain.Karat18: 48,
		},
		SilverPerGram: 0.75,
		Currency:      domain.EUR,
	}
}

// StaticPriceProvider serves fixed price tables.
//
// Without an override for a currency the base table is returned as-is,
// relabelled with the requested currency.
type StaticPriceProvider struct {
	base      domain.PriceTable
	overrides map[string]domain.PriceTable
}

func NewStaticPriceProvider(base domain.PriceTable, overrides ...domain.PriceTable) *StaticPriceProvider {
	m := make(map[string]domain.PriceTable, len(overrides))
	for _, t := range overrides {
		m[t.Currency.Code] = t
	}
	return &StaticPriceProvider{base: base, overrides: m}
}

func (p *StaticPriceProvider) GetPrices(ctx context.Context, currency domain.Currency) (domain.PriceTable, error) {
	t, ok := p.overrides[currency.Code]
	if !ok {
		t = p.base
	}

	// Callers may mutate the map; hand out a copy.
	out := domain.PriceTable{
		GoldPerGram:   maps.Clone(t.GoldPerGram),
		SilverPerGram: t.SilverPerGram,
		Currency:      currency,
	}
	return out, nil
}
