package prices

import (
	"context"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CachedPriceProvider consults Cache before Source and stores fresh tables.
// Cache failures are logged and never fail the lookup.
type CachedPriceProvider struct {
	Source ports.PriceProvider
	Cache  ports.PriceCache
	Log    zerolog.Logger
}

func (p *CachedPriceProvider) GetPrices(ctx context.Context, currency domain.Currency) (domain.PriceTable, error) {
	if p.Source == nil {
		return domain.PriceTable{}, errors.New("cached price provider: source is nil")
	}

	if p.Cache != nil {
		t, ok, err := p.Cache.Get(ctx, currency)
		if err != nil {
			p.Log.Warn().Err(err).Str("currency", currency.Code).Msg("price cache read failed")
		} else if ok {
			return t, nil
		}
	}

	t, err := p.Source.GetPrices(ctx, currency)
	if err != nil {
		return domain.PriceTable{}, err
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, t); err != nil {
			p.Log.Warn().Err(err).Str("currency", currency.Code).Msg("price cache write failed")
		}
	}

	return t, nil
}

// FallbackPriceProvider serves Fallback whenever Primary fails.
type FallbackPriceProvider struct {
	Primary  ports.PriceProvider
	Fallback ports.PriceProvider
	Log      zerolog.Logger
}

func (p *FallbackPriceProvider) GetPrices(ctx context.Context, currency domain.Currency) (domain.PriceTable, error) {
	t, err := p.Primary.GetPrices(ctx, currency)
	if err == nil {
		return t, nil
	}
	if ctx.Err() != nil {
		return domain.PriceTable{}, ctx.Err()
	}

	p.Log.Warn().Err(err).Str("currency", currency.Code).Msg("primary price source failed, using fallback")

	t, ferr := p.Fallback.GetPrices(ctx, currency)
	if ferr != nil {
		return domain.PriceTable{}, fmt.Errorf("fallback prices: %w", errors.Join(err, ferr))
	}
	return t, nil
}

// WarmAll fetches every currency concurrently so later requests hit the cache.
func WarmAll(ctx context.Context, provider ports.PriceProvider, currencies []domain.Currency) (map[string]domain.PriceTable, error) {
	tables := make([]domain.PriceTable, len(currencies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, c := range currencies {
		i, c := i, c
		g.Go(func() error {
			t, err := provider.GetPrices(gctx, c)
			if err != nil {
				return fmt.Errorf("warm prices %s: %w", c, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]domain.PriceTable, len(currencies))
	for i, c := range currencies {
		out[c.Code] = tables[i]
	}
	return out, nil
}
