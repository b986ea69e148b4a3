package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "prices:"

type cachedTable struct {
	Currency      string             `json:"currency"`
	GoldPerGram   map[string]float64 `json:"gold_per_gram"`
	SilverPerGram float64            `json:"silver_per_gram"`
}

// RedisPriceCache stores price tables per currency with a fixed TTL.
type RedisPriceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPriceCache(client *redis.Client, ttl time.Duration) *RedisPriceCache {
	return &RedisPriceCache{Client: client, TTL: ttl}
}

func (c *RedisPriceCache) Get(
	ctx context.Context,
	currency domain.Currency,
) (_ domain.PriceTable, _ bool, err error) {
	defer obs.Time(ctx, "prices.cache.Get")(&err)

	if c.Client == nil {
		return domain.PriceTable{}, false, errors.New("price cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, redisKeyPrefix+currency.Code).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PriceTable{}, false, nil
	}
	if err != nil {
		return domain.PriceTable{}, false, fmt.Errorf("get price cache %s: %w", currency, err)
	}

	var ct cachedTable
	if err := json.Unmarshal(raw, &ct); err != nil {
		return domain.PriceTable{}, false, fmt.Errorf("get price cache %s: decode: %w", currency, err)
	}

	gold := make(map[domain.Karat]float64, len(ct.GoldPerGram))
	for k, v := range ct.GoldPerGram {
		n, err := strconv.Atoi(k)
		if err != nil {
			return domain.PriceTable{}, false, fmt.Errorf("get price cache %s: karat key %q: %w", currency, k, err)
		}
		gold[domain.Karat(n)] = v
	}

	return domain.PriceTable{
		GoldPerGram:   gold,
		SilverPerGram: ct.SilverPerGram,
		Currency:      currency,
	}, true, nil
}

func (c *RedisPriceCache) Put(ctx context.Context, table domain.PriceTable) error {
	if c.Client == nil {
		return errors.New("price cache: redis client is nil")
	}
	if table.Currency.IsZero() {
		return errors.New("insert price cache: currency must not be empty")
	}

	ct := cachedTable{
		Currency:      table.Currency.Code,
		GoldPerGram:   make(map[string]float64, len(table.GoldPerGram)),
		SilverPerGram: table.SilverPerGram,
	}
	for k, v := range table.GoldPerGram {
		ct.GoldPerGram[strconv.Itoa(int(k))] = v
	}

	payload, err := json.Marshal(ct)
	if err != nil {
		return fmt.Errorf("insert price cache %s: encode: %w", table.Currency, err)
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+table.Currency.Code, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert price cache %s: %w", table.Currency, err)
	}

	return nil
}
