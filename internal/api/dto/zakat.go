package dto

import (
	"math"
	"qibla-zakat-service/internal/domain"

	"github.com/shopspring/decimal"
)

type ZakatRequest struct {
	Cash              *float64 `json:"cash"`
	GoldWeightGrams   *float64 `json:"gold_weight_grams"`
	GoldKarat         string   `json:"gold_karat"`
	SilverWeightGrams *float64 `json:"silver_weight_grams"`
	OtherAssets       *float64 `json:"other_assets"`
	Liabilities       *float64 `json:"liabilities"`
	Currency          string   `json:"currency"`
}

type SimpleZakatRequest struct {
	Holdings    *float64 `json:"holdings"`
	Liabilities *float64 `json:"liabilities"`
	Currency    string   `json:"currency"`
}

// Money amounts are sent as strings fixed to the currency's minor units, e.g. "250.00".
type ZakatResponse struct {
	Currency       string `json:"currency"`
	Symbol         string `json:"symbol"`
	TotalAssets    string `json:"total_assets"`
	NetWealth      string `json:"net_wealth"`
	NisabThreshold string `json:"nisab_threshold"`
	IsDue          bool   `json:"is_due"`
	ZakatAmount    string `json:"zakat_amount"`
	Rate           string `json:"rate"`
}

type NisabResponse struct {
	Currency           string            `json:"currency"`
	Symbol             string            `json:"symbol"`
	GoldNisabGrams     float64           `json:"gold_nisab_grams"`
	SilverNisabGrams   float64           `json:"silver_nisab_grams"`
	GoldValue          string            `json:"gold_value"`
	SilverValue        string            `json:"silver_value"`
	Threshold          string            `json:"threshold"`
	GoldPricePerGram   map[string]string `json:"gold_price_per_gram"`
	SilverPricePerGram string            `json:"silver_price_per_gram"`
}

// Money rounds v half away from zero to the currency's minor units.
// Non-finite values have no decimal form and render as zero.
func Money(v float64, c domain.Currency) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero.StringFixed(c.Decimals)
	}
	return decimal.NewFromFloat(v).StringFixed(c.Decimals)
}

func NewZakatResponse(r domain.ZakatResult, c domain.Currency) ZakatResponse {
	return ZakatResponse{
		Currency:       c.Code,
		Symbol:         c.Symbol,
		TotalAssets:    Money(r.TotalAssets, c),
		NetWealth:      Money(r.NetWealth, c),
		NisabThreshold: Money(r.NisabThreshold, c),
		IsDue:          r.IsDue,
		ZakatAmount:    Money(r.ZakatAmount, c),
		Rate:           decimal.NewFromFloat(domain.ZakatRate).String(),
	}
}

func NewNisabResponse(n domain.Nisab, prices domain.PriceTable, c domain.Currency) NisabResponse {
	gold := make(map[string]string, len(prices.GoldPerGram))
	for k, v := range prices.GoldPerGram {
		gold[k.String()] = Money(v, c)
	}

	return NisabResponse{
		Currency:           c.Code,
		Symbol:             c.Symbol,
		GoldNisabGrams:     domain.GoldNisabGrams,
		SilverNisabGrams:   domain.SilverNisabGrams,
		GoldValue:          Money(n.GoldValue, c),
		SilverValue:        Money(n.SilverValue, c),
		Threshold:          Money(n.Threshold, c),
		GoldPricePerGram:   gold,
		SilverPricePerGram: Money(prices.SilverPerGram, c),
	}
}
