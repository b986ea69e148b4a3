package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Weights of gold and silver whose value defines the nisab.
	GoldNisabGrams   = 85.0
	SilverNisabGrams = 595.0

	ZakatRate = 0.025
)

// Karat is gold purity in parts per 24.
type Karat int

const (
	Karat24 Karat = 24
	Karat22 Karat = 22
	Karat18 Karat = 18
)

// SupportedKarats lists purities the calculator prices.
var SupportedKarats = []Karat{Karat24, Karat22, Karat18}

func (k Karat) String() string { return strconv.Itoa(int(k)) + "k" }

func (k Karat) Supported() bool {
	for _, s := range SupportedKarats {
		if k == s {
			return true
		}
	}
	return false
}

// ParseKarat accepts "24k", "24K" or "24". The result is not checked
// against SupportedKarats.
func ParseKarat(s string) (Karat, error) {
	t := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "k")
	n, err := strconv.Atoi(t)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("parse karat %q: %w", s, ErrUnknownKarat)
	}
	return Karat(n), nil
}

// Itemized holdings and debts supplied by the caller for one calculation.
type AssetLedger struct {
	Cash              float64
	GoldWeightGrams   float64
	GoldKarat         Karat
	SilverWeightGrams float64
	OtherAssets       float64
	Liabilities       float64
	Currency          Currency
}

// Reference prices per gram, expressed in Currency.
type PriceTable struct {
	GoldPerGram   map[Karat]float64
	SilverPerGram float64
	Currency      Currency
}

// GoldPrice returns the unit price for k.
func (p PriceTable) GoldPrice(k Karat) (float64, error) {
	if !k.Supported() {
		return 0, &UnknownKaratError{Karat: k}
	}
	v, ok := p.GoldPerGram[k]
	if !ok {
		return 0, &UnknownKaratError{Karat: k}
	}
	return v, nil
}

// Validate checks every price is finite and non-negative.
func (p PriceTable) Validate() error {
	for _, k := range SupportedKarats {
		v, ok := p.GoldPerGram[k]
		if !ok {
			continue
		}
		if !isFinite(v) || v < 0 {
			return &InvalidPriceError{Field: "gold_" + k.String(), Value: v}
		}
	}
	if !isFinite(p.SilverPerGram) || p.SilverPerGram < 0 {
		return &InvalidPriceError{Field: "silver", Value: p.SilverPerGram}
	}
	return nil
}

// Nisab is the minimum wealth on which zakat becomes due.
type Nisab struct {
	GoldValue   float64
	SilverValue float64
	Threshold   float64
}

type ZakatResult struct {
	TotalAssets    float64
	NetWealth      float64
	NisabThreshold float64
	IsDue          bool
	ZakatAmount    float64
}
