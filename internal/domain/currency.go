package domain

import (
	"fmt"
	"strings"
)

// Currency represents a monetary unit with its display symbol and minor units.
type Currency struct {
	Code     string
	Symbol   string
	Decimals int32
}

var (
	EUR = Currency{Code: "EUR", Symbol: "€", Decimals: 2}
	USD = Currency{Code: "USD", Symbol: "$", Decimals: 2}
	GBP = Currency{Code: "GBP", Symbol: "£", Decimals: 2}
	MAD = Currency{Code: "MAD", Symbol: "DH", Decimals: 2}
)

var DefaultCurrency = EUR

// SupportedCurrencies in display order.
var SupportedCurrencies = []Currency{EUR, USD, GBP, MAD}

// ParseCurrency resolves an ISO code; an empty code yields DefaultCurrency.
func ParseCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return DefaultCurrency, nil
	}
	for _, s := range SupportedCurrencies {
		if s.Code == c {
			return s, nil
		}
	}
	return Currency{}, fmt.Errorf("parse currency %q: %w", code, ErrUnsupportedCurrency)
}

func (c Currency) String() string { return c.Code }

func (c Currency) IsZero() bool { return c.Code == "" }
