package services

import (
	"fmt"
	"math"
	"qibla-zakat-service/internal/domain"
)

// ComputeZakat evaluates an itemized ledger against the nisab.
//
// Gold held at any purity is valued at its own karat price, but the nisab is
// always priced from 24k gold and flat silver. Net wealth is not clamped; a
// negative value simply never reaches the threshold.
func ComputeZakat(ledger domain.AssetLedger, prices domain.PriceTable) (domain.ZakatResult, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"cash", ledger.Cash},
		{"gold_weight_grams", ledger.GoldWeightGrams},
		{"silver_weight_grams", ledger.SilverWeightGrams},
		{"other_assets", ledger.OtherAssets},
		{"liabilities", ledger.Liabilities},
	}
	for _, f := range fields {
		if err := validateAmount(f.name, f.value); err != nil {
			return domain.ZakatResult{}, fmt.Errorf("compute zakat: %w", err)
		}
	}

	goldPrice, err := prices.GoldPrice(ledger.GoldKarat)
	if err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute zakat: %w", err)
	}

	nisab, err := ComputeNisab(prices)
	if err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute zakat: %w", err)
	}

	totalAssets := ledger.Cash +
		ledger.GoldWeightGrams*goldPrice +
		ledger.SilverWeightGrams*prices.SilverPerGram +
		ledger.OtherAssets

	res, err := assess(totalAssets, ledger.Liabilities, nisab)
	if err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute zakat: %w", err)
	}
	return res, nil
}

// ComputeSimpleZakat evaluates a single aggregate holdings figure, for callers
// that do not itemize.
func ComputeSimpleZakat(holdings, liabilities float64, prices domain.PriceTable) (domain.ZakatResult, error) {
	if err := validateAmount("holdings", holdings); err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute simple zakat: %w", err)
	}
	if err := validateAmount("liabilities", liabilities); err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute simple zakat: %w", err)
	}

	nisab, err := ComputeNisab(prices)
	if err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute simple zakat: %w", err)
	}

	res, err := assess(holdings, liabilities, nisab)
	if err != nil {
		return domain.ZakatResult{}, fmt.Errorf("compute simple zakat: %w", err)
	}
	return res, nil
}

// ComputeNisab prices the gold and silver nisab and takes the lower.
func ComputeNisab(prices domain.PriceTable) (domain.Nisab, error) {
	if err := prices.Validate(); err != nil {
		return domain.Nisab{}, fmt.Errorf("compute nisab: %w", err)
	}

	gold24, err := prices.GoldPrice(domain.Karat24)
	if err != nil {
		return domain.Nisab{}, fmt.Errorf("compute nisab: %w", err)
	}

	goldValue := domain.GoldNisabGrams * gold24
	silverValue := domain.SilverNisabGrams * prices.SilverPerGram

	return domain.Nisab{
		GoldValue:   goldValue,
		SilverValue: silverValue,
		Threshold:   math.Min(goldValue, silverValue),
	}, nil
}

// assess rejects sums of finite amounts that overflow float64.
func assess(totalAssets, liabilities float64, nisab domain.Nisab) (domain.ZakatResult, error) {
	if math.IsInf(totalAssets, 0) || math.IsNaN(totalAssets) {
		return domain.ZakatResult{}, fmt.Errorf("total_assets: %w", domain.ErrAmountOverflow)
	}
	netWealth := totalAssets - liabilities
	if math.IsInf(netWealth, 0) || math.IsNaN(netWealth) {
		return domain.ZakatResult{}, fmt.Errorf("net_wealth: %w", domain.ErrAmountOverflow)
	}
	isDue := netWealth >= nisab.Threshold

	amount := 0.0
	if isDue {
		amount = netWealth * domain.ZakatRate
	}

	return domain.ZakatResult{
		TotalAssets:    totalAssets,
		NetWealth:      netWealth,
		NisabThreshold: nisab.Threshold,
		IsDue:          isDue,
		ZakatAmount:    amount,
	}, nil
}

func validateAmount(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &domain.InvalidLedgerFieldError{Field: field, Reason: "must be finite"}
	case v < 0:
		return &domain.InvalidLedgerFieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
