package handlers

import (
	"context"
	"fmt"
	"net/http"
	"qibla-zakat-service/internal/api/dto"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/ports"
	"qibla-zakat-service/internal/services"
	"strings"
)

// ZakatHandler exposes the zakat and nisab calculators.
type ZakatHandler struct {
	Prices          ports.PriceProvider
	DefaultCurrency domain.Currency
}

func (h *ZakatHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.ZakatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ledger, err := h.ledgerFromRequest(req)
	if err != nil {
		writeDomainError(w, r, "zakat", err)
		return
	}

	prices, err := h.prices(r.Context(), ledger.Currency)
	if err != nil {
		writeDomainError(w, r, "zakat", err)
		return
	}

	result, err := services.ComputeZakat(ledger, prices)
	if err != nil {
		writeDomainError(w, r, "zakat", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewZakatResponse(result, ledger.Currency))
}

func (h *ZakatHandler) CalculateSimple(w http.ResponseWriter, r *http.Request) {
	var req dto.SimpleZakatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	currency, err := h.currency(req.Currency)
	if err != nil {
		writeDomainError(w, r, "zakat.simple", err)
		return
	}

	holdings, err := requireAmount("holdings", req.Holdings)
	if err != nil {
		writeDomainError(w, r, "zakat.simple", err)
		return
	}
	liabilities, err := requireAmount("liabilities", req.Liabilities)
	if err != nil {
		writeDomainError(w, r, "zakat.simple", err)
		return
	}

	prices, err := h.prices(r.Context(), currency)
	if err != nil {
		writeDomainError(w, r, "zakat.simple", err)
		return
	}

	result, err := services.ComputeSimpleZakat(holdings, liabilities, prices)
	if err != nil {
		writeDomainError(w, r, "zakat.simple", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewZakatResponse(result, currency))
}

func (h *ZakatHandler) Nisab(w http.ResponseWriter, r *http.Request) {
	currency, err := h.currency(r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, r, "zakat.nisab", err)
		return
	}

	prices, err := h.prices(r.Context(), currency)
	if err != nil {
		writeDomainError(w, r, "zakat.nisab", err)
		return
	}

	nisab, err := services.ComputeNisab(prices)
	if err != nil {
		writeDomainError(w, r, "zakat.nisab", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewNisabResponse(nisab, prices, currency))
}

func (h *ZakatHandler) ledgerFromRequest(req dto.ZakatRequest) (domain.AssetLedger, error) {
	currency, err := h.currency(req.Currency)
	if err != nil {
		return domain.AssetLedger{}, err
	}

	karat := domain.Karat24
	if strings.TrimSpace(req.GoldKarat) != "" {
		karat, err = domain.ParseKarat(req.GoldKarat)
		if err != nil {
			return domain.AssetLedger{}, err
		}
	}

	ledger := domain.AssetLedger{GoldKarat: karat, Currency: currency}

	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"cash", req.Cash, &ledger.Cash},
		{"gold_weight_grams", req.GoldWeightGrams, &ledger.GoldWeightGrams},
		{"silver_weight_grams", req.SilverWeightGrams, &ledger.SilverWeightGrams},
		{"other_assets", req.OtherAssets, &ledger.OtherAssets},
		{"liabilities", req.Liabilities, &ledger.Liabilities},
	}
	for _, f := range fields {
		v, err := requireAmount(f.name, f.src)
		if err != nil {
			return domain.AssetLedger{}, err
		}
		*f.dst = v
	}

	return ledger, nil
}

func (h *ZakatHandler) currency(code string) (domain.Currency, error) {
	if strings.TrimSpace(code) == "" && !h.DefaultCurrency.IsZero() {
		return h.DefaultCurrency, nil
	}
	return domain.ParseCurrency(code)
}

func (h *ZakatHandler) prices(ctx context.Context, c domain.Currency) (domain.PriceTable, error) {
	t, err := h.Prices.GetPrices(ctx, c)
	if err != nil {
		return domain.PriceTable{}, fmt.Errorf("get prices %s: %w: %w", c, errUpstream, err)
	}
	return t, nil
}

func requireAmount(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, &domain.InvalidLedgerFieldError{Field: field, Reason: "is required"}
	}
	return *v, nil
}
