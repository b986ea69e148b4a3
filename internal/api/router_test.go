package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"qibla-zakat-service/internal/adapters/prices"
	"qibla-zakat-service/internal/adapters/repositories"
	"qibla-zakat-service/internal/api/dto"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/db"
	"qibla-zakat-service/internal/services"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPrices struct{}

func (failingPrices) GetPrices(ctx context.Context, c domain.Currency) (domain.PriceTable, error) {
	return domain.PriceTable{}, errors.New("feed timeout")
}

func newTestRouter(t *testing.T, extra ...repositories.DhikrSeed) http.Handler {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn, repositories.DialectSqlite))
	require.NoError(t, repositories.SeedDhikr(ctx, conn, repositories.DialectSqlite, append(repositories.CatalogSeeds(), extra...)))

	return NewRouter(Deps{
		Log:    zerolog.Nop(),
		Prices: prices.NewStaticPriceProvider(prices.DefaultTable()),
		Tasbeeh: services.NewTasbeehService(
			repositories.NewSqliteSessionRepository(conn),
			repositories.NewSqliteDhikrRepository(conn),
			nil,
		),
		DefaultCurrency: domain.EUR,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestQiblaEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/qibla", `{"latitude":48.8566,"longitude":2.3522,"heading":100}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.QiblaResponse](t, rec)
	assert.InDelta(t, 119.16, res.BearingDegrees, 0.05)
	assert.Equal(t, "SE", res.CompassPoint)
	assert.InDelta(t, 4496, res.DistanceKm, 2)
	require.NotNil(t, res.DisplayRotation)
	assert.InDelta(t, 19.16, *res.DisplayRotation, 0.05)
	assert.Equal(t, 21.4225, res.Target.Latitude)

	rec = do(t, h, http.MethodPost, "/api/qibla", `{"latitude":48.8566,"longitude":2.3522}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeBody[dto.QiblaResponse](t, rec).DisplayRotation)
}

func TestQiblaEndpointRejectsBadInput(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"latitude out of range", `{"latitude":91,"longitude":0}`, "latitude"},
		{"missing longitude", `{"latitude":10}`, "required"},
		{"unknown field", `{"latitude":1,"longitude":1,"alt":3}`, "invalid json"},
		{"two objects", `{"latitude":1,"longitude":1}{}`, "only one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/qibla", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}

	rec := do(t, h, http.MethodGet, "/api/qibla", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestZakatEndpoint(t *testing.T) {
	h := newTestRouter(t)

	body := `{"cash":10000,"gold_weight_grams":0,"silver_weight_grams":0,"other_assets":0,"liabilities":0}`
	rec := do(t, h, http.MethodPost, "/api/zakat", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.ZakatResponse](t, rec)
	assert.Equal(t, "EUR", res.Currency)
	assert.True(t, res.IsDue)
	assert.Equal(t, "250.00", res.ZakatAmount)
	assert.Equal(t, "446.25", res.NisabThreshold)
	assert.Contains(t, rec.Body.String(), `"zakat_amount":"250.00"`)

	body = `{"cash":100,"gold_weight_grams":0,"gold_karat":"22k","silver_weight_grams":0,"other_assets":0,"liabilities":50,"currency":"usd"}`
	rec = do(t, h, http.MethodPost, "/api/zakat", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res = decodeBody[dto.ZakatResponse](t, rec)
	assert.Equal(t, "USD", res.Currency)
	assert.False(t, res.IsDue)
	assert.Equal(t, "0.00", res.ZakatAmount)
	assert.Equal(t, "50.00", res.NetWealth)
}

func TestZakatEndpointErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"negative cash", `{"cash":-1,"gold_weight_grams":0,"silver_weight_grams":0,"other_assets":0,"liabilities":0}`, "cash"},
		{"missing field", `{"cash":1,"gold_weight_grams":0,"silver_weight_grams":0,"other_assets":0}`, "liabilities"},
		{"unknown karat", `{"cash":1,"gold_weight_grams":1,"gold_karat":"20k","silver_weight_grams":0,"other_assets":0,"liabilities":0}`, "unknown karat"},
		{"unsupported currency", `{"cash":1,"gold_weight_grams":0,"silver_weight_grams":0,"other_assets":0,"liabilities":0,"currency":"JPY"}`, "unsupported currency"},
		{"sum overflows", `{"cash":1e308,"gold_weight_grams":0,"silver_weight_grams":0,"other_assets":1e308,"liabilities":0}`, "amount overflows"},
		{"gold value overflows", `{"cash":0,"gold_weight_grams":1e307,"silver_weight_grams":0,"other_assets":0,"liabilities":0}`, "amount overflows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/zakat", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}

func TestZakatEndpointPriceFeedDown(t *testing.T) {
	h := NewRouter(Deps{Log: zerolog.Nop(), Prices: failingPrices{}})

	rec := do(t, h, http.MethodGet, "/api/zakat/nisab", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "feed timeout")
}

func TestSimpleZakatEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/zakat/simple", `{"holdings":1000.555,"liabilities":0,"currency":"GBP"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.ZakatResponse](t, rec)
	assert.Equal(t, "£", res.Symbol)
	assert.True(t, res.IsDue)
	assert.Equal(t, "1000.56", res.TotalAssets)
	assert.Equal(t, "25.01", res.ZakatAmount)

	rec = do(t, h, http.MethodPost, "/api/zakat/simple", `{"holdings":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/zakat/simple", `{"holdings":1.7e308,"liabilities":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNisabEndpoint(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/zakat/nisab?currency=MAD", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[dto.NisabResponse](t, rec)
	assert.Equal(t, "MAD", res.Currency)
	assert.Equal(t, 85.0, res.GoldNisabGrams)
	assert.Equal(t, "5525.00", res.GoldValue)
	assert.Equal(t, "446.25", res.Threshold)
	assert.Equal(t, "60.00", res.GoldPricePerGram["22k"])
}

func TestTasbeehEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/dhikr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[dto.ListDhikrResponse](t, rec).Dhikr, len(domain.DhikrCatalog))

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"subhanallah","count":33}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	saved := decodeBody[dto.SessionResponse](t, rec)
	assert.Equal(t, 33, saved.Target)
	assert.True(t, saved.TargetReached)

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"subhanallah","count":33,"target":99}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	custom := decodeBody[dto.SessionResponse](t, rec)
	assert.Equal(t, 99, custom.Target)
	assert.False(t, custom.TargetReached)

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"subhanallah","count":1,"target":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"nope","count":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"istighfar"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/tasbeeh/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[dto.ListSessionsResponse](t, rec)
	require.Len(t, list.Sessions, 2)
	assert.ElementsMatch(t, []string{saved.ID, custom.ID}, []string{list.Sessions[0].ID, list.Sessions[1].ID})
}

func TestTasbeehEndpointsServeSeededDhikr(t *testing.T) {
	h := newTestRouter(t, repositories.DhikrSeed{ID: "salawat", Transliteration: "Salawat", DefaultTarget: 10})

	rec := do(t, h, http.MethodGet, "/api/dhikr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[dto.ListDhikrResponse](t, rec).Dhikr, len(domain.DhikrCatalog)+1)
	assert.Contains(t, rec.Body.String(), `"id":"salawat"`)

	rec = do(t, h, http.MethodPost, "/api/tasbeeh/sessions", `{"dhikr_id":"salawat","count":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[dto.SessionResponse](t, rec).TargetReached)
}
