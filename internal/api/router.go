package api

import (
	"net/http"
	"qibla-zakat-service/internal/api/handlers"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/ports"
	"qibla-zakat-service/internal/services"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Log             zerolog.Logger
	Prices          ports.PriceProvider
	Tasbeeh         *services.TasbeehService
	DefaultCurrency domain.Currency
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(deps.Log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	qiblaHandler := &handlers.QiblaHandler{}
	zakatHandler := &handlers.ZakatHandler{
		Prices:          deps.Prices,
		DefaultCurrency: deps.DefaultCurrency,
	}
	tasbeehHandler := &handlers.TasbeehHandler{Service: deps.Tasbeeh}

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/qibla", qiblaHandler.Direction)

		r.Route("/zakat", func(r chi.Router) {
			r.Post("/", zakatHandler.Calculate)
			r.Post("/simple", zakatHandler.CalculateSimple)
			r.Get("/nisab", zakatHandler.Nisab)
		})

		r.Get("/dhikr", tasbeehHandler.ListDhikr)
		r.Get("/tasbeeh/sessions", tasbeehHandler.ListSessions)
		r.Post("/tasbeeh/sessions", tasbeehHandler.SaveSession)
	})

	return r
}
