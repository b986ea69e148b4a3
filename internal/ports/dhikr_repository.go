package ports

import (
	"context"
	"qibla-zakat-service/internal/domain"
)

// Port: read access to the seeded dhikr catalog.
type DhikrRepository interface {
	ListDhikr(ctx context.Context) ([]domain.Dhikr, error)
	// GetDhikr reports ok=false when no row has the id.
	GetDhikr(ctx context.Context, id string) (d domain.Dhikr, ok bool, err error)
}
