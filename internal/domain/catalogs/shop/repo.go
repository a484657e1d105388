package shop

import (
	"context"

	"backoffice/internal/domain"
)

// Repository defines the interface for Shop persistence.
type Repository interface {
	domain.CatalogRepository[*Shop]

	// FindByNumber returns the shop with the given number or NotFound.
	FindByNumber(ctx context.Context, number int) (*Shop, error)
}
