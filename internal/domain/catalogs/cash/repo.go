package cash

import (
	"context"

	"backoffice/internal/domain"
)

// Repository defines the interface for Cash persistence.
type Repository interface {
	domain.CatalogRepository[*Cash]

	// FindByNumber returns the register with the given number in a shop or NotFound.
	FindByNumber(ctx context.Context, shopNumber, number int) (*Cash, error)
}
