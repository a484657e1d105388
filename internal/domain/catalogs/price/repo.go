package price

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
)

// Repository defines the interface for Price persistence.
type Repository interface {
	domain.CatalogRepository[*Price]

	// FindFor returns the price of an item in a shop (nil shop: chain-wide) or NotFound.
	FindFor(ctx context.Context, itemID id.ID, shopNumber *int) (*Price, error)
}
