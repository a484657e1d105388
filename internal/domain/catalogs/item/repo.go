package item

import (
	"context"

	"backoffice/internal/domain"
)

// Repository defines the interface for Item persistence.
type Repository interface {
	domain.CatalogRepository[*Item]

	// FindByArticle returns the item with the given article or NotFound.
	FindByArticle(ctx context.Context, article string) (*Item, error)
}
