package barcode

import (
	"context"

	"backoffice/internal/domain"
)

// Repository defines the interface for Barcode persistence.
type Repository interface {
	domain.CatalogRepository[*Barcode]

	// FindByCode returns the barcode with the given code or NotFound.
	FindByCode(ctx context.Context, code string) (*Barcode, error)
}
