package entity

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
)

// Catalog is the base type for back-office reference data:
// shops, cash registers, items, prices and barcodes.
type Catalog struct {
	BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
