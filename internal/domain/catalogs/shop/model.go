// Package shop provides the Shop catalog: the stores cash registers belong to.
package shop

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Shop is a retail store identified by its business number.
type Shop struct {
	entity.Catalog

	// Number is the store number printed on receipts (unique)
	Number int `db:"shop_number" json:"number"`

	// Address is the postal address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewShop creates a new shop.
func NewShop(number int, name string) *Shop {
	return &Shop{
		Catalog: entity.NewCatalog(name),
		Number:  number,
	}
}

// Validate implements entity.Validatable.
func (s *Shop) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}
	if s.Number <= 0 {
		return apperror.NewValidation("shop number must be positive").
			WithDetail("field", "number")
	}
	return nil
}
