// Package cash provides the Cash catalog: cash registers installed in shops.
package cash

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Cash is a cash register. (ShopNumber, Number) is unique.
type Cash struct {
	entity.Catalog

	ShopNumber int    `db:"shop_number" json:"shopNumber"`
	Number     int    `db:"cash_number" json:"number"`
	Serial     string `db:"serial" json:"serial"`
}

// NewCash creates a new cash register.
func NewCash(shopNumber, number int, name, serial string) *Cash {
	return &Cash{
		Catalog:    entity.NewCatalog(name),
		ShopNumber: shopNumber,
		Number:     number,
		Serial:     serial,
	}
}

// Validate implements entity.Validatable.
func (c *Cash) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.ShopNumber <= 0 {
		return apperror.NewValidation("shop number must be positive").
			WithDetail("field", "shopNumber")
	}
	if c.Number <= 0 {
		return apperror.NewValidation("cash number must be positive").
			WithDetail("field", "number")
	}
	if strings.TrimSpace(c.Serial) == "" {
		return apperror.NewValidation("serial is required").
			WithDetail("field", "serial")
	}
	return nil
}
