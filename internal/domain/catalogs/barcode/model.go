// Package barcode provides the Barcode catalog: scannable codes of items.
package barcode

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
)

// Barcode maps a scannable code (unique) to an item. An item may carry several.
type Barcode struct {
	entity.BaseEntity

	ItemID id.ID  `db:"item_id" json:"itemId"`
	Code   string `db:"code" json:"code"`
}

// NewBarcode creates a new barcode.
func NewBarcode(itemID id.ID, code string) *Barcode {
	return &Barcode{
		BaseEntity: entity.NewBaseEntity(),
		ItemID:     itemID,
		Code:       code,
	}
}

// Validate implements entity.Validatable.
func (b *Barcode) Validate(ctx context.Context) error {
	if id.IsNil(b.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	code := strings.TrimSpace(b.Code)
	if code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return apperror.NewValidation("code must contain digits only").
				WithDetail("field", "code")
		}
	}
	return nil
}
