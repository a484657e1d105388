// Package price provides the Price catalog: item prices, either chain-wide
// or overridden for a single shop.
package price

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Price is the selling price of an item. A nil ShopNumber is the chain-wide price.
type Price struct {
	entity.BaseEntity

	ItemID     id.ID       `db:"item_id" json:"itemId"`
	ShopNumber *int        `db:"shop_number" json:"shopNumber,omitempty"`
	Value      types.Money `db:"price_value" json:"value"`
}

// NewPrice creates a new price.
func NewPrice(itemID id.ID, shopNumber *int, value types.Money) *Price {
	return &Price{
		BaseEntity: entity.NewBaseEntity(),
		ItemID:     itemID,
		ShopNumber: shopNumber,
		Value:      value,
	}
}

// Validate implements entity.Validatable.
func (p *Price) Validate(ctx context.Context) error {
	if id.IsNil(p.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if p.ShopNumber != nil && *p.ShopNumber <= 0 {
		return apperror.NewValidation("shop number must be positive").
			WithDetail("field", "shopNumber")
	}
	if p.Value.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "value")
	}
	return nil
}
