// Package item provides the Item catalog: goods sold at the cash registers.
package item

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Item is a sellable good identified by its article (unique).
type Item struct {
	entity.Catalog

	Article string `db:"article" json:"article"`
}

// NewItem creates a new item.
func NewItem(article, name string) *Item {
	return &Item{
		Catalog: entity.NewCatalog(name),
		Article: article,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(i.Article) == "" {
		return apperror.NewValidation("article is required").
			WithDetail("field", "article")
	}
	return nil
}
