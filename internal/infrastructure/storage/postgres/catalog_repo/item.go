package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/infrastructure/storage/postgres"
)

const itemTable = "cat_items"

var _ item.Repository = (*ItemRepo)(nil)

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.Item]
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			itemTable,
			postgres.ExtractDBColumns[item.Item](),
			func() *item.Item { return &item.Item{} },
		).SearchOn("name", "article"),
	}
}

// FindByArticle retrieves an item by article.
func (r *ItemRepo) FindByArticle(ctx context.Context, article string) (*item.Item, error) {
	return r.findActive(ctx, squirrel.Eq{"article": article})
}
