package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/catalogs/shop"
	"backoffice/internal/infrastructure/storage/postgres"
)

const shopTable = "cat_shops"

var _ shop.Repository = (*ShopRepo)(nil)

// ShopRepo implements shop.Repository.
type ShopRepo struct {
	*BaseCatalogRepo[*shop.Shop]
}

// NewShopRepo creates a new shop repository.
func NewShopRepo(txm *postgres.TxManager) *ShopRepo {
	return &ShopRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			shopTable,
			postgres.ExtractDBColumns[shop.Shop](),
			func() *shop.Shop { return &shop.Shop{} },
		).SearchOn("name", "address"),
	}
}

// FindByNumber retrieves a shop by its number.
func (r *ShopRepo) FindByNumber(ctx context.Context, number int) (*shop.Shop, error) {
	return r.findActive(ctx, squirrel.Eq{"shop_number": number})
}
