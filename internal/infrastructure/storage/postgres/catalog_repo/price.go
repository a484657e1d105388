package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/infrastructure/storage/postgres"
)

const priceTable = "cat_prices"

var _ price.Repository = (*PriceRepo)(nil)

// PriceRepo implements price.Repository.
type PriceRepo struct {
	*BaseCatalogRepo[*price.Price]
}

// NewPriceRepo creates a new price repository.
func NewPriceRepo(txm *postgres.TxManager) *PriceRepo {
	return &PriceRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			priceTable,
			postgres.ExtractDBColumns[price.Price](),
			func() *price.Price { return &price.Price{} },
		).OrderByDefault("item_id"),
	}
}

// FindFor retrieves the price of an item in a shop; a nil shop selects the
// chain-wide price.
func (r *PriceRepo) FindFor(ctx context.Context, itemID id.ID, shopNumber *int) (*price.Price, error) {
	eq := squirrel.Eq{"item_id": itemID, "shop_number": nil}
	if shopNumber != nil {
		eq["shop_number"] = *shopNumber
	}
	return r.findActive(ctx, eq)
}
