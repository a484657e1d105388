package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/infrastructure/storage/postgres"
)

const cashTable = "cat_cashes"

var _ cash.Repository = (*CashRepo)(nil)

// CashRepo implements cash.Repository.
type CashRepo struct {
	*BaseCatalogRepo[*cash.Cash]
}

// NewCashRepo creates a new cash register repository.
func NewCashRepo(txm *postgres.TxManager) *CashRepo {
	return &CashRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			cashTable,
			postgres.ExtractDBColumns[cash.Cash](),
			func() *cash.Cash { return &cash.Cash{} },
		).SearchOn("name", "serial"),
	}
}

// FindByNumber retrieves a cash register by shop and register number.
func (r *CashRepo) FindByNumber(ctx context.Context, shopNumber, number int) (*cash.Cash, error) {
	return r.findActive(ctx, squirrel.Eq{"shop_number": shopNumber, "cash_number": number})
}
