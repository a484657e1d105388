package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/infrastructure/storage/postgres"
)

const barcodeTable = "cat_barcodes"

var _ barcode.Repository = (*BarcodeRepo)(nil)

// BarcodeRepo implements barcode.Repository.
type BarcodeRepo struct {
	*BaseCatalogRepo[*barcode.Barcode]
}

// NewBarcodeRepo creates a new barcode repository.
func NewBarcodeRepo(txm *postgres.TxManager) *BarcodeRepo {
	return &BarcodeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			barcodeTable,
			postgres.ExtractDBColumns[barcode.Barcode](),
			func() *barcode.Barcode { return &barcode.Barcode{} },
		).SearchOn("code").OrderByDefault("code"),
	}
}

// FindByCode retrieves a barcode by its code.
func (r *BarcodeRepo) FindByCode(ctx context.Context, code string) (*barcode.Barcode, error) {
	return r.findActive(ctx, squirrel.Eq{"code": code})
}
