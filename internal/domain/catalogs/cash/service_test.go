package cash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/shop"
	"backoffice/pkg/logger"
)

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type shops map[int]*shop.Shop

func (s shops) FindByNumber(_ context.Context, number int) (*shop.Shop, error) {
	if sh, ok := s[number]; ok {
		return sh, nil
	}
	return nil, apperror.NewNotFound("cat_shops", number)
}

type fakeRepo struct {
	domain.CatalogRepository[*Cash]
	cashes []*Cash
}

func (r *fakeRepo) Create(_ context.Context, c *Cash) error {
	r.cashes = append(r.cashes, c)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c *Cash) error {
	return nil
}

func (r *fakeRepo) FindByNumber(_ context.Context, shopNumber, number int) (*Cash, error) {
	for _, c := range r.cashes {
		if c.ShopNumber == shopNumber && c.Number == number {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("cat_cashes", number)
}

func TestCreate(t *testing.T) {
	known := shops{1: shop.NewShop(1, "Central")}

	tests := []struct {
		name     string
		existing []*Cash
		cash     *Cash
		wantCode string
	}{
		{name: "ok", cash: NewCash(1, 1, "Front", "SN-1")},
		{name: "unknown shop", cash: NewCash(2, 1, "Front", "SN-1"), wantCode: apperror.CodeValidation},
		{name: "missing serial", cash: NewCash(1, 1, "Front", ""), wantCode: apperror.CodeValidation},
		{
			name:     "duplicate number",
			existing: []*Cash{NewCash(1, 1, "Front", "SN-1")},
			cash:     NewCash(1, 1, "Back", "SN-2"),
			wantCode: apperror.CodeConflict,
		},
		{
			name:     "same number in another shop",
			existing: []*Cash{NewCash(9, 1, "Front", "SN-1")},
			cash:     NewCash(1, 1, "Front", "SN-2"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{cashes: tt.existing}, known, passTx{})

			err := svc.Create(testContext(), tt.cash)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			assert.True(t, apperror.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestUpdate_KeepsOwnNumber(t *testing.T) {
	c := NewCash(1, 1, "Front", "SN-1")
	svc := NewService(&fakeRepo{cashes: []*Cash{c}}, shops{1: shop.NewShop(1, "Central")}, passTx{})

	c.Serial = "SN-9"
	assert.NoError(t, svc.Update(testContext(), c))
}

// testContext carries a discarding logger so services stay quiet under go test.
func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Nop())
}
