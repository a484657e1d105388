package price

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/pkg/logger"
)

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type items map[id.ID]bool

func (i items) Exists(_ context.Context, itemID id.ID) (bool, error) {
	return i[itemID], nil
}

type fakeRepo struct {
	domain.CatalogRepository[*Price]
	prices []*Price
}

func (r *fakeRepo) Create(_ context.Context, p *Price) error {
	r.prices = append(r.prices, p)
	return nil
}

func (r *fakeRepo) FindFor(_ context.Context, itemID id.ID, shopNumber *int) (*Price, error) {
	for _, p := range r.prices {
		if p.ItemID != itemID {
			continue
		}
		if (p.ShopNumber == nil) != (shopNumber == nil) {
			continue
		}
		if shopNumber != nil && *p.ShopNumber != *shopNumber {
			continue
		}
		return p, nil
	}
	return nil, apperror.NewNotFound("cat_prices", itemID.String())
}

func intPtr(v int) *int { return &v }

func TestEffective_ShopOverrideWins(t *testing.T) {
	itemID := id.New()
	svc := NewService(&fakeRepo{}, items{itemID: true}, passTx{})
	ctx := testContext()

	require.NoError(t, svc.Create(ctx, NewPrice(itemID, nil, types.MustMoney("10.00"))))
	require.NoError(t, svc.Create(ctx, NewPrice(itemID, intPtr(7), types.MustMoney("9.50"))))

	p, err := svc.Effective(ctx, itemID, 7)
	require.NoError(t, err)
	assert.True(t, p.Value.Equal(types.MustMoney("9.50")))

	p, err = svc.Effective(ctx, itemID, 8)
	require.NoError(t, err)
	assert.True(t, p.Value.Equal(types.MustMoney("10.00")))

	_, err = svc.Effective(ctx, id.New(), 7)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_UnknownItemRejected(t *testing.T) {
	svc := NewService(&fakeRepo{}, items{}, passTx{})

	err := svc.Create(testContext(), NewPrice(id.New(), nil, types.MustMoney("1")))
	assert.True(t, apperror.IsValidation(err))
}

func TestCreate_SecondPriceForSameShopConflicts(t *testing.T) {
	itemID := id.New()
	repo := &fakeRepo{}
	svc := NewService(repo, items{itemID: true}, passTx{})
	ctx := testContext()

	require.NoError(t, svc.Create(ctx, NewPrice(itemID, intPtr(1), types.MustMoney("1"))))
	err := svc.Create(ctx, NewPrice(itemID, intPtr(1), types.MustMoney("2")))

	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
	assert.Len(t, repo.prices, 1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		price *Price
		field string
	}{
		{"missing item", NewPrice(id.Nil(), nil, types.MustMoney("1")), "itemId"},
		{"bad shop", NewPrice(id.New(), intPtr(0), types.MustMoney("1")), "shopNumber"},
		{"negative", NewPrice(id.New(), nil, types.MustMoney("-0.01")), "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.price.Validate(testContext())
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

// testContext carries a discarding logger so services stay quiet under go test.
func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Nop())
}
