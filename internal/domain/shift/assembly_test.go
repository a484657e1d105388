package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

func TestAssemble_ShallowHasEmptyPurchases(t *testing.T) {
	s := shiftFixture(1, 1)
	s.Purchases = []Purchase{}

	v, err := Assemble(&s)
	require.NoError(t, err)
	assert.NotNil(t, v.Purchases)
	assert.Empty(t, v.Purchases)
	assert.Equal(t, s.ID, v.ID)
	assert.Equal(t, s.CloseTime, v.CloseTime)
}

func TestAssemble_NilPurchasesStillEmptySlice(t *testing.T) {
	s := shiftFixture(1, 1)

	v, err := Assemble(&s)
	require.NoError(t, err)
	assert.NotNil(t, v.Purchases)
}

func TestAssemble_Nested(t *testing.T) {
	s := shiftFixture(1, 1)
	p := Purchase{ID: id.New(), ShiftID: s.ID, Total: types.MustMoney("3.00")}
	p.Positions = []Position{
		{ID: id.New(), PurchaseID: p.ID, LineNo: 1, Barcode: "4600001", Article: "A1", Name: "Milk", Price: types.MustMoney("1.00")},
		{ID: id.New(), PurchaseID: p.ID, LineNo: 2, Barcode: "4600002", Article: "A2", Name: "Bread", Price: types.MustMoney("2.00")},
	}
	s.Purchases = []Purchase{p}

	v, err := Assemble(&s)
	require.NoError(t, err)
	require.Len(t, v.Purchases, 1)
	require.Len(t, v.Purchases[0].Positions, 2)
	assert.Equal(t, "Bread", v.Purchases[0].Positions[1].Name)
	assert.True(t, v.Purchases[0].Total.Equal(types.MustMoney("3")))
}

func TestAssemble_Defects(t *testing.T) {
	s := shiftFixture(1, 1)
	line := func(purchaseID id.ID) []Position {
		return []Position{{ID: id.New(), PurchaseID: purchaseID, LineNo: 1}}
	}

	tests := []struct {
		name     string
		purchase func() Purchase
	}{
		{
			name: "no positions",
			purchase: func() Purchase {
				return Purchase{ID: id.New(), ShiftID: s.ID, Positions: []Position{}}
			},
		},
		{
			name: "missing back-reference",
			purchase: func() Purchase {
				pid := id.New()
				return Purchase{ID: pid, Positions: line(pid)}
			},
		},
		{
			name: "foreign back-reference",
			purchase: func() Purchase {
				pid := id.New()
				return Purchase{ID: pid, ShiftID: id.New(), Positions: line(pid)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := s
			broken.Purchases = []Purchase{tt.purchase()}

			_, err := Assemble(&broken)
			require.Error(t, err)
			assert.True(t, apperror.IsMapping(err), "got %v", err)

			_, err = AssembleAll([]*Shift{&broken})
			assert.True(t, apperror.IsMapping(err))
		})
	}
}
