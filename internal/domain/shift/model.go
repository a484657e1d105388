// Package shift holds point-of-sale shifts and the search engine over them.
//
// A Shift is opened by a cash register, accumulates Purchases while open and is
// closed when the register reports shift-close. A Shift exclusively owns its
// Purchases, and a Purchase exclusively owns its Positions.
package shift

import (
	"context"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Shift is a cash register working session.
type Shift struct {
	ID         id.ID       `db:"id"`
	Number     int         `db:"shift_number"`
	ShopNumber int         `db:"shop_number"`
	CashNumber int         `db:"cash_number"`
	OpenTime   time.Time   `db:"open_time"`
	CloseTime  *time.Time  `db:"close_time"` // nil while the shift is open
	Total      types.Money `db:"total"`

	// Table part: nil until fetched, empty after a shallow fetch
	Purchases []Purchase `db:"-"`
}

// Purchase is one receipt posted within a shift.
type Purchase struct {
	ID           id.ID       `db:"id"`
	ShiftID      id.ID       `db:"shift_id"`
	PurchaseTime time.Time   `db:"purchase_time"`
	Total        types.Money `db:"total"`

	Positions []Position `db:"-"`
}

// Position is one receipt line. Immutable after creation.
type Position struct {
	ID         id.ID       `db:"id"`
	PurchaseID id.ID       `db:"purchase_id"`
	LineNo     int         `db:"line_no"`
	Barcode    string      `db:"barcode"`
	Article    string      `db:"article"`
	Name       string      `db:"name"`
	Price      types.Money `db:"price"`
}

// IsClosed reports whether the register has closed the shift.
func (s *Shift) IsClosed() bool {
	return s.CloseTime != nil
}

// Prepare assigns missing ids, links back-references, numbers lines and
// recomputes totals from positions. Called before persisting a new shift.
func (s *Shift) Prepare() {
	if id.IsNil(s.ID) {
		s.ID = id.New()
	}

	shiftTotal := types.Zero()
	for i := range s.Purchases {
		p := &s.Purchases[i]
		if id.IsNil(p.ID) {
			p.ID = id.New()
		}
		p.ShiftID = s.ID

		purchaseTotal := types.Zero()
		for j := range p.Positions {
			pos := &p.Positions[j]
			if id.IsNil(pos.ID) {
				pos.ID = id.New()
			}
			pos.PurchaseID = p.ID
			pos.LineNo = j + 1
			purchaseTotal = purchaseTotal.Add(pos.Price)
		}
		p.Total = purchaseTotal
		shiftTotal = shiftTotal.Add(purchaseTotal)
	}
	s.Total = shiftTotal
}

// Validate implements entity.Validatable.
func (s *Shift) Validate(ctx context.Context) error {
	if s.ShopNumber <= 0 {
		return apperror.NewValidation("shop number must be positive").
			WithDetail("field", "shopNumber")
	}
	if s.CashNumber <= 0 {
		return apperror.NewValidation("cash number must be positive").
			WithDetail("field", "cashNumber")
	}
	if s.OpenTime.IsZero() {
		return apperror.NewValidation("open time is required").
			WithDetail("field", "openTime")
	}
	if s.CloseTime != nil && s.CloseTime.Before(s.OpenTime) {
		return apperror.NewValidation("close time must not precede open time").
			WithDetail("field", "closeTime")
	}

	for i, p := range s.Purchases {
		if len(p.Positions) == 0 {
			return apperror.NewValidation("purchase must have at least one position").
				WithDetail("field", "purchases").
				WithDetail("index", i)
		}
		for j, pos := range p.Positions {
			if pos.Price.IsNegative() {
				return apperror.NewValidation("position price must not be negative").
					WithDetail("field", "positions").
					WithDetail("purchase", i).
					WithDetail("index", j)
			}
		}
	}

	return nil
}
