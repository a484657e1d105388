package shift

import (
	"fmt"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// ShiftView is the externally visible shift representation.
type ShiftView struct {
	ID         id.ID          `json:"id"`
	Number     int            `json:"shiftNumber"`
	ShopNumber int            `json:"shopNumber"`
	CashNumber int            `json:"cashNumber"`
	OpenTime   time.Time      `json:"openTime"`
	CloseTime  *time.Time     `json:"closeTime"`
	Total      types.Money    `json:"total"`
	Purchases  []PurchaseView `json:"purchases"`
}

// PurchaseView is the externally visible purchase representation.
type PurchaseView struct {
	ID           id.ID          `json:"id"`
	ShiftID      id.ID          `json:"shiftId"`
	PurchaseTime time.Time      `json:"purchaseTime"`
	Total        types.Money    `json:"total"`
	Positions    []PositionView `json:"positions"`
}

// PositionView is the externally visible receipt line.
type PositionView struct {
	ID      id.ID       `json:"id"`
	LineNo  int         `json:"lineNo"`
	Barcode string      `json:"barcode"`
	Article string      `json:"article"`
	Name    string      `json:"name"`
	Price   types.Money `json:"price"`
}

// Assemble maps a fetched shift to its view. A purchase without positions
// or without a back-reference to this shift is a stored-data defect and
// yields MappingError.
func Assemble(s *Shift) (ShiftView, error) {
	view := ShiftView{
		ID:         s.ID,
		Number:     s.Number,
		ShopNumber: s.ShopNumber,
		CashNumber: s.CashNumber,
		OpenTime:   s.OpenTime,
		CloseTime:  s.CloseTime,
		Total:      s.Total,
		Purchases:  make([]PurchaseView, 0, len(s.Purchases)),
	}

	for _, p := range s.Purchases {
		if id.IsNil(p.ShiftID) || p.ShiftID != s.ID {
			return ShiftView{}, apperror.NewMapping(
				fmt.Sprintf("purchase %s has no back-reference to shift %s", p.ID, s.ID)).
				WithDetail("shiftId", s.ID).
				WithDetail("purchaseId", p.ID)
		}
		if len(p.Positions) == 0 {
			return ShiftView{}, apperror.NewMapping(
				fmt.Sprintf("purchase %s has no positions", p.ID)).
				WithDetail("shiftId", s.ID).
				WithDetail("purchaseId", p.ID)
		}

		pv := PurchaseView{
			ID:           p.ID,
			ShiftID:      p.ShiftID,
			PurchaseTime: p.PurchaseTime,
			Total:        p.Total,
			Positions:    make([]PositionView, 0, len(p.Positions)),
		}
		for _, pos := range p.Positions {
			pv.Positions = append(pv.Positions, PositionView{
				ID:      pos.ID,
				LineNo:  pos.LineNo,
				Barcode: pos.Barcode,
				Article: pos.Article,
				Name:    pos.Name,
				Price:   pos.Price,
			})
		}
		view.Purchases = append(view.Purchases, pv)
	}

	return view, nil
}

// AssembleAll maps shifts in order and stops at the first defect.
func AssembleAll(shifts []*Shift) ([]ShiftView, error) {
	out := make([]ShiftView, 0, len(shifts))
	for _, s := range shifts {
		v, err := Assemble(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
