package dto

import (
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/shift"
)

// --- Search ---

// SearchShiftsRequest carries one set of shift search criteria. Dates are
// calendar days formatted as YYYY-MM-DD.
type SearchShiftsRequest struct {
	ShopNumber *int   `form:"shopNumber" json:"shopNumber"`
	CashNumber *int   `form:"cashNumber" json:"cashNumber"`
	Date       string `form:"date" json:"date"`
	StartDate  string `form:"startDate" json:"startDate"`
	EndDate    string `form:"endDate" json:"endDate"`
	Deep       bool   `form:"deep" json:"deep"`
}

// ToCriteria parses the dates as days in loc and validates the result.
func (r SearchShiftsRequest) ToCriteria(loc *time.Location) (shift.Criteria, error) {
	params := shift.SearchParams{
		ShopNumber: r.ShopNumber,
		CashNumber: r.CashNumber,
		Deep:       r.Deep,
	}

	var err error
	if params.Date, err = parseDay("date", r.Date, loc); err != nil {
		return shift.Criteria{}, err
	}
	if params.StartDate, err = parseDay("startDate", r.StartDate, loc); err != nil {
		return shift.Criteria{}, err
	}
	if params.EndDate, err = parseDay("endDate", r.EndDate, loc); err != nil {
		return shift.Criteria{}, err
	}

	return shift.NewCriteria(params)
}

func parseDay(field, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return &t, nil
}

// BatchSearchRequest is the body of a batch search.
type BatchSearchRequest struct {
	Criteria []SearchShiftsRequest `json:"criteria"`
}

// ToCriteria converts every element, failing on the first invalid one.
func (r BatchSearchRequest) ToCriteria(loc *time.Location) ([]shift.Criteria, error) {
	out := make([]shift.Criteria, 0, len(r.Criteria))
	for i, item := range r.Criteria {
		c, err := item.ToCriteria(loc)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				appErr.WithDetail("index", i)
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ShiftListResponse wraps search results.
type ShiftListResponse struct {
	Items      []shift.ShiftView `json:"items"`
	TotalCount int               `json:"totalCount"`
}

// NewShiftListResponse creates a list response; items is never null.
func NewShiftListResponse(views []shift.ShiftView) ShiftListResponse {
	if views == nil {
		views = []shift.ShiftView{}
	}
	return ShiftListResponse{Items: views, TotalCount: len(views)}
}

// --- Create ---

// CreateShiftRequest is the request body for registering a shift reported by a cash register.
type CreateShiftRequest struct {
	Number     int                     `json:"shiftNumber"`
	ShopNumber int                     `json:"shopNumber" binding:"required"`
	CashNumber int                     `json:"cashNumber" binding:"required"`
	OpenTime   time.Time               `json:"openTime" binding:"required"`
	CloseTime  *time.Time              `json:"closeTime"`
	Purchases  []CreatePurchaseRequest `json:"purchases"`
}

// CreatePurchaseRequest is one receipt of a new shift.
type CreatePurchaseRequest struct {
	PurchaseTime time.Time               `json:"purchaseTime" binding:"required"`
	Positions    []CreatePositionRequest `json:"positions"`
}

// CreatePositionRequest is one receipt line of a new shift.
type CreatePositionRequest struct {
	Barcode string      `json:"barcode"`
	Article string      `json:"article"`
	Name    string      `json:"name"`
	Price   types.Money `json:"price"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateShiftRequest) ToEntity() *shift.Shift {
	s := &shift.Shift{
		Number:     r.Number,
		ShopNumber: r.ShopNumber,
		CashNumber: r.CashNumber,
		OpenTime:   r.OpenTime,
		CloseTime:  r.CloseTime,
		Purchases:  make([]shift.Purchase, 0, len(r.Purchases)),
	}
	for _, p := range r.Purchases {
		purchase := shift.Purchase{
			PurchaseTime: p.PurchaseTime,
			Positions:    make([]shift.Position, 0, len(p.Positions)),
		}
		for _, l := range p.Positions {
			purchase.Positions = append(purchase.Positions, shift.Position{
				Barcode: l.Barcode,
				Article: l.Article,
				Name:    l.Name,
				Price:   l.Price,
			})
		}
		s.Purchases = append(s.Purchases, purchase)
	}
	return s
}
