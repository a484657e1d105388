package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/shift"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// ShiftService is the part of shift.Service the handler needs.
type ShiftService interface {
	Find(ctx context.Context, c shift.Criteria) ([]shift.ShiftView, error)
	FindBatch(ctx context.Context, batch []shift.Criteria) ([]shift.ShiftView, error)
	GetByID(ctx context.Context, shiftID id.ID) (shift.ShiftView, error)
	Create(ctx context.Context, s *shift.Shift) (shift.ShiftView, error)
	Delete(ctx context.Context, shiftID id.ID) error
}

// ShiftHandler serves shift search and registration.
type ShiftHandler struct {
	*BaseHandler
	service  ShiftService
	location *time.Location
	timeout  time.Duration
	maxBatch int
}

// ShiftHandlerConfig configures the shift handler.
type ShiftHandlerConfig struct {
	// Location is the time zone search dates are read in (UTC when nil)
	Location *time.Location
	// Timeout bounds every search; zero disables it
	Timeout time.Duration
	// MaxBatchSize rejects larger batch bodies before conversion; zero means unlimited
	MaxBatchSize int
}

// NewShiftHandler creates a shift handler.
func NewShiftHandler(base *BaseHandler, service ShiftService, cfg ShiftHandlerConfig) *ShiftHandler {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	return &ShiftHandler{
		BaseHandler: base,
		service:     service,
		location:    location,
		timeout:     cfg.Timeout,
		maxBatch:    cfg.MaxBatchSize,
	}
}

func (h *ShiftHandler) searchContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// Search handles GET /shifts/search. An empty result is 404.
func (h *ShiftHandler) Search(c *gin.Context) {
	var req dto.SearchShiftsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	criteria, err := req.ToCriteria(h.location)
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx, cancel := h.searchContext(c)
	defer cancel()

	views, err := h.service.Find(ctx, criteria)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewShiftListResponse(views))
}

// SearchBatch handles POST /shifts/search/batch. An empty result is 200.
func (h *ShiftHandler) SearchBatch(c *gin.Context) {
	var req dto.BatchSearchRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if h.maxBatch > 0 && len(req.Criteria) > h.maxBatch {
		h.Error(c, apperror.NewValidation("too many criteria in batch").
			WithDetail("size", len(req.Criteria)).
			WithDetail("max", h.maxBatch))
		return
	}

	batch, err := req.ToCriteria(h.location)
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx, cancel := h.searchContext(c)
	defer cancel()

	views, err := h.service.FindBatch(ctx, batch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewShiftListResponse(views))
}

// Get handles GET /shifts/:id with purchases and positions.
func (h *ShiftHandler) Get(c *gin.Context) {
	shiftID, ok := h.ParamID(c)
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), shiftID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, view)
}

// Create handles POST /shifts.
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, view)
}

// Delete handles DELETE /shifts/:id, removing purchases and positions too.
func (h *ShiftHandler) Delete(c *gin.Context) {
	shiftID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), shiftID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
