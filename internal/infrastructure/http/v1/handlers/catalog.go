// Package handlers provides HTTP request handlers.
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/domain"
	"backoffice/internal/domain/filter"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// CatalogHandler provides generic HTTP handlers for catalog entities.
type CatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.CatalogService[T]
	entityName string

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) T
	mapUpdateDTO func(dto UpdateDTO, existing T) T
	mapToDTO     func(entity T) any
}

// CatalogHandlerConfig configures the catalog handler.
type CatalogHandlerConfig[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.CatalogService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) T
	MapUpdateDTO func(dto UpdateDTO, existing T) T
	MapToDTO     func(entity T) any
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg CatalogHandlerConfig[T, CreateDTO, UpdateDTO],
) *CatalogHandler[T, CreateDTO, UpdateDTO] {
	return &CatalogHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", f.Limit)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.Query("orderBy")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	if raw := c.Query("filter"); raw != "" {
		var items []filter.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter format (json expected)"))
			return
		}
		for _, item := range items {
			if !item.Operator.Valid() {
				h.Error(c, apperror.NewValidation("unsupported filter operator").
					WithDetail("field", item.Field).
					WithDetail("operator", string(item.Operator)))
				return
			}
		}
		f.AdvancedFilters = items
	}

	result, err := h.service.List(ctx, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = h.mapToDTO(item)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(entity))
}

// Create handles POST /{entity} - create new entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreateDTO(req)
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, h.mapToDTO(entity))
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.mapUpdateDTO(req, existing)
	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(updated))
}

// Delete handles DELETE /{entity}/:id - physical delete.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetDeletionMark handles POST /{entity}/:id/deletion-mark
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) SetDeletionMark(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), entityID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}
