// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
//
// Usage:
//
//	repo := catalog_repo.NewShopRepo(txm)
//	service := shop.NewService(repo, txm)
//	handler := handlers.NewShopHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/shops"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}
