package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/domain/catalogs/shop"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/pkg/logger"
)

// CatalogServices groups the reference data catalog services.
type CatalogServices struct {
	Shops    *shop.Service
	Cashes   *cash.Service
	Items    *item.Service
	Prices   *price.Service
	Barcodes *barcode.Service
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Health serves /health/*
	Health *handlers.HealthHandler

	// Shifts serves shift search and registration
	Shifts handlers.ShiftService

	// Location is the time zone search dates are interpreted in
	Location *time.Location

	// SearchTimeout bounds a single or batch search; zero disables it
	SearchTimeout time.Duration

	// MaxBatchSize rejects oversized batch bodies before they are parsed; zero means unlimited
	MaxBatchSize int

	// Catalogs are registered only when set
	Catalogs *CatalogServices

	// Metrics serves /metrics when set
	Metrics http.Handler

	// CompressionMinBytes enables zstd responses from this size; zero disables it
	CompressionMinBytes int
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.CompressionMinBytes > 0 {
		compress, err := middleware.Compress(cfg.CompressionMinBytes)
		if err != nil {
			return nil, fmt.Errorf("create compression middleware: %w", err)
		}
		router.Use(compress)
	}
	router.Use(middleware.ErrorHandler())

	health := router.Group("/health")
	{
		health.GET("/live", cfg.Health.Live)
		health.GET("/ready", cfg.Health.Ready)
		health.GET("/info", cfg.Health.Info)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	v1 := router.Group("/api/v1")
	{
		registerShiftRoutes(v1, cfg)
		registerCatalogRoutes(v1, cfg)
	}

	return router, nil
}

// registerShiftRoutes registers shift search and registration endpoints.
func registerShiftRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewShiftHandler(handlers.NewBaseHandler(), cfg.Shifts, handlers.ShiftHandlerConfig{
		Location:     cfg.Location,
		Timeout:      cfg.SearchTimeout,
		MaxBatchSize: cfg.MaxBatchSize,
	})

	shifts := rg.Group("/shifts")
	{
		shifts.GET("/search", h.Search)
		shifts.POST("/search/batch", h.SearchBatch)
		shifts.POST("", h.Create)
		shifts.GET("/:id", h.Get)
		shifts.DELETE("/:id", h.Delete)
	}
}

// registerCatalogRoutes registers reference data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Catalogs == nil {
		return
	}

	base := handlers.NewBaseHandler()
	catalogs := rg.Group("/catalog")

	RegisterCatalogRoutes(catalogs.Group("/shops"), handlers.NewShopHandler(base, cfg.Catalogs.Shops))
	RegisterCatalogRoutes(catalogs.Group("/cashes"), handlers.NewCashHandler(base, cfg.Catalogs.Cashes))
	RegisterCatalogRoutes(catalogs.Group("/items"), handlers.NewItemHandler(base, cfg.Catalogs.Items))
	RegisterCatalogRoutes(catalogs.Group("/prices"), handlers.NewPriceHandler(base, cfg.Catalogs.Prices))
	RegisterCatalogRoutes(catalogs.Group("/barcodes"), handlers.NewBarcodeHandler(base, cfg.Catalogs.Barcodes))
}
