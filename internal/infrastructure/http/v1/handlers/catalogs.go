package handlers

import (
	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/domain/catalogs/shop"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// ShopHTTPHandler handles the shop catalog.
type ShopHTTPHandler = CatalogHandler[*shop.Shop, dto.CreateShopRequest, dto.UpdateShopRequest]

// NewShopHandler creates the shop catalog handler.
func NewShopHandler(base *BaseHandler, service *shop.Service) *ShopHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*shop.Shop, dto.CreateShopRequest, dto.UpdateShopRequest]{
		Service:    service.CatalogService,
		EntityName: "shop",
		MapCreateDTO: func(req dto.CreateShopRequest) *shop.Shop {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateShopRequest, existing *shop.Shop) *shop.Shop {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *shop.Shop) any {
			return dto.FromShop(entity)
		},
	})
}

// CashHTTPHandler handles the cash register catalog.
type CashHTTPHandler = CatalogHandler[*cash.Cash, dto.CreateCashRequest, dto.UpdateCashRequest]

// NewCashHandler creates the cash register catalog handler.
func NewCashHandler(base *BaseHandler, service *cash.Service) *CashHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*cash.Cash, dto.CreateCashRequest, dto.UpdateCashRequest]{
		Service:    service.CatalogService,
		EntityName: "cash",
		MapCreateDTO: func(req dto.CreateCashRequest) *cash.Cash {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCashRequest, existing *cash.Cash) *cash.Cash {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *cash.Cash) any {
			return dto.FromCash(entity)
		},
	})
}

// ItemHTTPHandler handles the item catalog.
type ItemHTTPHandler = CatalogHandler[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]

// NewItemHandler creates the item catalog handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]{
		Service:    service.CatalogService,
		EntityName: "item",
		MapCreateDTO: func(req dto.CreateItemRequest) *item.Item {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateItemRequest, existing *item.Item) *item.Item {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *item.Item) any {
			return dto.FromItem(entity)
		},
	})
}

// PriceHTTPHandler handles the price catalog.
type PriceHTTPHandler = CatalogHandler[*price.Price, dto.CreatePriceRequest, dto.UpdatePriceRequest]

// NewPriceHandler creates the price catalog handler.
func NewPriceHandler(base *BaseHandler, service *price.Service) *PriceHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*price.Price, dto.CreatePriceRequest, dto.UpdatePriceRequest]{
		Service:    service.CatalogService,
		EntityName: "price",
		MapCreateDTO: func(req dto.CreatePriceRequest) *price.Price {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePriceRequest, existing *price.Price) *price.Price {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *price.Price) any {
			return dto.FromPrice(entity)
		},
	})
}

// BarcodeHTTPHandler handles the barcode catalog.
type BarcodeHTTPHandler = CatalogHandler[*barcode.Barcode, dto.CreateBarcodeRequest, dto.UpdateBarcodeRequest]

// NewBarcodeHandler creates the barcode catalog handler.
func NewBarcodeHandler(base *BaseHandler, service *barcode.Service) *BarcodeHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*barcode.Barcode, dto.CreateBarcodeRequest, dto.UpdateBarcodeRequest]{
		Service:    service.CatalogService,
		EntityName: "barcode",
		MapCreateDTO: func(req dto.CreateBarcodeRequest) *barcode.Barcode {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBarcodeRequest, existing *barcode.Barcode) *barcode.Barcode {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *barcode.Barcode) any {
			return dto.FromBarcode(entity)
		},
	})
}
