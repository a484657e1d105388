package dto

import (
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/domain/catalogs/shop"
)

// --- Shop ---

// CreateShopRequest is the request body for creating a shop.
type CreateShopRequest struct {
	Number  int     `json:"number" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateShopRequest) ToEntity() *shop.Shop {
	s := shop.NewShop(r.Number, r.Name)
	s.Address = r.Address
	return s
}

// UpdateShopRequest is the request body for updating a shop.
type UpdateShopRequest struct {
	CreateShopRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateShopRequest) ApplyTo(s *shop.Shop) {
	s.Number = r.Number
	s.Name = r.Name
	s.Address = r.Address
	s.Version = r.Version
}

// ShopResponse is the response body for a shop.
type ShopResponse struct {
	CatalogResponse
	Number  int     `json:"number"`
	Address *string `json:"address,omitempty"`
}

// FromShop creates response DTO from domain entity.
func FromShop(s *shop.Shop) *ShopResponse {
	return &ShopResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		Number:          s.Number,
		Address:         s.Address,
	}
}

// --- Cash ---

// CreateCashRequest is the request body for creating a cash register.
type CreateCashRequest struct {
	ShopNumber int    `json:"shopNumber" binding:"required"`
	Number     int    `json:"number" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Serial     string `json:"serial" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCashRequest) ToEntity() *cash.Cash {
	return cash.NewCash(r.ShopNumber, r.Number, r.Name, r.Serial)
}

// UpdateCashRequest is the request body for updating a cash register.
type UpdateCashRequest struct {
	CreateCashRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCashRequest) ApplyTo(c *cash.Cash) {
	c.ShopNumber = r.ShopNumber
	c.Number = r.Number
	c.Name = r.Name
	c.Serial = r.Serial
	c.Version = r.Version
}

// CashResponse is the response body for a cash register.
type CashResponse struct {
	CatalogResponse
	ShopNumber int    `json:"shopNumber"`
	Number     int    `json:"number"`
	Serial     string `json:"serial"`
}

// FromCash creates response DTO from domain entity.
func FromCash(c *cash.Cash) *CashResponse {
	return &CashResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		ShopNumber:      c.ShopNumber,
		Number:          c.Number,
		Serial:          c.Serial,
	}
}

// --- Item ---

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	Article string `json:"article" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemRequest) ToEntity() *item.Item {
	return item.NewItem(r.Article, r.Name)
}

// UpdateItemRequest is the request body for updating an item.
type UpdateItemRequest struct {
	CreateItemRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateItemRequest) ApplyTo(i *item.Item) {
	i.Article = r.Article
	i.Name = r.Name
	i.Version = r.Version
}

// ItemResponse is the response body for an item.
type ItemResponse struct {
	CatalogResponse
	Article string `json:"article"`
}

// FromItem creates response DTO from domain entity.
func FromItem(i *item.Item) *ItemResponse {
	return &ItemResponse{
		CatalogResponse: FromCatalog(i.Catalog),
		Article:         i.Article,
	}
}

// --- Price ---

// CreatePriceRequest is the request body for creating a price.
type CreatePriceRequest struct {
	ItemID     id.ID       `json:"itemId" binding:"required"`
	ShopNumber *int        `json:"shopNumber"`
	Value      types.Money `json:"value"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePriceRequest) ToEntity() *price.Price {
	return price.NewPrice(r.ItemID, r.ShopNumber, r.Value)
}

// UpdatePriceRequest is the request body for updating a price.
type UpdatePriceRequest struct {
	CreatePriceRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePriceRequest) ApplyTo(p *price.Price) {
	p.ItemID = r.ItemID
	p.ShopNumber = r.ShopNumber
	p.Value = r.Value
	p.Version = r.Version
}

// PriceResponse is the response body for a price.
type PriceResponse struct {
	BaseResponse
	ItemID     string      `json:"itemId"`
	ShopNumber *int        `json:"shopNumber,omitempty"`
	Value      types.Money `json:"value"`
}

// FromPrice creates response DTO from domain entity.
func FromPrice(p *price.Price) *PriceResponse {
	return &PriceResponse{
		BaseResponse: FromBase(p.BaseEntity),
		ItemID:       p.ItemID.String(),
		ShopNumber:   p.ShopNumber,
		Value:        p.Value,
	}
}

// --- Barcode ---

// CreateBarcodeRequest is the request body for creating a barcode.
type CreateBarcodeRequest struct {
	ItemID id.ID  `json:"itemId" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBarcodeRequest) ToEntity() *barcode.Barcode {
	return barcode.NewBarcode(r.ItemID, r.Code)
}

// UpdateBarcodeRequest is the request body for updating a barcode.
type UpdateBarcodeRequest struct {
	CreateBarcodeRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBarcodeRequest) ApplyTo(b *barcode.Barcode) {
	b.ItemID = r.ItemID
	b.Code = r.Code
	b.Version = r.Version
}

// BarcodeResponse is the response body for a barcode.
type BarcodeResponse struct {
	BaseResponse
	ItemID string `json:"itemId"`
	Code   string `json:"code"`
}

// FromBarcode creates response DTO from domain entity.
func FromBarcode(b *barcode.Barcode) *BarcodeResponse {
	return &BarcodeResponse{
		BaseResponse: FromBase(b.BaseEntity),
		ItemID:       b.ItemID.String(),
		Code:         b.Code,
	}
}
