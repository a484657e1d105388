package cash

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/shop"
)

// ShopFinder resolves shops by number.
type ShopFinder interface {
	FindByNumber(ctx context.Context, number int) (*shop.Shop, error)
}

// Service provides business logic for the Cash catalog.
type Service struct {
	*domain.CatalogService[*Cash]
	repo  Repository
	shops ShopFinder
}

// NewService creates a new Cash service.
func NewService(repo Repository, shops ShopFinder, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Cash]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "Cash",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		shops:          shops,
	}

	base.Hooks().OnBeforeCreate(svc.checkShopExists)
	base.Hooks().OnBeforeCreate(svc.checkNumberUnique)
	base.Hooks().OnBeforeUpdate(svc.checkShopExists)
	base.Hooks().OnBeforeUpdate(svc.checkNumberUnique)

	return svc
}

func (s *Service) checkShopExists(ctx context.Context, c *Cash) error {
	if _, err := s.shops.FindByNumber(ctx, c.ShopNumber); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("shop does not exist").
				WithDetail("shopNumber", c.ShopNumber)
		}
		return err
	}
	return nil
}

func (s *Service) checkNumberUnique(ctx context.Context, c *Cash) error {
	existing, err := s.repo.FindByNumber(ctx, c.ShopNumber, c.Number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("cash with this number already exists in shop").
			WithDetail("shopNumber", c.ShopNumber).
			WithDetail("number", c.Number)
	}
	return nil
}
