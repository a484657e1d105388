package shop

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
)

// Service provides business logic for the Shop catalog.
type Service struct {
	*domain.CatalogService[*Shop]
	repo Repository
}

// NewService creates a new Shop service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Shop]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "Shop",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNumberUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNumberUnique)

	return svc
}

// GetByNumber returns the shop with the given number.
func (s *Service) GetByNumber(ctx context.Context, number int) (*Shop, error) {
	found, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("Shop", number)
		}
		return nil, err
	}
	return found, nil
}

func (s *Service) checkNumberUnique(ctx context.Context, shop *Shop) error {
	existing, err := s.repo.FindByNumber(ctx, shop.Number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != shop.ID {
		return apperror.NewConflict("shop with this number already exists").
			WithDetail("number", shop.Number)
	}
	return nil
}
