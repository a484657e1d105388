package price

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
)

// ItemChecker reports whether an item exists.
type ItemChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for the Price catalog.
type Service struct {
	*domain.CatalogService[*Price]
	repo  Repository
	items ItemChecker
}

// NewService creates a new Price service.
func NewService(repo Repository, items ItemChecker, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Price]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "Price",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		items:          items,
	}

	base.Hooks().OnBeforeCreate(svc.checkItemExists)
	base.Hooks().OnBeforeCreate(svc.checkSingleActive)
	base.Hooks().OnBeforeUpdate(svc.checkItemExists)
	base.Hooks().OnBeforeUpdate(svc.checkSingleActive)

	return svc
}

// Effective returns the price that applies to an item in a shop: the shop
// override when present, the chain-wide price otherwise.
func (s *Service) Effective(ctx context.Context, itemID id.ID, shopNumber int) (*Price, error) {
	p, err := s.repo.FindFor(ctx, itemID, &shopNumber)
	if err == nil {
		return p, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	p, err = s.repo.FindFor(ctx, itemID, nil)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("Price", itemID.String()).WithDetail("shopNumber", shopNumber)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) checkItemExists(ctx context.Context, p *Price) error {
	ok, err := s.items.Exists(ctx, p.ItemID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("item does not exist").
			WithDetail("itemId", p.ItemID.String())
	}
	return nil
}

func (s *Service) checkSingleActive(ctx context.Context, p *Price) error {
	existing, err := s.repo.FindFor(ctx, p.ItemID, p.ShopNumber)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != p.ID {
		conflict := apperror.NewConflict("price for this item and shop already exists").
			WithDetail("itemId", p.ItemID.String())
		if p.ShopNumber != nil {
			conflict.WithDetail("shopNumber", *p.ShopNumber)
		}
		return conflict
	}
	return nil
}
