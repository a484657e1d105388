package barcode

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

// Service provides business logic for the Barcode catalog.
type Service struct {
	*domain.CatalogService[*Barcode]
	repo  Repository
	items ItemChecker
}

// NewService creates a new Barcode service.
func NewService(repo Repository, items ItemChecker, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Barcode]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "Barcode",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		items:          items,
	}

	base.Hooks().OnBeforeCreate(svc.checkItemExists)
	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkItemExists)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUnique)

	return svc
}

// Resolve returns the barcode record for a scanned code.
func (s *Service) Resolve(ctx context.Context, code string) (*Barcode, error) {
	b, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("Barcode", code)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) checkItemExists(ctx context.Context, b *Barcode) error {
	ok, err := s.items.Exists(ctx, b.ItemID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("item does not exist").
			WithDetail("itemId", b.ItemID.String())
	}
	return nil
}

func (s *Service) checkCodeUnique(ctx context.Context, b *Barcode) error {
	existing, err := s.repo.FindByCode(ctx, b.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != b.ID {
		return apperror.NewDuplicate("Barcode", "code", b.Code)
	}
	return nil
}
