package item

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
)

// Service provides business logic for the Item catalog.
type Service struct {
	*domain.CatalogService[*Item]
	repo Repository
}

// NewService creates a new Item service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "Item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkArticleUnique)
	base.Hooks().OnBeforeUpdate(svc.checkArticleUnique)

	return svc
}

func (s *Service) checkArticleUnique(ctx context.Context, it *Item) error {
	existing, err := s.repo.FindByArticle(ctx, it.Article)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != it.ID {
		return apperror.NewDuplicate("Item", "article", it.Article)
	}
	return nil
}
