package domain

import (
	"context"
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/pkg/logger"
)

// CatalogService provides business logic for catalog entities.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the name used in error messages.
func (s *CatalogService[T]) EntityName() string {
	return s.entityName
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found is mapped to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewStorage(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

func (s *CatalogService[T]) normalizeStorageErr(err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewStorage(err).WithDetail("entity", s.entityName)
}

// Create creates a new catalog entity.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	// 1. Validate entity invariants
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Create in transaction; before-hooks see the same transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeCreate(ctx, entity); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return s.normalizeStorageErr(err)
	}

	// 3. Run after-create hooks (outside transaction)
	if err := s.hooks.RunAfterCreate(ctx, entity); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeUpdate(ctx, entity); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return s.normalizeStorageErr(err)
	}

	if err := s.hooks.RunAfterUpdate(ctx, entity); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete physically removes the entity.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	// 1. Get entity first (for hooks)
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	// 2. Hard delete in transaction
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeDelete(ctx, entity); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return s.normalizeStorageErr(err)
	}

	// 3. Run after-delete hooks
	if err := s.hooks.RunAfterDelete(ctx, entity); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark.
func (s *CatalogService[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, entityID, marked)
	})
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID.String())
	}
	return s.normalizeStorageErr(err)
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, s.normalizeStorageErr(err)
	}
	return result, nil
}

// Exists checks if entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	ok, err := s.repo.Exists(ctx, entityID)
	if err != nil {
		return false, s.normalizeStorageErr(err)
	}
	return ok, nil
}
