package shift

import (
	"context"
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/pkg/logger"
)

const entityName = "Shift"

// Service is the shift use-case layer used by transport.
type Service struct {
	repo      Repository
	txManager tx.Manager
	engine    *Engine
}

// ServiceConfig configures the shift service.
type ServiceConfig struct {
	Repo      Repository
	TxManager tx.Manager
	Batch     BatchOptions
	Metrics   Metrics // optional
}

// NewService creates a new shift service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		engine:    NewEngine(cfg.Repo, cfg.Batch, cfg.Metrics),
	}
}

// Engine returns the underlying search engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Find runs a single search; no match is reported as NotFound.
func (s *Service) Find(ctx context.Context, c Criteria) ([]ShiftView, error) {
	views, err := s.engine.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.NewNotFound(entityName, describe(c))
	}
	return views, nil
}

// FindBatch runs a batch search. An empty result is returned as is.
func (s *Service) FindBatch(ctx context.Context, batch []Criteria) ([]ShiftView, error) {
	return s.engine.SearchBatch(ctx, batch)
}

// GetByID returns one shift with purchases and positions.
func (s *Service) GetByID(ctx context.Context, shiftID id.ID) (ShiftView, error) {
	shifts, err := s.engine.Executor().Execute(ctx, IDEquals(shiftID), Deep)
	if err != nil {
		return ShiftView{}, err
	}
	if len(shifts) == 0 {
		return ShiftView{}, apperror.NewNotFound(entityName, shiftID.String())
	}
	return Assemble(shifts[0])
}

// Create stores a new shift with its purchases and positions in one transaction.
// Ids, back-references, line numbers and totals are assigned here.
func (s *Service) Create(ctx context.Context, sh *Shift) (ShiftView, error) {
	if err := sh.Validate(ctx); err != nil {
		return ShiftView{}, err
	}
	sh.Prepare()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, sh); err != nil {
			return fmt.Errorf("create shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return ShiftView{}, writeError(err)
	}

	logger.Info(ctx, "shift created",
		"shift_id", sh.ID,
		"shop", sh.ShopNumber,
		"cash", sh.CashNumber,
		"purchases", len(sh.Purchases),
	)
	return Assemble(sh)
}

// Delete removes a shift together with its purchases and their positions.
// Children go first so the cascade never depends on storage-level rules.
func (s *Service) Delete(ctx context.Context, shiftID id.ID) error {
	var positions, purchases int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if positions, err = s.repo.DeletePositions(ctx, shiftID); err != nil {
			return fmt.Errorf("delete positions: %w", err)
		}
		if purchases, err = s.repo.DeletePurchases(ctx, shiftID); err != nil {
			return fmt.Errorf("delete purchases: %w", err)
		}
		if err = s.repo.DeleteShift(ctx, shiftID); err != nil {
			return fmt.Errorf("delete shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return writeError(err)
	}

	logger.Info(ctx, "shift deleted",
		"shift_id", shiftID,
		"purchases", purchases,
		"positions", positions,
	)
	return nil
}

// writeError keeps typed errors and wraps driver failures as StorageError.
func writeError(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewStorage(err)
}

func describe(c Criteria) map[string]any {
	out := map[string]any{"deep": c.Deep}
	if c.ShopNumber != nil {
		out["shopNumber"] = *c.ShopNumber
	}
	if c.CashNumber != nil {
		out["cashNumber"] = *c.CashNumber
	}
	if c.Date != nil {
		out["date"] = c.Date.Format("2006-01-02")
	}
	if c.Range != nil {
		out["startDate"] = c.Range.Start.Format("2006-01-02")
		out["endDate"] = c.Range.End.Format("2006-01-02")
	}
	return out
}
