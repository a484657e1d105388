package entity

import (
	"context"

	"backoffice/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for reference records (shops, cashes, items...).
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletionMark indicates soft-deleted entity
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch increments version (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.Version++
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// Undelete clears the deletion mark.
func (b *BaseEntity) Undelete() {
	b.DeletionMark = false
}
