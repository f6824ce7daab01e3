// Package repository defines storage interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/textedit/internal/domain/entity"
)

// FieldRepository owns the field states of one engine.
type FieldRepository interface {
	// Create validates cfg and stores a new field. An empty cfg.ID gets a
	// generated one. Returns entity.ErrDuplicateField when the id is taken.
	Create(ctx context.Context, cfg entity.FieldConfig) (*entity.FieldState, error)

	// Get returns the field or entity.ErrFieldNotFound.
	Get(ctx context.Context, id entity.FieldID) (*entity.FieldState, error)

	// Remove deletes the field or returns entity.ErrFieldNotFound.
	Remove(ctx context.Context, id entity.FieldID) error

	// List returns every field in creation order.
	List(ctx context.Context) ([]*entity.FieldState, error)
}
