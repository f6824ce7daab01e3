// Package memory provides in-memory repositories.
package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/repository"
	"github.com/bnema/textedit/internal/logging"
)

type fieldRepo struct {
	fields map[entity.FieldID]*entity.FieldState
	order  []entity.FieldID
	newID  func() entity.FieldID
}

// NewFieldRepository creates an empty in-memory field repository.
// It is not safe for concurrent use; the engine serialises access.
func NewFieldRepository() repository.FieldRepository {
	return &fieldRepo{
		fields: make(map[entity.FieldID]*entity.FieldState),
		newID: func() entity.FieldID {
			return entity.FieldID(uuid.New().String())
		},
	}
}

func (r *fieldRepo) Create(ctx context.Context, cfg entity.FieldConfig) (*entity.FieldState, error) {
	id := cfg.ID
	if id == "" {
		id = r.newID()
	}
	if _, exists := r.fields[id]; exists {
		return nil, fmt.Errorf("%w: %q", entity.ErrDuplicateField, id)
	}

	field, err := entity.NewFieldState(id, cfg)
	if err != nil {
		return nil, err
	}

	r.fields[id] = field
	r.order = append(r.order, id)

	logging.FromContext(ctx).Debug().
		Str("field_id", string(id)).
		Str("group", cfg.Group).
		Msg("field created")
	return field, nil
}

func (r *fieldRepo) Get(_ context.Context, id entity.FieldID) (*entity.FieldState, error) {
	field, ok := r.fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	return field, nil
}

func (r *fieldRepo) Remove(ctx context.Context, id entity.FieldID) error {
	if _, ok := r.fields[id]; !ok {
		return fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	delete(r.fields, id)
	r.order = slices.DeleteFunc(r.order, func(other entity.FieldID) bool {
		return other == id
	})

	logging.FromContext(ctx).Debug().Str("field_id", string(id)).Msg("field removed")
	return nil
}

func (r *fieldRepo) List(_ context.Context) ([]*entity.FieldState, error) {
	fields := make([]*entity.FieldState, 0, len(r.order))
	for _, id := range r.order {
		fields = append(fields, r.fields[id])
	}
	return fields, nil
}
