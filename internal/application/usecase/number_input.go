package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/logging"
)

type numberInput struct {
	rng   entity.NumberRange
	value int64
}

// NumberInputUseCase turns text fields into clamped integer inputs.
//
// It watches the engine's change feed: whenever a number field's text
// parses as an integer, the value is clamped into range, written back with
// SetContent and reported to number observers. The text notification for
// that batch was already queued and carries the unclamped text.
type NumberInputUseCase struct {
	engine      *EditTextUseCase
	inputs      map[entity.FieldID]*numberInput
	observers   []port.NumberObserver
	unsubscribe func()
}

// NewNumberInputUseCase attaches to engine's change feed.
func NewNumberInputUseCase(engine *EditTextUseCase) *NumberInputUseCase {
	uc := &NumberInputUseCase{
		engine: engine,
		inputs: make(map[entity.FieldID]*numberInput),
	}
	uc.unsubscribe = engine.Feed().Subscribe(uc)
	return uc
}

// Close detaches from the change feed.
func (uc *NumberInputUseCase) Close() {
	uc.unsubscribe()
}

// Subscribe registers obs for value changes.
func (uc *NumberInputUseCase) Subscribe(obs port.NumberObserver) {
	uc.observers = append(uc.observers, obs)
}

// Create registers a number input. The initial value is clamped.
func (uc *NumberInputUseCase) Create(ctx context.Context, cfg entity.NumberInputConfig) (entity.FieldID, error) {
	rng, err := entity.NewNumberRange(cfg.Min, cfg.Max)
	if err != nil {
		return "", fmt.Errorf("number input %q: %w", cfg.ID, err)
	}

	id, err := uc.engine.CreateField(ctx, cfg.FieldConfig(rng))
	if err != nil {
		return "", err
	}
	uc.inputs[id] = &numberInput{rng: rng, value: rng.Clamp(cfg.Value)}
	return id, nil
}

// Remove unregisters the number input and its field.
func (uc *NumberInputUseCase) Remove(ctx context.Context, id entity.FieldID) error {
	if _, ok := uc.inputs[id]; !ok {
		return fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	delete(uc.inputs, id)
	return uc.engine.RemoveField(ctx, id)
}

// IsNumberInput reports whether id was created by this use case.
func (uc *NumberInputUseCase) IsNumberInput(id entity.FieldID) bool {
	_, ok := uc.inputs[id]
	return ok
}

// Value returns the last accepted value.
func (uc *NumberInputUseCase) Value(id entity.FieldID) (int64, error) {
	in, ok := uc.inputs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	return in.value, nil
}

// Range returns the bounds of a number input.
func (uc *NumberInputUseCase) Range(id entity.FieldID) (entity.NumberRange, error) {
	in, ok := uc.inputs[id]
	if !ok {
		return entity.NumberRange{}, fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	return in.rng, nil
}

// Increment adds one, clamped to the range.
func (uc *NumberInputUseCase) Increment(ctx context.Context, id entity.FieldID) (int64, error) {
	return uc.step(ctx, id, 1)
}

// Decrement subtracts one, clamped to the range.
func (uc *NumberInputUseCase) Decrement(ctx context.Context, id entity.FieldID) (int64, error) {
	return uc.step(ctx, id, -1)
}

// SetValue clamps v and writes it to the field.
func (uc *NumberInputUseCase) SetValue(ctx context.Context, id entity.FieldID, v int64) (int64, error) {
	in, ok := uc.inputs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	return uc.commit(ctx, id, in, v)
}

func (uc *NumberInputUseCase) step(ctx context.Context, id entity.FieldID, delta int64) (int64, error) {
	in, ok := uc.inputs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", entity.ErrFieldNotFound, id)
	}
	next := in.value
	switch {
	case delta > 0 && next < in.rng.Max:
		next++
	case delta < 0 && next > in.rng.Min:
		next--
	}
	return uc.commit(ctx, id, in, next)
}

func (uc *NumberInputUseCase) commit(ctx context.Context, id entity.FieldID, in *numberInput, v int64) (int64, error) {
	in.value = in.rng.Clamp(v)
	if err := uc.engine.SetContent(ctx, id, strconv.FormatInt(in.value, 10)); err != nil {
		return 0, err
	}

	n := entity.NumberChanged{FieldID: id, Value: in.value}
	for _, obs := range uc.observers {
		obs.OnNumberChanged(ctx, n)
	}
	return in.value, nil
}

// OnTextChanged implements port.ChangeObserver.
func (uc *NumberInputUseCase) OnTextChanged(ctx context.Context, n entity.ChangeNotification) {
	in, ok := uc.inputs[n.FieldID]
	if !ok {
		return
	}

	v, err := strconv.ParseInt(n.Text, 10, 64)
	if err != nil {
		// "", "-" and "1-2" are valid intermediate text; keep the last value.
		logging.FromContext(ctx).Trace().
			Str("field_id", string(n.FieldID)).
			Str("text", n.Text).
			Msg("number input text not parseable yet")
		return
	}

	if _, err := uc.commit(ctx, n.FieldID, in, v); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("field_id", string(n.FieldID)).Msg("number input write back failed")
	}
}
