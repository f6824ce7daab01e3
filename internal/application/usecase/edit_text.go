// Package usecase contains the editing engine and the host-facing use cases
// built on it.
//
// Nothing here takes a lock: an engine and everything attached to it is
// driven from one goroutine, one batch at a time. Hosts with several
// threads serialise their calls.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/repository"
	"github.com/bnema/textedit/internal/domain/service"
	"github.com/bnema/textedit/internal/logging"
)

// EditTextUseCase is the edit engine. It applies input batches to the
// focused field and reports which fields changed.
type EditTextUseCase struct {
	fields   repository.FieldRepository
	focus    *service.FocusArbiter
	repeater *service.KeyRepeater
	feed     *ChangeFeed
}

// NewEditTextUseCase creates an engine over the given collaborators.
func NewEditTextUseCase(
	fields repository.FieldRepository,
	focus *service.FocusArbiter,
	repeater *service.KeyRepeater,
	feed *ChangeFeed,
) *EditTextUseCase {
	return &EditTextUseCase{
		fields:   fields,
		focus:    focus,
		repeater: repeater,
		feed:     feed,
	}
}

// Feed returns the notification feed.
func (uc *EditTextUseCase) Feed() *ChangeFeed { return uc.feed }

// Repeater returns the key repeat timer.
func (uc *EditTextUseCase) Repeater() *service.KeyRepeater { return uc.repeater }

// CreateField validates cfg and registers a field. Configuration errors
// wrap entity.ErrInvalidPattern or entity.ErrInvalidMaxLength.
func (uc *EditTextUseCase) CreateField(ctx context.Context, cfg entity.FieldConfig) (entity.FieldID, error) {
	field, err := uc.fields.Create(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("create field: %w", err)
	}
	if cfg.Focused {
		uc.focus.Focus(field.ID(), field.Group())
	}
	logging.FromContext(logging.WithFieldID(ctx, string(field.ID()))).Debug().
		Str("group", field.Group()).
		Msg("field created")
	return field.ID(), nil
}

// RemoveField unregisters a field and drops its focus.
func (uc *EditTextUseCase) RemoveField(ctx context.Context, id entity.FieldID) error {
	if err := uc.fields.Remove(ctx, id); err != nil {
		return err
	}
	uc.focus.Blur(id)
	return nil
}

// Reconfigure replaces a field's filters, max length and placeholder.
// Content, cursor, group and focus are kept.
func (uc *EditTextUseCase) Reconfigure(ctx context.Context, id entity.FieldID, cfg entity.FieldConfig) error {
	field, err := uc.fields.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := field.Reconfigure(cfg); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	logging.FromContext(logging.WithFieldID(ctx, string(id))).Debug().Msg("field reconfigured")
	return nil
}

// SetContent replaces a field's content verbatim and moves its cursor to
// the end. Filters and max length do not apply and no notification is
// emitted.
func (uc *EditTextUseCase) SetContent(ctx context.Context, id entity.FieldID, text string) error {
	field, err := uc.fields.Get(ctx, id)
	if err != nil {
		return err
	}
	field.SetContent(text)
	return nil
}

// Snapshot returns a copy of one field with its focus reflected.
func (uc *EditTextUseCase) Snapshot(ctx context.Context, id entity.FieldID) (entity.FieldSnapshot, error) {
	field, err := uc.fields.Get(ctx, id)
	if err != nil {
		return entity.FieldSnapshot{}, err
	}
	return field.Snapshot(uc.focus.IsFocused(id)), nil
}

// Snapshots returns every field in creation order.
func (uc *EditTextUseCase) Snapshots(ctx context.Context) ([]entity.FieldSnapshot, error) {
	fields, err := uc.fields.List(ctx)
	if err != nil {
		return nil, err
	}
	snaps := make([]entity.FieldSnapshot, len(fields))
	for i, f := range fields {
		snaps[i] = f.Snapshot(uc.focus.IsFocused(f.ID()))
	}
	return snaps, nil
}

// Focus gives id the focus of its group, as a click on it would.
func (uc *EditTextUseCase) Focus(ctx context.Context, id entity.FieldID) error {
	field, err := uc.fields.Get(ctx, id)
	if err != nil {
		return err
	}
	uc.focus.Focus(id, field.Group())
	return nil
}

// Blur removes focus from id. Blurring an unfocused field is a no-op.
func (uc *EditTextUseCase) Blur(ctx context.Context, id entity.FieldID) error {
	if _, err := uc.fields.Get(ctx, id); err != nil {
		return err
	}
	uc.focus.Blur(id)
	return nil
}

// Focused returns the field that receives input.
func (uc *EditTextUseCase) Focused() (entity.FieldID, bool) {
	return uc.focus.Focused()
}

// ActiveGroup returns the group of the focused field.
func (uc *EditTextUseCase) ActiveGroup() (string, bool) {
	return uc.focus.ActiveGroup()
}

// ReleaseAllKeys stops every key repeat stream.
func (uc *EditTextUseCase) ReleaseAllKeys() {
	uc.repeater.ReleaseAll()
}

// batch tracks the content each touched field had when the batch started.
type batch struct {
	start map[entity.FieldID]string
	order []entity.FieldID
}

func (b *batch) touch(f *entity.FieldState) {
	if _, ok := b.start[f.ID()]; ok {
		return
	}
	b.start[f.ID()] = f.Content()
	b.order = append(b.order, f.ID())
}

// ProcessBatch applies events in order and returns one notification per
// field whose content differs from what it was when the batch started.
// The notifications are also published to the feed.
func (uc *EditTextUseCase) ProcessBatch(ctx context.Context, events []entity.InputEvent) []entity.ChangeNotification {
	log := logging.FromContext(ctx)
	b := &batch{start: make(map[entity.FieldID]string)}

	// Releases later in the batch cut off repeats scheduled after them.
	for _, ev := range events {
		if k, ok := ev.(entity.KeyEvent); ok && k.Virtual && k.Action == entity.KeyUp {
			uc.repeater.NoteRelease(k.Key, k.At)
		}
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case entity.KeyEvent:
			uc.handleKey(ctx, b, e)
		case entity.TextInputEvent:
			// typed runes are filtered one at a time, a paste as a whole
			for _, r := range e.Text {
				uc.insert(ctx, b, string(r))
			}
		case entity.PasteEvent:
			uc.insert(ctx, b, e.Text)
		case entity.FocusClickEvent:
			field, err := uc.fields.Get(ctx, e.FieldID)
			if err != nil {
				log.Debug().Err(err).Msg("focus click on unknown field")
				continue
			}
			uc.focus.Focus(e.FieldID, field.Group())
		case entity.BlurEvent:
			uc.focus.Blur(e.FieldID)
		case entity.Tick:
			for _, rep := range uc.repeater.Advance(e.Now) {
				uc.applyKey(ctx, b, rep.Key)
			}
		}
	}
	uc.repeater.EndBatch()

	var notes []entity.ChangeNotification
	for _, id := range b.order {
		field, err := uc.fields.Get(ctx, id)
		if err != nil {
			continue
		}
		if text := field.Content(); text != b.start[id] {
			notes = append(notes, entity.ChangeNotification{FieldID: id, Text: text})
		}
	}

	if len(notes) > 0 {
		log.Debug().Int("events", len(events)).Int("changed", len(notes)).Msg("batch applied")
		uc.feed.Publish(ctx, notes)
	}
	return notes
}

func (uc *EditTextUseCase) handleKey(ctx context.Context, b *batch, e entity.KeyEvent) {
	if !e.Virtual {
		if e.Action == entity.KeyDown {
			uc.applyKey(ctx, b, e.Key)
		}
		return
	}

	if e.Action == entity.KeyUp {
		uc.repeater.Release(e.Key, e.At)
		return
	}
	uc.repeater.Press(e.Key, e.At)
	uc.applyKey(ctx, b, e.Key)
}

func (uc *EditTextUseCase) focused(ctx context.Context) *entity.FieldState {
	id, ok := uc.focus.Focused()
	if !ok {
		return nil
	}
	field, err := uc.fields.Get(ctx, id)
	if err != nil {
		return nil
	}
	return field
}

func (uc *EditTextUseCase) applyKey(ctx context.Context, b *batch, key entity.Key) {
	switch key.Code {
	case entity.KeyCharacter:
		uc.insert(ctx, b, key.Text)
		return
	case entity.KeySpace:
		uc.insert(ctx, b, " ")
		return
	}

	field := uc.focused(ctx)
	if field == nil {
		return
	}

	switch key.Code {
	case entity.KeyBackspace:
		b.touch(field)
		field.DeleteBackward()
	case entity.KeyDelete:
		b.touch(field)
		field.DeleteForward()
	case entity.KeyArrowLeft:
		field.MoveCursor(-1)
	case entity.KeyArrowRight:
		field.MoveCursor(1)
	case entity.KeyHome:
		field.MoveHome()
	case entity.KeyEnd:
		field.MoveEnd()
	}
}

// insert applies text as one candidate: filtered once, then truncated to
// the remaining capacity, then inserted at the cursor.
func (uc *EditTextUseCase) insert(ctx context.Context, b *batch, text string) {
	if text == "" {
		return
	}
	field := uc.focused(ctx)
	if field == nil {
		return
	}

	if !field.Filters().Accepts(text) {
		logging.FromContext(ctx).Trace().
			Str("field_id", string(field.ID())).
			Str("text", text).
			Msg("insert rejected by filter")
		return
	}

	runes := []rune(text)
	if remaining, bounded := field.Remaining(); bounded {
		if remaining == 0 {
			return
		}
		if len(runes) > remaining {
			runes = runes[:remaining]
		}
	}

	b.touch(field)
	field.Insert(runes)
}
