// Package bootstrap builds a ready-to-drive editing engine from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/application/usecase"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/service"
	"github.com/bnema/textedit/internal/infrastructure/config"
	"github.com/bnema/textedit/internal/infrastructure/persistence/memory"
	"github.com/bnema/textedit/internal/logging"
)

// Engine groups the use cases a host drives.
type Engine struct {
	Editor   *usecase.EditTextUseCase
	Numbers  *usecase.NumberInputUseCase
	Keyboard *usecase.VirtualKeyboardUseCase
	// Paste is nil when no clipboard was given.
	Paste *usecase.PasteFromClipboardUseCase

	queueSize int
}

// NewEngine creates an engine and the fields and number inputs cfg declares.
// clip may be nil.
func NewEngine(ctx context.Context, cfg *config.Config, clip port.Clipboard) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx = logging.WithComponent(ctx, "bootstrap")
	timer := NewPhaseTimer()

	layout, err := entity.LayoutByName(cfg.VirtualKeyboard.Layout)
	if err != nil {
		return nil, err
	}
	position, err := entity.ParseKeyboardPosition(cfg.VirtualKeyboard.Position)
	if err != nil {
		return nil, err
	}

	editor := usecase.NewEditTextUseCase(
		memory.NewFieldRepository(),
		service.NewFocusArbiter(),
		service.NewKeyRepeater(cfg.Editor.RepeatConfig()),
		usecase.NewChangeFeed(cfg.Editor.NotificationQueueSize),
	)
	e := &Engine{
		Editor:    editor,
		Numbers:   usecase.NewNumberInputUseCase(editor),
		Keyboard:  usecase.NewVirtualKeyboardUseCase(layout, position),
		queueSize: cfg.Editor.NotificationQueueSize,
	}
	if clip != nil {
		e.Paste = usecase.NewPasteFromClipboardUseCase(clip)
	}
	timer.Mark("wire")

	for _, preset := range cfg.Fields {
		if _, err := editor.CreateField(ctx, preset.ToFieldConfig()); err != nil {
			e.Close()
			return nil, fmt.Errorf("field %q: %w", preset.ID, err)
		}
	}
	for _, preset := range cfg.NumberInputs {
		if _, err := e.Numbers.Create(ctx, preset.ToNumberInputConfig()); err != nil {
			e.Close()
			return nil, err
		}
	}
	timer.Mark("fields")

	if cfg.VirtualKeyboard.Enabled {
		e.Keyboard.Show(ctx, position)
	}
	timer.LogDebug(ctx, "engine ready")
	return e, nil
}

// Apply replaces the engine's configuration with cfg. Fields present in both
// keep their content and focus, fields that disappeared are removed and new
// ones are created. A field or number input that changed group, and a number
// input whose range changed, is recreated with its current content. The
// notification queue size is fixed at creation.
//
// cfg is checked in full before anything changes: on error the engine is
// left as it was.
func (e *Engine) Apply(ctx context.Context, cfg *config.Config) error {
	ctx = logging.WithComponent(ctx, "bootstrap")
	log := logging.FromContext(ctx)

	if err := checkApplicable(cfg); err != nil {
		log.Warn().Err(err).Msg("configuration not applied")
		return err
	}

	e.Editor.Repeater().SetConfig(cfg.Editor.RepeatConfig())
	if cfg.Editor.NotificationQueueSize != e.queueSize {
		log.Warn().
			Int("current", e.queueSize).
			Int("configured", cfg.Editor.NotificationQueueSize).
			Msg("notification queue size changes need a restart")
	}

	wanted := make(map[entity.FieldID]bool, len(cfg.Fields)+len(cfg.NumberInputs))
	for _, p := range cfg.Fields {
		wanted[entity.FieldID(p.ID)] = true
	}
	for _, p := range cfg.NumberInputs {
		wanted[entity.FieldID(p.ID)] = true
	}

	snaps, err := e.Editor.Snapshots(ctx)
	if err != nil {
		return err
	}
	existing := make(map[entity.FieldID]bool, len(snaps))
	current := make(map[entity.FieldID]entity.FieldSnapshot, len(snaps))
	for _, s := range snaps {
		existing[s.ID] = true
		current[s.ID] = s
		if wanted[s.ID] {
			continue
		}
		if err := e.remove(ctx, s.ID); err != nil {
			return err
		}
		log.Debug().Str("field_id", string(s.ID)).Msg("field removed by reload")
	}

	for _, p := range cfg.Fields {
		id := entity.FieldID(p.ID)
		fc := p.ToFieldConfig()
		if e.Numbers.IsNumberInput(id) {
			// The id moved from number_inputs to fields.
			if err := e.Numbers.Remove(ctx, id); err != nil {
				return err
			}
			existing[id] = false
		}
		if existing[id] && current[id].Group == fc.Group {
			if err := e.Editor.Reconfigure(ctx, id, fc); err != nil {
				return fmt.Errorf("field %q: %w", p.ID, err)
			}
			continue
		}
		if existing[id] {
			log.Debug().
				Str("field_id", p.ID).
				Str("from", current[id].Group).
				Str("to", fc.Group).
				Msg("field moved to another group")
			fc.Content = current[id].Content
			fc.Focused = current[id].Focused
			if err := e.Editor.RemoveField(ctx, id); err != nil {
				return err
			}
		}
		if _, err := e.Editor.CreateField(ctx, fc); err != nil {
			return fmt.Errorf("field %q: %w", p.ID, err)
		}
	}

	for _, p := range cfg.NumberInputs {
		if err := e.applyNumberInput(ctx, p, existing[entity.FieldID(p.ID)]); err != nil {
			return err
		}
	}
	return nil
}

// checkApplicable reports whether every part of cfg can be built.
func checkApplicable(cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	for _, p := range cfg.Fields {
		if _, err := entity.NewFieldState(entity.FieldID(p.ID), p.ToFieldConfig()); err != nil {
			return fmt.Errorf("field %q: %w", p.ID, err)
		}
	}
	for _, p := range cfg.NumberInputs {
		if _, err := entity.NewNumberRange(p.Min, p.Max); err != nil {
			return fmt.Errorf("number input %q: %w", p.ID, err)
		}
	}
	return nil
}

func (e *Engine) applyNumberInput(ctx context.Context, p config.NumberInputPreset, exists bool) error {
	id := entity.FieldID(p.ID)
	nc := p.ToNumberInputConfig()

	if exists {
		snap, err := e.Editor.Snapshot(ctx, id)
		if err != nil {
			return err
		}
		if e.Numbers.IsNumberInput(id) {
			rng, err := e.Numbers.Range(id)
			if err != nil {
				return err
			}
			if rng.Min == nc.Min && rng.Max == nc.Max && snap.Group == nc.Group {
				return nil
			}
			if nc.Value, err = e.Numbers.Value(id); err != nil {
				return err
			}
		}
		// Keep focus across the rebuild.
		nc.Focused = snap.Focused
		if err := e.remove(ctx, id); err != nil {
			return err
		}
	}

	_, err := e.Numbers.Create(ctx, nc)
	return err
}

func (e *Engine) remove(ctx context.Context, id entity.FieldID) error {
	if e.Numbers.IsNumberInput(id) {
		return e.Numbers.Remove(ctx, id)
	}
	return e.Editor.RemoveField(ctx, id)
}

// Close detaches the number inputs from the change feed.
func (e *Engine) Close() {
	if e.Numbers != nil {
		e.Numbers.Close()
	}
}
