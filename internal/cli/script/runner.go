package script

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/bootstrap"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/logging"
)

// BatchResult is what one batch produced.
type BatchResult struct {
	Index   int                         `json:"index" yaml:"index"`
	Changes []entity.ChangeNotification `json:"changes,omitempty" yaml:"changes,omitempty"`
	Numbers []entity.NumberChanged      `json:"numbers,omitempty" yaml:"numbers,omitempty"`
}

// FieldResult is the final state of a field.
type FieldResult struct {
	ID      entity.FieldID `json:"id" yaml:"id"`
	Content string         `json:"content" yaml:"content"`
	Cursor  int            `json:"cursor" yaml:"cursor"`
	Focused bool           `json:"focused" yaml:"focused"`
}

// Result is the outcome of one script.
type Result struct {
	Name     string        `json:"name" yaml:"name"`
	Path     string        `json:"path,omitempty" yaml:"path,omitempty"`
	Batches  []BatchResult `json:"batches" yaml:"batches"`
	Fields   []FieldResult `json:"fields" yaml:"fields"`
	Failures []string      `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run replays s against a fresh engine.
func Run(ctx context.Context, s *Script) (*Result, error) {
	engine, err := bootstrap.NewEngine(ctx, s.Config(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	defer engine.Close()

	var numbers []entity.NumberChanged
	engine.Numbers.Subscribe(port.NumberObserverFunc(func(_ context.Context, n entity.NumberChanged) {
		numbers = append(numbers, n)
	}))

	log := logging.FromContext(ctx)
	res := &Result{Name: s.Name, Path: s.path}
	for i, batch := range s.Batches {
		events, err := toEvents(ctx, engine, batch)
		if err != nil {
			return nil, fmt.Errorf("%s: batch %d: %w", s.Name, i, err)
		}

		numbers = numbers[:0]
		engine.Editor.ProcessBatch(ctx, events)
		br := BatchResult{Index: i, Changes: engine.Editor.Feed().Drain()}
		if len(numbers) > 0 {
			br.Numbers = append([]entity.NumberChanged(nil), numbers...)
		}
		res.Batches = append(res.Batches, br)
		log.Trace().Int("batch", i).Int("events", len(events)).Int("changes", len(br.Changes)).Msg("batch replayed")
	}

	snaps, err := engine.Editor.Snapshots(ctx)
	if err != nil {
		return nil, err
	}
	final := make(map[string]string, len(snaps))
	for _, snap := range snaps {
		res.Fields = append(res.Fields, FieldResult{
			ID:      snap.ID,
			Content: snap.Content,
			Cursor:  snap.Cursor,
			Focused: snap.Focused,
		})
		final[string(snap.ID)] = snap.Content
	}
	res.Failures = checkExpect(s.Expect, final)
	return res, nil
}

func checkExpect(expect, final map[string]string) []string {
	var failures []string
	for _, id := range slices.Sorted(maps.Keys(expect)) {
		got, ok := final[id]
		switch {
		case !ok:
			failures = append(failures, fmt.Sprintf("field %q does not exist", id))
		case got != expect[id]:
			failures = append(failures, fmt.Sprintf("field %q: want %q, got %q", id, expect[id], got))
		}
	}
	return failures
}

func toEvents(ctx context.Context, engine *bootstrap.Engine, batch []Event) ([]entity.InputEvent, error) {
	events := make([]entity.InputEvent, 0, len(batch))
	for _, ev := range batch {
		switch ev.Type {
		case EventKey:
			k, err := entity.ParseKey(ev.Key)
			if err != nil {
				return nil, err
			}
			action := entity.KeyDown
			if ev.Action == "up" {
				action = entity.KeyUp
			}
			events = append(events, entity.KeyEvent{Key: k, Action: action, At: ms(ev.At), Virtual: ev.Virtual})

		case EventVKey:
			if ev.Action == "up" {
				if e, ok := engine.Keyboard.Release(ev.Key, ms(ev.At)); ok {
					events = append(events, e)
				}
				continue
			}
			e, ok, err := engine.Keyboard.Press(ctx, ev.Key, ms(ev.At))
			if err != nil {
				return nil, err
			}
			if ok {
				events = append(events, e)
			}

		case EventText:
			events = append(events, entity.TextInputEvent{Text: ev.Text})
		case EventPaste:
			events = append(events, entity.PasteEvent{Text: ev.Text})
		case EventFocus:
			events = append(events, entity.FocusClickEvent{FieldID: entity.FieldID(ev.Field)})
		case EventBlur:
			events = append(events, entity.BlurEvent{FieldID: entity.FieldID(ev.Field)})
		case EventTick:
			events = append(events, entity.Tick{Now: ms(ev.Now)})
		}
	}
	return events, nil
}

// RunFiles loads and replays every path concurrently. Engines share nothing.
// Results are in the order of paths; the first error cancels the rest.
func RunFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sctx := logging.WithScript(gctx, path)
			s, err := Load(path)
			if err != nil {
				return err
			}
			res, err := Run(sctx, s)
			if err != nil {
				return err
			}
			results[i] = res
			logging.FromContext(sctx).Debug().Bool("passed", res.Passed()).Msg("script replayed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary returns "n passed, m failed".
func Summary(results []*Result) string {
	var passed, failed int
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return fmt.Sprintf("%d passed, %d failed", passed, failed)
}
