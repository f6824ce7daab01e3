// Package port defines the interfaces the application layer needs from the
// outside world: change observers and the clipboard.
package port

import (
	"context"

	"github.com/bnema/textedit/internal/domain/entity"
)

// ChangeObserver receives text change notifications. It is called
// synchronously at the end of a batch, after every mutation of the batch.
type ChangeObserver interface {
	OnTextChanged(ctx context.Context, n entity.ChangeNotification)
}

// ChangeObserverFunc adapts a function to ChangeObserver.
type ChangeObserverFunc func(ctx context.Context, n entity.ChangeNotification)

// OnTextChanged calls f.
func (f ChangeObserverFunc) OnTextChanged(ctx context.Context, n entity.ChangeNotification) {
	f(ctx, n)
}

// NumberObserver receives clamped values from number inputs.
type NumberObserver interface {
	OnNumberChanged(ctx context.Context, n entity.NumberChanged)
}

// NumberObserverFunc adapts a function to NumberObserver.
type NumberObserverFunc func(ctx context.Context, n entity.NumberChanged)

// OnNumberChanged calls f.
func (f NumberObserverFunc) OnNumberChanged(ctx context.Context, n entity.NumberChanged) {
	f(ctx, n)
}
