package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/logging"
)

// PasteFromClipboardUseCase reads the OS clipboard for the host and turns
// it into a paste event.
type PasteFromClipboardUseCase struct {
	clipboard port.Clipboard
}

// NewPasteFromClipboardUseCase creates a new PasteFromClipboardUseCase.
func NewPasteFromClipboardUseCase(clipboard port.Clipboard) *PasteFromClipboardUseCase {
	return &PasteFromClipboardUseCase{
		clipboard: clipboard,
	}
}

// Paste returns a paste event with the clipboard text. ok is false when the
// clipboard holds no text.
func (uc *PasteFromClipboardUseCase) Paste(ctx context.Context) (ev entity.PasteEvent, ok bool, err error) {
	log := logging.FromContext(ctx)

	if uc.clipboard == nil {
		log.Warn().Msg("paste: clipboard is nil")
		return entity.PasteEvent{}, false, fmt.Errorf("clipboard not available")
	}

	text, err := uc.clipboard.ReadText(ctx)
	if err != nil {
		log.Error().Err(err).Msg("paste: clipboard read failed")
		return entity.PasteEvent{}, false, fmt.Errorf("clipboard read failed: %w", err)
	}
	if text == "" {
		log.Debug().Msg("paste: clipboard empty")
		return entity.PasteEvent{}, false, nil
	}

	log.Debug().Int("runes", len([]rune(text))).Msg("paste: clipboard read")
	return entity.PasteEvent{Text: text}, true, nil
}
