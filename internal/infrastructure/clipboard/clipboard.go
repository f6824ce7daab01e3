// Package clipboard reads the system clipboard with wl-clipboard (Wayland),
// xclip or xsel (X11), falling back to atotto/clipboard.
package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/logging"
)

// Adapter implements port.Clipboard using system clipboard tools.
type Adapter struct {
	pasteCmd  string
	pasteArgs []string
	// fallback reads through atotto/clipboard when no tool was found.
	fallback func() (string, error)
}

// New creates a new clipboard adapter.
// Detects Wayland vs X11 and selects appropriate clipboard tool.
func New() port.Clipboard {
	a := &Adapter{fallback: clipboard.ReadAll}

	// Check for Wayland first
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if path, err := exec.LookPath("wl-paste"); err == nil {
			a.pasteCmd = path
		}
	}

	// Fall back to X11 if Wayland tools not available
	if a.pasteCmd == "" && os.Getenv("DISPLAY") != "" {
		if path, err := exec.LookPath("xclip"); err == nil {
			a.pasteCmd = path
		} else if path, err := exec.LookPath("xsel"); err == nil {
			a.pasteCmd = path
		}
	}

	if a.pasteCmd != "" {
		a.pasteArgs = pasteArgs(a.pasteCmd)
	}
	return a
}

// pasteArgs returns the arguments that make tool print the clipboard.
func pasteArgs(tool string) []string {
	switch filepath.Base(tool) {
	case "wl-paste":
		return []string{"--no-newline"}
	case "xclip":
		return []string{"-selection", "clipboard", "-o"}
	case "xsel":
		return []string{"--clipboard", "--output"}
	}
	return nil
}

// ReadText reads text from the clipboard.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	if a.pasteCmd == "" {
		if clipboard.Unsupported || a.fallback == nil {
			err := fmt.Errorf("no clipboard tool available (install wl-clipboard or xclip)")
			log.Error().Err(err).Msg("clipboard read failed")
			return "", err
		}
		text, err := a.fallback()
		if err != nil {
			log.Debug().Err(err).Msg("clipboard read failed (may be empty)")
			return "", err
		}
		log.Debug().Str("tool", "atotto").Int("len", len(text)).Msg("clipboard read success")
		return text, nil
	}

	out, err := exec.CommandContext(ctx, a.pasteCmd, a.pasteArgs...).Output()
	if err != nil {
		log.Debug().Err(err).Str("tool", a.pasteCmd).Msg("clipboard read failed (may be empty)")
		return "", err
	}

	log.Debug().Str("tool", a.pasteCmd).Int("len", len(out)).Msg("clipboard read success")
	return strings.TrimSuffix(string(out), "\x00"), nil
}

// HasText returns true if the clipboard contains text data.
func (a *Adapter) HasText(ctx context.Context) (bool, error) {
	text, err := a.ReadText(ctx)
	if err != nil {
		// Empty clipboard often returns error, treat as no text
		return false, nil
	}
	return text != "", nil
}
