package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/bnema/textedit/internal/domain/entity"
)

// KeyUnitWidth is the cell width of a 1u virtual key.
const KeyUnitWidth = 4

// KeyZone is the screen area of one rendered virtual key, relative to the
// top-left corner of the rendered keyboard (border included).
type KeyZone struct {
	ID     string
	Row    int
	X0, X1 int // [X0, X1)
}

// KeyboardView is a rendered virtual keyboard and its hit zones.
type KeyboardView struct {
	Content string
	Zones   []KeyZone
	Height  int
}

// HitTest returns the key under (x, y), relative to the keyboard origin.
func (v KeyboardView) HitTest(x, y int) (string, bool) {
	for _, z := range v.Zones {
		if z.Row == y && x >= z.X0 && x < z.X1 {
			return z.ID, true
		}
	}
	return "", false
}

// RenderKeyboard draws layout with shifted labels when shifted is set and
// highlights the keys isHeld reports as down.
func (t *Theme) RenderKeyboard(layout entity.VirtualKeyLayout, shifted bool, isHeld func(id string) bool) KeyboardView {
	const (
		border = 1
		gap    = 1
	)

	var (
		lines []string
		zones []KeyZone
	)
	for r, row := range layout.Rows {
		var sb strings.Builder
		x := border
		for i, vk := range row {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", gap))
				x += gap
			}
			w := keyWidth(vk.Size)
			style := t.Key
			switch {
			case isHeld != nil && isHeld(vk.ID):
				style = t.KeyHeld
			case shifted && vk.MainKey.Code == entity.KeyShift:
				style = t.KeyShift
			}
			label := runewidth.Truncate(vk.Label(shifted), w, "…")
			sb.WriteString(style.Width(w).Render(label))
			zones = append(zones, KeyZone{ID: vk.ID, Row: border + r, X0: x, X1: x + w})
			x += w
		}
		lines = append(lines, sb.String())
	}

	content := t.Keyboard.Render(strings.Join(lines, "\n"))
	return KeyboardView{
		Content: content,
		Zones:   zones,
		Height:  lipgloss.Height(content),
	}
}

func keyWidth(size float64) int {
	if size <= 0 {
		size = 1
	}
	return int(math.Round(size * KeyUnitWidth))
}
