package sim

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/rgb"
)

// cellWidth is the screen width of one key, including the gap.
const cellWidth = 7

const helpLine = "^F fn  ^S shift  ^W select word  ^D/^U knob  ^C quit"

// keyCell is one key as drawn.
type keyCell struct {
	Pos   key.Position
	Label string
	Color rgb.Color

	// Lit is set when the color comes from an indicator rather than the
	// background effect.
	Lit bool
}

// cells returns the keys row by row with their effective labels and colors.
func (s *Simulator) cells() [][]keyCell {
	km := s.kb.Keymap()
	active := s.kb.Layers().Active()
	frame := s.leds.Snapshot()
	background := effectColor(s.lights.Current())

	layout := km.Layout()
	rows := make([][]keyCell, layout.Rows())
	for _, pos := range layout.Positions() {
		b, _ := km.Resolve(active, pos)
		cell := keyCell{Pos: pos, Label: label(km.Symbols(), b), Color: background}
		if c, ok := frame[pos]; ok {
			cell.Color = c
			cell.Lit = true
		}
		rows[pos.Row] = append(rows[pos.Row], cell)
	}
	return rows
}

// effectColor approximates an effect with a single color.
func effectColor(e rgb.Effect) rgb.Color {
	if !e.IsSet() {
		return rgb.Black
	}
	return e.HSV.RGB()
}

func label(sym keymap.Symbols, b keymap.Binding) string {
	switch b.Kind {
	case keymap.KindTransparent, keymap.KindNoOp:
		return ""
	}
	s := strings.TrimPrefix(sym.Format(b), "KC_")
	if r := []rune(s); len(r) > cellWidth-1 {
		s = string(r[:cellWidth-1])
	}
	return s
}

// statusLines describes the keyboard state below the board.
func (s *Simulator) statusLines() []string {
	stack := s.kb.Layers()
	active := stack.Active()
	names := make([]string, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		names = append(names, stack.Name(active[i]))
	}

	cfg := s.kb.Config()
	lines := []string{
		"layers: " + strings.Join(names, " "),
		fmt.Sprintf("effect: %s  preset %d", s.lights.Current(), cfg.Preset),
		fmt.Sprintf("autocorrect %s  jiggler %s  caps %s  nkro %s",
			onOff(cfg.Autocorrect), onOff(cfg.Jiggler), onOff(s.host.CapsLock()), onOff(s.host.NKRO())),
	}

	if st := s.kb.Leader(); st.Active {
		keys := make([]string, 0, len(st.Buffer))
		for _, c := range st.Buffer {
			keys = append(keys, strings.TrimPrefix(c.String(), "KC_"))
		}
		lines = append(lines, "leader: "+strings.Join(keys, " ")+" _")
	}
	if g := s.kb.Game(); g.Active {
		lines = append(lines, fmt.Sprintf("game: find %s  hits %d", strings.TrimPrefix(g.Target.Code.String(), "KC_"), g.Hits))
	}
	if e, ok := s.kb.Editing(); ok {
		lines = append(lines, "editing: "+e.String())
	}
	if s.status != "" {
		lines = append(lines, s.status)
	}
	return lines
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (s *Simulator) draw() {
	s.screen.Clear()

	y := 0
	for _, row := range s.cells() {
		for i, cell := range row {
			drawKey(s.screen, i*cellWidth, y, cell)
		}
		y += 2
	}

	y++
	for _, line := range s.statusLines() {
		drawText(s.screen, 0, y, line, tcell.StyleDefault)
		y++
	}

	y++
	for _, line := range s.host.Lines() {
		drawText(s.screen, 0, y, "> "+line, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		y++
	}
	drawText(s.screen, 0, y+1, helpLine, tcell.StyleDefault.Dim(true))

	s.screen.Show()
}

func drawKey(screen tcell.Screen, x, y int, cell keyCell) {
	style := tcell.StyleDefault.
		Background(toTcell(cell.Color)).
		Foreground(contrast(cell.Color))
	if cell.Lit {
		style = style.Bold(true)
	}
	text := fmt.Sprintf("%-*s", cellWidth-1, cell.Label)
	drawText(screen, x, y, text, style)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toTcell(c rgb.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// contrast picks black or white text for background c.
func contrast(c rgb.Color) tcell.Color {
	luma := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if luma > 128*1000 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
