// Package tui is the terminal frontend: truecolour tile blocks, a status
// header and the message pane, driven by single key presses.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gookit/color"

	"terrainview/pkg/engine/input"
	"terrainview/pkg/engine/terminal"
	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/renderer"
	"terrainview/pkg/viewer/state"
)

// Each map cell is two characters wide so tiles come out roughly square.
const cellWidth = 2

// Lines used around the map: title, status, paths, blank, legend, blank,
// messages header, messages, footer, hint.
const reservedLines = 9 + messagePaneLines

const messagePaneLines = 5

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorRoom        color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorItem        color.Style
	colorSubtle      color.Style
	colorTitle       color.Style

	// View is the world area shown, in window pixels; the terminal grid
	// samples it so both frontends show the same region.
	ViewWidth  int
	ViewHeight int

	// Size overrides the terminal size when non-zero (tests).
	Width, Height int

	out  io.Writer
	keys *input.KeyReader
}

// New creates a new TUI renderer that samples a viewW x viewH view.
func New(viewW, viewH int) *TUIRenderer {
	return &TUIRenderer{
		ViewWidth:  viewW,
		ViewHeight: viewH,
		out:        os.Stdout,
		keys:       input.NewKeyReader(os.Stdin),
	}
}

// Init initializes the TUI renderer colours.
func (t *TUIRenderer) Init() {
	t.colorRoom = color.Style{color.FgCyan, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgGreen, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorTitle = color.Style{color.FgLightBlue, color.OpBold}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleRoom:
		return t.colorRoom.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	var b strings.Builder
	for _, seg := range renderer.ParseMarkup(msg) {
		b.WriteString(t.StyleText(seg.Text, seg.Style))
	}
	return b.String()
}

func (t *TUIRenderer) size() (int, int) {
	if t.Width > 0 && t.Height > 0 {
		return t.Width, t.Height
	}
	return terminal.GetSize()
}

// MapSize returns the map area in cells.
func (t *TUIRenderer) MapSize() (cols, rows int) {
	w, h := t.size()
	cols = w / cellWidth
	rows = h - reservedLines
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

// sampleTile returns the tile under the centre of map cell (cx, cy), if any.
func (t *TUIRenderer) sampleTile(s *state.Session, cx, cy, cols, rows int) (render.Tile, bool) {
	sx := (float64(cx) + 0.5) * float64(t.ViewWidth) / float64(cols)
	sy := (float64(cy) + 0.5) * float64(t.ViewHeight) / float64(rows)
	x, y := s.Camera.ScreenToWorld(sx, sy, t.ViewWidth, t.ViewHeight)
	return s.Scene.TileAtWorld(x, y)
}

// Frame renders one complete screen as a string.
func (t *TUIRenderer) Frame(s *state.Session) string {
	var b strings.Builder
	width, _ := t.size()
	cols, rows := t.MapSize()

	b.WriteString(t.colorTitle.Sprint(locale.T("APP_TITLE")) + "  " + t.FormatText(renderer.StatusLine(s)) + "\n")
	b.WriteString(t.FormatText(renderer.PathsLine(s)) + "\n")
	b.WriteString("\n")

	blocks := make(map[render.Key]string)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			tile, ok := t.sampleTile(s, cx, cy, cols, rows)
			if !ok {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			block, seen := blocks[tile.Key()]
			if !seen {
				c := tile.Color
				block = color.RGB(c.R, c.G, c.B, true).Sprint(strings.Repeat(" ", cellWidth))
				blocks[tile.Key()] = block
			}
			b.WriteString(block)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(t.legend(s) + "\n")
	b.WriteString(t.messagesPane(s, width))
	b.WriteString(t.colorSubtle.Sprint(locale.T("HELP_HINT")) + "\n")
	return b.String()
}

func (t *TUIRenderer) legend(s *state.Session) string {
	r, _, ok := s.Store.Selected()
	if !ok {
		return ""
	}
	parts := []string{locale.T("LEGEND") + ":"}
	for _, e := range render.Legend(r) {
		swatch := color.RGB(e.Color.R, e.Color.G, e.Color.B, true).Sprint("  ")
		parts = append(parts, swatch+" "+e.Symbol)
	}
	return strings.Join(parts, " ")
}

// messagesPane renders the newest messages framed by rules.
func (t *TUIRenderer) messagesPane(s *state.Session, width int) string {
	var b strings.Builder
	rule := strings.Repeat("-", max(width-1, 10))
	b.WriteString(t.colorSubtle.Sprint(rule) + "\n")

	msgs := s.Messages
	if len(msgs) > messagePaneLines {
		msgs = msgs[len(msgs)-messagePaneLines:]
	}
	for _, m := range msgs {
		b.WriteString(t.FormatText(m.Text) + "\n")
	}
	for i := len(msgs); i < messagePaneLines; i++ {
		b.WriteString("\n")
	}
	b.WriteString(t.colorSubtle.Sprint(rule) + "\n")
	return b.String()
}

// Run reads one key at a time, applies it and redraws. Generator runs are
// synchronous; Ctrl+C during a run cancels it.
func (t *TUIRenderer) Run(s *state.Session, jobs control.Jobs, opts control.Options) error {
	if !terminal.IsInteractive() {
		return errors.New("terminal frontend needs an interactive terminal")
	}
	for !s.QuitRequested {
		control.Update(s, jobs)
		fmt.Fprint(t.out, terminal.ClearScreen()+t.Frame(s))

		code, err := input.ReadTerminalKey(t.keys)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		intent := input.MapToIntent(input.NewDebouncedInput(input.RawInput{
			Device:    input.DeviceTerminal,
			Code:      code,
			Timestamp: time.Now(),
		}))

		if field, ok := control.PathFieldFor(intent.Action); ok {
			t.promptPath(s, field)
			continue
		}

		if intent.Action == input.ActionRun {
			t.runWithInterrupt(s, jobs, opts, intent)
			continue
		}
		control.ProcessIntent(s, jobs, opts, intent)
	}
	return nil
}

func (t *TUIRenderer) runWithInterrupt(s *state.Session, jobs control.Jobs, opts control.Options, intent input.Intent) {
	parent := opts.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	fmt.Fprintln(t.out, t.FormatText(locale.Tf("RUNNING", s.Paths.Command())))
	opts.Ctx = ctx
	control.ProcessIntent(s, jobs, opts, intent)
}

func (t *TUIRenderer) promptPath(s *state.Session, field control.PathField) {
	fmt.Fprintf(t.out, "%s[%s] ", locale.Tf("PATH_PROMPT", field), control.PathValue(s, field))
	line, err := t.keys.ReadLine()
	if err != nil {
		return
	}
	if strings.TrimSpace(line) == "" && control.PathValue(s, field) != "" {
		// Enter alone keeps the current value; "-" clears it.
		return
	}
	if strings.TrimSpace(line) == "-" {
		line = ""
	}
	control.SetPath(s, field, line)
}
