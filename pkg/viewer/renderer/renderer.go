// Package renderer holds what the window and terminal frontends share:
// the frontend interface, message markup and status text.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleRoom
	StyleItem
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
)

// Renderer is a viewer frontend. Run owns the loop until the user quits.
type Renderer interface {
	// Init prepares colours, fonts and window settings.
	Init()

	// Run drives the session until QuitRequested is set or the frontend
	// is closed.
	Run(s *state.Session, jobs control.Jobs, opts control.Options) error

	// StyleText applies a style to text and returns the styled string.
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the markup system.
	FormatText(msg string, args ...any) string
}

// Segment is a run of message text with one style.
type Segment struct {
	Text  string
	Style TextStyle
}

// Markup looks like FUNCTION{operand}, e.g. ROOM{cave} or ACTION{python3 gen.py}.
var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

// ParseMarkup splits msg into styled segments. GT{key} is translated;
// unknown functions are kept as plain text.
func ParseMarkup(msg string) []Segment {
	var segments []Segment
	lastIndex := 0

	for _, match := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		if match[0] > lastIndex {
			segments = append(segments, Segment{Text: msg[lastIndex:match[0]], Style: StyleNormal})
		}

		function := msg[match[2]:match[3]]
		content := msg[match[4]:match[5]]

		switch function {
		case "ITEM":
			segments = append(segments, Segment{Text: content, Style: StyleItem})
		case "ROOM":
			segments = append(segments, Segment{Text: content, Style: StyleRoom})
		case "ACTION":
			segments = append(segments, Segment{Text: content, Style: StyleAction})
		case "ERROR":
			segments = append(segments, Segment{Text: content, Style: StyleDenied})
		case "SUBTLE":
			segments = append(segments, Segment{Text: content, Style: StyleSubtle})
		case "GT":
			segments = append(segments, Segment{Text: locale.T(content), Style: StyleNormal})
		default:
			segments = append(segments, Segment{Text: msg[match[0]:match[1]], Style: StyleNormal})
		}
		lastIndex = match[1]
	}

	if lastIndex < len(msg) {
		segments = append(segments, Segment{Text: msg[lastIndex:], Style: StyleNormal})
	}
	return segments
}

// PlainText strips markup from msg.
func PlainText(msg string) string {
	var b strings.Builder
	for _, seg := range ParseMarkup(msg) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// StatusLine summarises the session for a header bar.
func StatusLine(s *state.Session) string {
	status := locale.T("STATUS_IDLE")
	if s.Running {
		status = locale.T("STATUS_RUNNING")
	}

	_, name, ok := s.Store.Selected()
	if !ok {
		return fmt.Sprintf("%s  SUBTLE{%s}", status, locale.T("NO_ROOM_YET"))
	}
	position := 0
	for i, n := range s.Store.Names() {
		if n == name {
			position = i + 1
			break
		}
	}
	return fmt.Sprintf("%s  %s ROOM{%s} SUBTLE{(%s)}  %s ITEM{%.0f%%}",
		status,
		locale.T("ROOM_LABEL"), locale.Operand(name),
		locale.Tf("ROOM_POSITION", position, s.Store.Len()),
		locale.T("ZOOM"), 100*s.Camera.PixelsPerUnit())
}

// PathsLine shows the configured generator command, or which paths are
// still missing.
func PathsLine(s *state.Session) string {
	if missing := s.Paths.Missing(); len(missing) > 0 {
		return "ERROR{" + locale.Tf("PATHS_MISSING", strings.Join(missing, ", ")) + "}"
	}
	return "ACTION{" + locale.Operand(s.Paths.Command().String()) + "}"
}
