package devtools

import (
	"fmt"
	"html"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/room"
	"terrainview/pkg/viewer/state"
)

// SaveScreenshotHTML saves the selected room as an HTML page in dir and
// returns the absolute path of the file.
func SaveScreenshotHTML(s *state.Session, dir string) (string, error) {
	r, name, ok := s.Store.Selected()
	if !ok {
		return "", fmt.Errorf("no room to capture")
	}

	timestamp := time.Now().Format("20060102-150405")
	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp)))
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(absPath, []byte(ScreenshotHTML(s, name, r)), 0o644); err != nil {
		return "", err
	}
	return absPath, nil
}

// ScreenshotHTML builds the page. Rows are emitted top to bottom as they
// appear on screen, so the last terrain row comes first.
func ScreenshotHTML(s *state.Session, name string, r *room.Room) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>terrainview - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header { color: #bb86fc; font-size: 18px; margin-bottom: 10px; }
        .meta { color: #888; margin-bottom: 20px; }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
        }
        .map-row { white-space: pre; line-height: 1.0; font-size: 14px; height: 14px; }
        .tile { display: inline-block; width: 14px; height: 14px; text-align: center; }
        .legend { margin-top: 20px; }
        .swatch { display: inline-block; width: 12px; height: 12px; margin-right: 6px; vertical-align: middle; }
        .messages { margin-top: 20px; border-top: 1px solid #333; padding-top: 10px; }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	fmt.Fprintf(&b, `    <div class="header">Room %s</div>`+"\n", html.EscapeString(name))
	fmt.Fprintf(&b, `    <div class="meta">%d rows, up to %d columns, %d tiles</div>`+"\n", r.Height(), r.Width(), r.CellCount())

	b.WriteString(`    <div class="map-container">` + "\n")
	rows := r.Layers.Terrain
	for i := len(rows) - 1; i >= 0; i-- {
		b.WriteString(`        <div class="map-row">`)
		for _, cell := range rows[i] {
			c := render.ColorFor(cell)
			fmt.Fprintf(&b, `<span class="tile" style="background-color:%s;color:%s">%s</span>`,
				cssColor(c), cssColor(contrast(c)), html.EscapeString(cell))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString(`    </div>` + "\n")

	b.WriteString(`    <div class="legend">` + "\n")
	for _, e := range render.Legend(r) {
		fmt.Fprintf(&b, `        <div><span class="swatch" style="background-color:%s"></span>%s</div>`+"\n",
			cssColor(e.Color), html.EscapeString(e.Symbol))
	}
	b.WriteString(`    </div>` + "\n")

	if s != nil && len(s.Messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, m := range s.Messages {
			fmt.Fprintf(&b, `        <div class="message">%s</div>`+"\n", html.EscapeString(m.Text))
		}
		b.WriteString(`    </div>` + "\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// contrast picks black or white text for a background colour.
func contrast(c color.RGBA) color.RGBA {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 140 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
