//go:build !nogui

package ebiten

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/renderer"
)

// Draw renders the frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if e.session == nil {
		return
	}

	e.drawTiles(screen)
	e.drawHover(screen)

	if e.sansFontSource == nil || e.monoFontSource == nil {
		// Can't draw the HUD without fonts
		return
	}
	e.drawHeader(screen)
	e.drawLegend(screen)
	e.drawMessages(screen)
	if e.editing {
		e.drawPathConsole(screen)
	}
}

// drawTiles draws every spawned tile through the camera, skipping those
// outside the window.
func (e *EbitenRenderer) drawTiles(screen *ebiten.Image) {
	cam := e.session.Camera
	w, h := e.windowWidth, e.windowHeight
	ppu := cam.PixelsPerUnit()

	for _, tile := range e.session.Scene.Tiles() {
		size := tile.Size * ppu
		sx, sy := cam.WorldToScreen(tile.X, tile.Y, w, h)
		x0, y0 := sx-size/2, sy-size/2
		if x0+size < 0 || y0+size < 0 || x0 > float64(w) || y0 > float64(h) {
			continue
		}
		vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(size), float32(size), tile.Color, false)
	}
}

// drawHover outlines the tile under the cursor and labels it.
func (e *EbitenRenderer) drawHover(screen *ebiten.Image) {
	cx, cy := ebiten.CursorPosition()
	cam := e.session.Camera
	wx, wy := cam.ScreenToWorld(float64(cx), float64(cy), e.windowWidth, e.windowHeight)
	tile, ok := e.session.Scene.TileAtWorld(wx, wy)
	if !ok {
		return
	}

	size := tile.Size * cam.PixelsPerUnit()
	sx, sy := cam.WorldToScreen(tile.X, tile.Y, e.windowWidth, e.windowHeight)
	vector.StrokeRect(screen, float32(sx-size/2), float32(sy-size/2), float32(size), float32(size), 1, colorHover, false)

	if e.sansFontSource == nil {
		return
	}
	label := locale.Tf("TILE_AT", tile.Symbol, tile.Col, tile.Row)
	e.drawColoredText(screen, label, float64(cx+12), float64(cy+12), colorText, e.getSansFontFace())
}

// drawHeader draws the status and paths lines on a panel at the top.
func (e *EbitenRenderer) drawHeader(screen *ebiten.Image) {
	face := e.getSansFontFace()
	lineHeight := face.Size + lineSpacing
	height := 2*lineHeight + 2*panelPadding

	vector.DrawFilledRect(screen, 0, 0, float32(e.windowWidth), float32(height), colorPanelBackground, false)

	y := float64(panelPadding)
	e.drawMarkup(screen, locale.T("APP_TITLE")+"  "+renderer.StatusLine(e.session), panelPadding, y, face)
	e.drawMarkup(screen, renderer.PathsLine(e.session), panelPadding, y+lineHeight, face)
}

// drawLegend lists the symbols of the selected room with swatches, top right.
func (e *EbitenRenderer) drawLegend(screen *ebiten.Image) {
	r, _, ok := e.session.Store.Selected()
	if !ok {
		return
	}
	face := e.getSansFontFace()
	entries := render.Legend(r)
	lineHeight := face.Size + lineSpacing
	swatch := face.Size

	titleW, _ := text.Measure(locale.T("LEGEND"), face, 0)
	width := titleW
	for _, entry := range entries {
		w, _ := text.Measure(entry.Symbol, face, 0)
		if w+swatch+lineSpacing > width {
			width = w + swatch + lineSpacing
		}
	}
	width += 2 * panelPadding
	height := float64(len(entries)+1)*lineHeight + 2*panelPadding

	x := float64(e.windowWidth) - width - panelPadding
	y := 2*lineHeight + 3*panelPadding
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), colorPanelBackground, false)

	ty := y + panelPadding
	e.drawColoredText(screen, locale.T("LEGEND"), x+panelPadding, ty, colorSubtle, face)
	for _, entry := range entries {
		ty += lineHeight
		vector.DrawFilledRect(screen, float32(x+panelPadding), float32(ty+2), float32(swatch-4), float32(swatch-4), entry.Color, false)
		e.drawColoredText(screen, entry.Symbol, x+panelPadding+swatch+lineSpacing, ty, colorText, face)
	}
}

// drawMessages shows the newest messages at the bottom of the window.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image) {
	msgs := e.session.Messages
	if len(msgs) > maxHUDMessage {
		msgs = msgs[len(msgs)-maxHUDMessage:]
	}
	if len(msgs) == 0 {
		return
	}

	face := e.getSansFontFace()
	lineHeight := face.Size + lineSpacing
	height := float64(len(msgs))*lineHeight + 2*panelPadding
	top := float64(e.windowHeight) - height
	vector.DrawFilledRect(screen, 0, float32(top), float32(e.windowWidth), float32(height), colorPanelBackground, false)

	for i, m := range msgs {
		e.drawMarkup(screen, m.Text, panelPadding, top+panelPadding+float64(i)*lineHeight, face)
	}
}

// drawPathConsole draws the one-line path editor in the middle of the window.
func (e *EbitenRenderer) drawPathConsole(screen *ebiten.Image) {
	face := e.getMonoFontFace()
	prompt := locale.Tf("PATH_PROMPT", e.editField)
	line := prompt + string(e.editBuffer) + "_"

	w, _ := text.Measure(line, face, 0)
	width := w + 2*panelPadding
	if minWidth := float64(e.windowWidth) / 2; width < minWidth {
		width = minWidth
	}
	height := face.Size + 2*panelPadding
	x := (float64(e.windowWidth) - width) / 2
	y := (float64(e.windowHeight) - height) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), colorPanelBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, colorAction, false)
	e.drawColoredText(screen, line, x+panelPadding, y+panelPadding, colorText, face)
}

// drawMarkup draws a message with ITEM{}/ROOM{}/ACTION{} colouring.
func (e *EbitenRenderer) drawMarkup(screen *ebiten.Image, msg string, x, y float64, face *text.GoTextFace) {
	for _, seg := range renderer.ParseMarkup(msg) {
		e.drawColoredText(screen, seg.Text, x, y, styleColor(seg.Style), face)
		w, _ := text.Measure(seg.Text, face, 0)
		x += w
	}
}

// drawColoredText draws text with its top-left corner at x, y.
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, strings.ReplaceAll(str, "\t", "    "), face, op)
}

func styleColor(style renderer.TextStyle) color.Color {
	switch style {
	case renderer.StyleRoom:
		return colorRoom
	case renderer.StyleItem:
		return colorItem
	case renderer.StyleAction, renderer.StyleActionShort:
		return colorAction
	case renderer.StyleDenied:
		return colorDenied
	case renderer.StyleSubtle:
		return colorSubtle
	default:
		return colorText
	}
}

// StyleText returns text unchanged; colour is applied when drawing markup.
func (e *EbitenRenderer) StyleText(str string, style renderer.TextStyle) string {
	return str
}

// FormatText formats a message; markup is kept for drawMarkup.
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
