//go:build !nogui

// Package ebiten provides the window frontend: tiles drawn through the
// camera, right-drag pan, wheel zoom and an overlay HUD.
package ebiten

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/state"
)

// EbitenRenderer implements renderer.Renderer and ebiten.Game.
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int

	monoFontSource *text.GoTextFaceSource
	sansFontSource *text.GoTextFaceSource

	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace
	cachedMonoFace   *text.GoTextFace

	session *state.Session
	jobs    control.Jobs
	opts    control.Options

	// Right-button drag state
	panning     bool
	lastCursorX int
	lastCursorY int

	// Path console
	editing    bool
	editField  control.PathField
	editBuffer []rune

	windowOpenedLogged bool
}

// New creates a window renderer with the given initial size.
func New(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  width,
		windowHeight: height,
	}
}

// Init loads fonts and sets up the window.
func (e *EbitenRenderer) Init() {
	if err := e.loadFonts(); err != nil {
		log.Printf("Failed to load fonts: %v", err)
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(locale.T("APP_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Run opens the window and blocks until the user quits.
func (e *EbitenRenderer) Run(s *state.Session, jobs control.Jobs, opts control.Options) error {
	e.session = s
	e.jobs = jobs
	e.opts = opts

	log.Printf("Opening window (%dx%d)", e.windowWidth, e.windowHeight)
	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	log.Printf("Window closed")
	return nil
}

// WindowSize returns the last known window size.
func (e *EbitenRenderer) WindowSize() (int, int) {
	return e.windowWidth, e.windowHeight
}

// Layout returns the logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}
