//go:build !nogui

package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the embedded Go fonts.
func (e *EbitenRenderer) loadFonts() error {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("mono font: %w", err)
	}
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("sans font: %w", err)
	}
	e.monoFontSource = mono
	e.sansFontSource = sans
	return nil
}

// getUIFontSize scales the HUD font with the window height.
func (e *EbitenRenderer) getUIFontSize() float64 {
	size := baseFontSize * float64(e.windowHeight) / 600.0
	if size < 10 {
		size = 10
	}
	if size > 24 {
		size = 24
	}
	return size
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{Source: e.sansFontSource, Size: size}
		e.cachedMonoFace = &text.GoTextFace{Source: e.monoFontSource, Size: size}
	}
	return e.cachedSansFace
}

// getMonoFontFace returns a monospace face with the UI font size (path console)
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	e.getSansFontFace()
	return e.cachedMonoFace
}
