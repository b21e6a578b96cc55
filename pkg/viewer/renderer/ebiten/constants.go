//go:build !nogui

package ebiten

import "image/color"

// HUD palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorItem            = color.RGBA{220, 170, 255, 255} // Bright purple
	colorRoom            = color.RGBA{160, 160, 180, 255} // Light gray-blue
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorHover           = color.RGBA{255, 255, 0, 255}   // Bright yellow outline
)

const (
	baseFontSize  = 14.0
	panelPadding  = 8
	lineSpacing   = 4
	maxHUDMessage = 5

	// Frames a key must be held before it repeats, and the repeat interval.
	keyRepeatDelay    = 15
	keyRepeatInterval = 3
)
