//go:build !nogui

package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "terrainview/pkg/engine/input"
	"terrainview/pkg/viewer/control"
)

// keyCodes maps Ebiten keys to raw input codes for the bindings table.
var keyCodes = []struct {
	key    ebiten.Key
	code   string
	repeat bool
}{
	{ebiten.KeyR, "r", false},
	{ebiten.KeyEnter, "enter", false},
	{ebiten.KeyNumpadEnter, "enter", false},
	{ebiten.KeyF5, "f5", false},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyC, "c", false},
	{ebiten.KeyN, "n", false},
	{ebiten.KeyP, "p", false},
	{ebiten.KeyBracketRight, "]", false},
	{ebiten.KeyBracketLeft, "[", false},
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyArrowUp, "arrow_up", true},
	{ebiten.KeyArrowDown, "arrow_down", true},
	{ebiten.KeyH, "h", true},
	{ebiten.KeyL, "l", true},
	{ebiten.KeyK, "k", true},
	{ebiten.KeyJ, "j", true},
	{ebiten.KeyEqual, "=", true},
	{ebiten.KeyNumpadAdd, "numpad_add", true},
	{ebiten.KeyMinus, "-", true},
	{ebiten.KeyNumpadSubtract, "numpad_subtract", true},
	{ebiten.Key0, "0", false},
	{ebiten.KeyHome, "home", false},
	{ebiten.KeyF, "f", false},
	{ebiten.KeyI, "i", false},
	{ebiten.KeyG, "g", false},
	{ebiten.KeyS, "s", false},
	{ebiten.KeyF2, "f2", false},
	{ebiten.KeyF12, "f12", false},
	{ebiten.KeyQ, "q", false},
}

// Update handles input and advances the session (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	if e.editing {
		e.handleEditInput()
	} else {
		e.handleMouse()
		if intent := e.checkInput(); intent.Action != engineinput.ActionNone {
			if field, ok := control.PathFieldFor(intent.Action); ok {
				e.startEditing(field)
			} else {
				control.ProcessIntent(e.session, e.jobs, e.opts, intent)
			}
		}
	}

	control.Update(e.session, e.jobs)

	if e.session.QuitRequested {
		return ebiten.Termination
	}
	return nil
}

// handleMouse pans with the right button held and zooms with the wheel.
func (e *EbitenRenderer) handleMouse() {
	x, y := ebiten.CursorPosition()
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if held && e.panning {
		e.session.Camera.Pan(float64(x-e.lastCursorX), float64(y-e.lastCursorY), held)
	}
	e.panning = held
	e.lastCursorX, e.lastCursorY = x, y

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		e.session.Camera.Zoom(wheelY)
	}
}

// shouldRepeat reports a press on the first frame and then at a fixed
// interval while the key stays down.
func shouldRepeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// checkInput turns this frame's key presses into an intent.
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	// Keys whose meaning depends on Shift
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if shift {
			return rawIntent("shift_tab")
		}
		return rawIntent("tab")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) && shift {
		return rawIntent("?")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && shift {
		return rawIntent("+")
	}

	for _, k := range keyCodes {
		pressed := inpututil.IsKeyJustPressed(k.key)
		if k.repeat {
			pressed = shouldRepeat(k.key)
		}
		if pressed {
			return rawIntent(k.code)
		}
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

func rawIntent(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    engineinput.DeviceKeyboard,
		Code:      code,
		Timestamp: time.Now(),
	}))
}

func (e *EbitenRenderer) startEditing(field control.PathField) {
	e.editing = true
	e.editField = field
	e.editBuffer = []rune(control.PathValue(e.session, field))
}

// handleEditInput collects typed characters for the path console.
// Enter stores the path, Escape abandons the edit.
func (e *EbitenRenderer) handleEditInput() {
	e.editBuffer = ebiten.AppendInputChars(e.editBuffer)

	if shouldRepeat(ebiten.KeyBackspace) && len(e.editBuffer) > 0 {
		e.editBuffer = e.editBuffer[:len(e.editBuffer)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.editing = false
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		control.SetPath(e.session, e.editField, string(e.editBuffer))
		e.editing = false
	}
}
