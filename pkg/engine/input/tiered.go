package input

import (
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent in the viewer.
type Action int

const (
	ActionNone Action = iota

	// Generation
	ActionRun
	ActionCancel

	// Room selection
	ActionNextRoom
	ActionPrevRoom

	// Camera
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionZoomIn
	ActionZoomOut
	ActionResetView
	ActionFitView

	// Path console
	ActionEditInterpreter
	ActionEditGenerator
	ActionEditScript

	// Meta / tools
	ActionDumpTerrain
	ActionScreenshot
	ActionHelp
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "r", "arrow_up", "f12").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Ebiten's IsKeyJustPressed and terminal raw mode already deliver one event
// per press, so this is a thin wrapper kept to make the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"r":     ActionRun,
	"run":   ActionRun,
	"enter": ActionRun,
	"f5":    ActionRun,

	"escape": ActionCancel,
	"cancel": ActionCancel,
	"c":      ActionCancel,

	"tab":       ActionNextRoom,
	"n":         ActionNextRoom,
	"next":      ActionNextRoom,
	"]":         ActionNextRoom,
	"shift_tab": ActionPrevRoom,
	"p":         ActionPrevRoom,
	"prev":      ActionPrevRoom,
	"[":         ActionPrevRoom,

	"arrow_left":  ActionPanLeft,
	"h":           ActionPanLeft,
	"arrow_right": ActionPanRight,
	"l":           ActionPanRight,
	"arrow_up":    ActionPanUp,
	"k":           ActionPanUp,
	"arrow_down":  ActionPanDown,
	"j":           ActionPanDown,

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
	"0":               ActionResetView,
	"home":            ActionResetView,
	"f":               ActionFitView,

	"i": ActionEditInterpreter,
	"g": ActionEditGenerator,
	"s": ActionEditScript,

	"f2":         ActionDumpTerrain,
	"dump":       ActionDumpTerrain,
	"f12":        ActionScreenshot,
	"screenshot": ActionScreenshot,

	"?":    ActionHelp,
	"help": ActionHelp,

	"q":      ActionQuit,
	"quit":   ActionQuit,
	"ctrl_c": ActionQuit,
}

// reserved codes cannot be rebound or unbound.
var reserved = func() mapset.Set[string] {
	set := mapset.New[string]()
	for _, code := range []string{
		"arrow_up", "arrow_down", "arrow_left", "arrow_right",
		"=", "+", "-", "numpad_add", "numpad_subtract", "ctrl_c",
	} {
		set.Put(code)
	}
	return set
}()

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IntentFor runs a raw code through every layer.
func IntentFor(device Device, code string) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{Device: device, Code: code, Timestamp: time.Now()}))
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionRun:
		return "Run Generator"
	case ActionCancel:
		return "Cancel Run"
	case ActionNextRoom:
		return "Next Room"
	case ActionPrevRoom:
		return "Previous Room"
	case ActionPanLeft:
		return "Pan Left"
	case ActionPanRight:
		return "Pan Right"
	case ActionPanUp:
		return "Pan Up"
	case ActionPanDown:
		return "Pan Down"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionResetView:
		return "Reset View"
	case ActionFitView:
		return "Fit View"
	case ActionEditInterpreter:
		return "Set Interpreter"
	case ActionEditGenerator:
		return "Set Generator"
	case ActionEditScript:
		return "Set Script"
	case ActionDumpTerrain:
		return "Dump Terrain"
	case ActionScreenshot:
		return "Screenshot"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help output doesn't shuffle between frames.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code. Reserved codes are neither removed nor reassigned.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved.Has(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved.Has(code) {
		bindings[code] = action
	}
}
