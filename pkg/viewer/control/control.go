// Package control maps user intents onto the session and drives the
// per-tick update of the viewer.
package control

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"terrainview/pkg/engine/input"
	"terrainview/pkg/viewer/devtools"
	"terrainview/pkg/viewer/generate"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/state"
)

// PanStep is how far one keyboard pan moves the camera, in world units.
const PanStep = 4 * render.TileSize

// Jobs starts and tracks generator runs for a session.
type Jobs interface {
	// Start begins a run for s. Failures are recorded on the session.
	// Synchronous implementations apply the result before returning.
	Start(ctx context.Context, s *state.Session) error
	// Cancel stops the in-flight run, if any.
	Cancel() bool
	// Poll returns a finished outcome that still has to be applied.
	Poll() (generate.Outcome, bool)
}

// AsyncJobs runs the generator on a Worker; the UI keeps ticking meanwhile.
type AsyncJobs struct {
	Worker *generate.Worker
}

func (a AsyncJobs) Start(ctx context.Context, s *state.Session) error {
	id, err := a.Worker.Start(ctx, s.Paths)
	if errors.Is(err, generate.ErrBusy) {
		s.AddMessage(locale.T("RUN_IN_PROGRESS"))
		return err
	}
	if err != nil {
		generate.Fail(s, err)
		return err
	}
	s.RunID = id
	s.Running = true
	return nil
}

func (a AsyncJobs) Cancel() bool {
	return a.Worker.Cancel()
}

func (a AsyncJobs) Poll() (generate.Outcome, bool) {
	return a.Worker.Poll()
}

// SyncJobs runs the generator on the caller's goroutine.
type SyncJobs struct {
	Pipeline *generate.Pipeline
}

func (j SyncJobs) Start(ctx context.Context, s *state.Session) error {
	return j.Pipeline.Trigger(ctx, s)
}

func (SyncJobs) Cancel() bool { return false }

func (SyncJobs) Poll() (generate.Outcome, bool) { return generate.Outcome{}, false }

// Options holds the non-session inputs of ProcessIntent.
type Options struct {
	Ctx context.Context
	// OutputDir receives devtools files.
	OutputDir string
}

func (o Options) ctx() context.Context {
	if o.Ctx == nil {
		return context.Background()
	}
	return o.Ctx
}

func (o Options) dir() string {
	if o.OutputDir == "" {
		return "."
	}
	return o.OutputDir
}

// ProcessIntent applies one high-level intent to the session.
func ProcessIntent(s *state.Session, jobs Jobs, opts Options, intent input.Intent) {
	switch intent.Action {
	case input.ActionRun:
		runGenerator(s, jobs, opts)

	case input.ActionCancel:
		if jobs.Cancel() {
			s.Running = false
			log.Printf("run %s: canceled by user", s.RunID)
			s.AddMessage(locale.T("RUN_CANCELED"))
		}

	case input.ActionNextRoom, input.ActionPrevRoom:
		selectRoom(s, intent.Action == input.ActionNextRoom)

	case input.ActionPanLeft:
		s.Camera.Pan(PanStep, 0, true)
	case input.ActionPanRight:
		s.Camera.Pan(-PanStep, 0, true)
	case input.ActionPanUp:
		s.Camera.Pan(0, PanStep, true)
	case input.ActionPanDown:
		s.Camera.Pan(0, -PanStep, true)

	// Keyboard zoom behaves like one wheel notch.
	case input.ActionZoomIn:
		s.Camera.Zoom(1)
	case input.ActionZoomOut:
		s.Camera.Zoom(-1)
	case input.ActionResetView:
		s.Camera.Reset()
	case input.ActionFitView:
		if b, ok := render.Bounds(s.Scene.Tiles()); ok {
			s.Camera.Focus(b.Center())
		}

	case input.ActionDumpTerrain:
		path, err := devtools.DumpTerrainToFile(s, opts.dir())
		if err != nil {
			s.AddMessage(locale.Tf("DUMP_FAILED", err))
			return
		}
		s.AddMessage(locale.Tf("DUMP_WRITTEN", path))

	case input.ActionScreenshot:
		path, err := devtools.SaveScreenshotHTML(s, opts.dir())
		if err != nil {
			s.AddMessage(locale.Tf("SCREENSHOT_FAILED", err))
			return
		}
		s.AddMessage(locale.Tf("SCREENSHOT_SAVED", path))

	case input.ActionHelp:
		s.AddMessage(HelpText())

	case input.ActionQuit:
		if jobs.Cancel() {
			s.Running = false
		}
		s.QuitRequested = true
	}
}

func runGenerator(s *state.Session, jobs Jobs, opts Options) {
	if s.Running {
		s.AddMessage(locale.T("RUN_IN_PROGRESS"))
		return
	}
	s.AddMessage(locale.Tf("RUNNING", s.Paths.Command()))
	// Failures are recorded on the session by Start.
	_ = jobs.Start(opts.ctx(), s)
}

func selectRoom(s *state.Session, forward bool) {
	if s.Store.Len() == 0 {
		s.AddMessage(locale.T("NO_ROOMS"))
		return
	}
	var name string
	if forward {
		name, _ = s.Store.Next()
	} else {
		name, _ = s.Store.Prev()
	}
	if name == s.Scene.Room() && s.Store.Len() == 1 {
		return
	}
	RequestDraw(s)
	s.AddMessage(locale.Tf("VIEWING_ROOM", name))
}

// RequestDraw moves the machine to DrawTerrain so the next Update renders
// the selected room. A draw that is already pending is left alone.
func RequestDraw(s *state.Session) {
	if s.Machine.Current() == state.DrawTerrain {
		return
	}
	if err := s.Machine.Set(state.DrawTerrain); err != nil {
		log.Printf("draw request: %v", err)
	}
}

// Update runs one tick: it applies a finished run and performs the render
// pass whenever the machine is in DrawTerrain, returning it to Idle.
func Update(s *state.Session, jobs Jobs) {
	// A draw requested by room selection is flushed first so a finished
	// run always starts from Idle.
	renderPass(s)

	if o, ok := jobs.Poll(); ok {
		s.Running = false
		if o.Err != nil {
			generate.Fail(s, o.Err)
		} else if err := generate.Apply(s, o); err != nil {
			generate.Fail(s, err)
		}
	}

	renderPass(s)
}

func renderPass(s *state.Session) {
	if err := s.RenderPass(); err != nil {
		log.Printf("render pass: %v", err)
	}
}

// PathField names one of the three generator paths.
type PathField int

const (
	FieldInterpreter PathField = iota
	FieldGenerator
	FieldScript
)

func (f PathField) String() string {
	switch f {
	case FieldInterpreter:
		return "interpreter"
	case FieldGenerator:
		return "generator"
	default:
		return "script"
	}
}

// PathFieldFor returns the field an edit action targets.
func PathFieldFor(a input.Action) (PathField, bool) {
	switch a {
	case input.ActionEditInterpreter:
		return FieldInterpreter, true
	case input.ActionEditGenerator:
		return FieldGenerator, true
	case input.ActionEditScript:
		return FieldScript, true
	}
	return 0, false
}

// PathValue returns the current value of a path field.
func PathValue(s *state.Session, f PathField) string {
	switch f {
	case FieldInterpreter:
		return s.Paths.Interpreter
	case FieldGenerator:
		return s.Paths.Generator
	default:
		return s.Paths.Script
	}
}

// SetPath stores a path entered in the path console. Surrounding spaces and
// quotes are dropped; an empty value clears the path.
func SetPath(s *state.Session, f PathField, value string) {
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	switch f {
	case FieldInterpreter:
		s.Paths.Interpreter = value
	case FieldGenerator:
		s.Paths.Generator = value
	case FieldScript:
		s.Paths.Script = value
	}
	if value == "" {
		s.AddMessage(locale.Tf("PATH_CLEARED", f))
		return
	}
	s.AddMessage(locale.Tf("PATH_SET", f, value))
	if missing := s.Paths.Missing(); len(missing) > 0 {
		s.AddMessage(locale.Tf("PATHS_MISSING", strings.Join(missing, ", ")))
	}
}

// HelpText lists the key bindings, one action per segment.
func HelpText() string {
	byAction := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("%s: %s", locale.T(input.ActionName(a)), strings.Join(byAction[a], "/")))
	}
	return strings.Join(parts, "  ")
}
