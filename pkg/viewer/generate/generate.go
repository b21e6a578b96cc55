// Package generate runs the external generator and feeds its room into the session.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"terrainview/pkg/engine/process"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/room"
	"terrainview/pkg/viewer/state"
)

var (
	// ErrPathsIncomplete is returned when a run is requested without all three paths.
	ErrPathsIncomplete = errors.New("generator paths incomplete")
	// ErrBusy is returned when a run is requested while another is in flight.
	ErrBusy = errors.New("a generator run is already in progress")
	// ErrCanceled is returned when the user cancelled the run.
	ErrCanceled = errors.New("generator run canceled")
	// ErrTimeout is returned when the run exceeded Pipeline.Timeout.
	ErrTimeout = errors.New("generator run timed out")
)

// Outcome is the decoded result of one run. It carries no session state;
// Apply moves it into a session.
type Outcome struct {
	RunID    string
	Seq      uint64
	Name     string
	Room     *room.Room
	Info     room.DecodeInfo
	Err      error
	Duration time.Duration
}

// Pipeline runs the generator and decodes its output.
type Pipeline struct {
	Runner  process.Runner
	Decoder room.Decoder
	// Timeout bounds a run; zero means no limit.
	Timeout time.Duration
}

// NewPipeline returns a pipeline using OS processes and the default decoder.
func NewPipeline() *Pipeline {
	return &Pipeline{Runner: process.NewExecRunner()}
}

// Run executes the generator for paths and decodes its stdout. It does not
// touch any session state.
func (p *Pipeline) Run(ctx context.Context, paths state.GeneratorPaths) (Outcome, error) {
	start := time.Now()
	var out Outcome

	if !paths.Complete() {
		return out, fmt.Errorf("%w: missing %s", ErrPathsIncomplete, strings.Join(paths.Missing(), ", "))
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	res, err := p.Runner.Run(ctx, paths.Command())
	out.Duration = time.Since(start)
	switch {
	case errors.Is(err, context.Canceled):
		return out, ErrCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return out, fmt.Errorf("%w after %v", ErrTimeout, p.Timeout)
	case err != nil:
		return out, err
	}
	if !res.Success {
		return out, &process.ExitError{Code: res.ExitCode, Stderr: string(res.Output)}
	}

	text, err := res.Text()
	if err != nil {
		return out, err
	}

	info, r, err := p.Decoder.DecodeDetailed(text)
	if err != nil {
		return out, err
	}
	out.Name = info.Name
	out.Room = r
	out.Info = info
	return out, nil
}

// Apply inserts a successful outcome into the session and then requests a
// draw. A draw still pending from a room selection is rendered first, so
// the run always makes its own Idle to DrawTerrain transition.
func Apply(s *state.Session, o Outcome) error {
	if o.Room == nil {
		return errors.New("outcome has no room")
	}
	if err := s.RenderPass(); err != nil {
		return err
	}
	s.Store.Insert(o.Name, o.Room)
	s.LastError = nil
	if err := s.Machine.Set(state.DrawTerrain); err != nil {
		return err
	}

	if len(o.Info.Ignored) > 0 {
		log.Printf("run %s: using room %q, ignored %d extra key(s): %s",
			o.RunID, o.Name, len(o.Info.Ignored), strings.Join(o.Info.Ignored, ", "))
	}
	log.Printf("run %s: decoded room %q (%dx%d) in %v", o.RunID, o.Name, o.Room.Width(), o.Room.Height(), o.Duration)
	s.AddMessage(locale.Tf("GENERATED_ROOM", o.Name, o.Room.Width(), o.Room.Height()))
	return nil
}

// Fail records a failed run. The store, camera and state machine are untouched.
func Fail(s *state.Session, err error) {
	s.LastError = err
	log.Printf("run %s failed: %v", s.RunID, err)
	s.AddMessage(locale.Tf("RUN_FAILED", Describe(err)))
}

// Trigger runs the pipeline synchronously and applies the result. It blocks
// until the generator exits.
func (p *Pipeline) Trigger(ctx context.Context, s *state.Session) error {
	s.Running = true
	defer func() { s.Running = false }()

	o, err := p.Run(ctx, s.Paths)
	if err != nil {
		Fail(s, err)
		return err
	}
	if err := Apply(s, o); err != nil {
		Fail(s, err)
		return err
	}
	return nil
}

// Describe turns a run error into a short user-facing reason.
func Describe(err error) string {
	var exitErr *process.ExitError
	switch {
	case errors.Is(err, ErrPathsIncomplete):
		return err.Error()
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrTimeout):
		return err.Error()
	case errors.Is(err, process.ErrSpawn):
		return "could not start the interpreter (" + err.Error() + ")"
	case errors.As(err, &exitErr):
		return exitErr.Error()
	case errors.Is(err, process.ErrTextDecode):
		return "generator output is not valid UTF-8"
	case errors.Is(err, room.ErrParse):
		return "generator output is not valid JSON (" + err.Error() + ")"
	case errors.Is(err, room.ErrShape):
		return "generator output has the wrong shape (" + err.Error() + ")"
	case errors.Is(err, room.ErrSchema):
		return "room does not match the expected schema (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
