// Package state holds the application context passed to every update step.
package state

import (
	"time"

	"terrainview/pkg/engine/camera"
	"terrainview/pkg/engine/process"
	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/store"
)

const maxMessages = 8

// GeneratorPaths are the three inputs of a generator run. Empty means unset.
type GeneratorPaths struct {
	Interpreter string
	Generator   string
	Script      string
}

// Complete reports whether all three paths are set.
func (p GeneratorPaths) Complete() bool {
	return p.Interpreter != "" && p.Generator != "" && p.Script != ""
}

// Missing returns the names of unset paths.
func (p GeneratorPaths) Missing() []string {
	var missing []string
	if p.Interpreter == "" {
		missing = append(missing, "interpreter")
	}
	if p.Generator == "" {
		missing = append(missing, "generator")
	}
	if p.Script == "" {
		missing = append(missing, "script")
	}
	return missing
}

// Command converts the paths into a process invocation.
func (p GeneratorPaths) Command() process.Command {
	return process.Command{Interpreter: p.Interpreter, Generator: p.Generator, Script: p.Script}
}

// Message is one entry of the session message log.
type Message struct {
	Text string
	At   time.Time
}

// Session is the application context. It is owned by the top-level loop
// and only mutated on the loop goroutine.
type Session struct {
	Paths GeneratorPaths

	Store   *store.Store
	Camera  *camera.Camera
	Machine *Machine
	Scene   *render.Scene

	Messages  []Message
	LastError error

	// Running is true while a generator run is in flight.
	Running bool
	// RunID identifies the latest started run.
	RunID string

	QuitRequested bool
}

// NewSession creates an idle session with an empty store.
func NewSession(paths GeneratorPaths) *Session {
	return &Session{
		Paths:    paths,
		Store:    store.New(),
		Camera:   camera.New(),
		Machine:  NewMachine(),
		Scene:    render.NewScene(),
		Messages: make([]Message, 0),
	}
}

// AddMessage appends to the message log, keeping the newest entries.
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, Message{Text: msg, At: time.Now()})
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// RenderPass draws the selected room into the Scene and returns the machine
// to Idle. It does nothing unless a draw is pending.
func (s *Session) RenderPass() error {
	if s.Machine.Current() != DrawTerrain {
		return nil
	}
	if r, name, ok := s.Store.Selected(); ok {
		s.Scene.Draw(name, r)
	}
	return s.Machine.Set(Idle)
}

// ClearMessages empties the message log.
func (s *Session) ClearMessages() {
	s.Messages = make([]Message, 0)
}

// LatestMessage returns the newest message text, or "".
func (s *Session) LatestMessage() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Text
}
