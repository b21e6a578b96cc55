//go:build nogui

package main

import (
	"terrainview/pkg/viewer/config"
	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/generate"
	"terrainview/pkg/viewer/renderer"
	"terrainview/pkg/viewer/renderer/tui"
)

func guiAvailable() bool {
	return false
}

// newGUI is never reached in nogui builds; it returns the terminal frontend.
func newGUI(cfg *config.Config, pipeline *generate.Pipeline) (renderer.Renderer, control.Jobs, func()) {
	return tui.New(cfg.WindowWidth, cfg.WindowHeight), control.SyncJobs{Pipeline: pipeline}, func() {}
}
