//go:build !nogui

package main

import (
	"terrainview/pkg/viewer/config"
	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/generate"
	"terrainview/pkg/viewer/renderer"
	"terrainview/pkg/viewer/renderer/ebiten"
)

func guiAvailable() bool {
	return true
}

// newGUI returns the window frontend with runs on a background worker.
func newGUI(cfg *config.Config, pipeline *generate.Pipeline) (renderer.Renderer, control.Jobs, func()) {
	worker := generate.NewWorker(pipeline)
	return ebiten.New(cfg.WindowWidth, cfg.WindowHeight), control.AsyncJobs{Worker: worker}, worker.Close
}
