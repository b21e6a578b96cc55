package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"terrainview/pkg/engine/terminal"
	"terrainview/pkg/viewer/config"
	"terrainview/pkg/viewer/control"
	"terrainview/pkg/viewer/devtools"
	"terrainview/pkg/viewer/generate"
	"terrainview/pkg/viewer/locale"
	"terrainview/pkg/viewer/renderer"
	"terrainview/pkg/viewer/renderer/tui"
	"terrainview/pkg/viewer/state"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if cfg.Locale != "" {
		if err := locale.Init(cfg.Locale); err != nil {
			log.Printf("Locale: %v", err)
		}
	} else {
		// The environment language is a hint only
		_ = locale.Init(os.Getenv("LANG"))
	}

	s := state.NewSession(cfg.Paths())

	pipeline := generate.NewPipeline()
	pipeline.Decoder.Strict = cfg.Strict
	pipeline.Timeout = cfg.Timeout

	if cfg.Once {
		return runOnce(cfg, s, pipeline)
	}

	if missing := s.Paths.Missing(); len(missing) > 0 {
		log.Printf("Generator paths not set: %v", missing)
	}

	opts := control.Options{Ctx: context.Background(), OutputDir: cfg.OutputDir}

	var r renderer.Renderer
	var jobs control.Jobs
	if cfg.TUI || !guiAvailable() {
		if !terminal.IsInteractive() {
			fmt.Fprintln(os.Stderr, "no window system and stdin/stdout is not a terminal; use -once for headless runs")
			return 1
		}
		r = tui.New(cfg.WindowWidth, cfg.WindowHeight)
		jobs = control.SyncJobs{Pipeline: pipeline}
	} else {
		var closeJobs func()
		r, jobs, closeJobs = newGUI(cfg, pipeline)
		defer closeJobs()
	}

	r.Init()
	runErr := r.Run(s, jobs, opts)

	if cfg.SavePrefs {
		if sized, ok := r.(interface{ WindowSize() (int, int) }); ok {
			cfg.WindowWidth, cfg.WindowHeight = sized.WindowSize()
		}
		if err := cfg.Save(s.Paths); err != nil {
			log.Printf("Saving preferences: %v", err)
		} else {
			log.Printf("Preferences saved to %s", cfg.PrefsPath)
		}
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	return 0
}

// runOnce runs the generator a single time and prints the terrain dump.
func runOnce(cfg *config.Config, s *state.Session, pipeline *generate.Pipeline) int {
	ctx := context.Background()
	if err := pipeline.Trigger(ctx, s); err != nil {
		fmt.Fprintln(os.Stderr, locale.Tf("RUN_FAILED", generate.Describe(err)))
		return 1
	}

	control.Update(s, control.SyncJobs{Pipeline: pipeline})

	r, name, ok := s.Store.Selected()
	if !ok {
		fmt.Fprintln(os.Stderr, locale.T("NO_ROOMS"))
		return 1
	}
	if err := devtools.WriteTerrainDump(os.Stdout, s, name, r); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg.SavePrefs {
		if err := cfg.Save(s.Paths); err != nil {
			log.Printf("Saving preferences: %v", err)
		}
	}
	return 0
}
