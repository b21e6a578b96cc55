// Package config merges command-line flags with the saved preferences file.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"terrainview/pkg/viewer/state"
)

const (
	appDir        = "terrainview"
	prefsFileName = "prefs.json"

	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// Prefs is what survives between sessions. Generation results are never
// stored here.
type Prefs struct {
	Interpreter  string `json:"interpreter,omitempty"`
	Generator    string `json:"generator,omitempty"`
	Script       string `json:"script,omitempty"`
	WindowWidth  int    `json:"window_width,omitempty"`
	WindowHeight int    `json:"window_height,omitempty"`
	Locale       string `json:"locale,omitempty"`
}

// Config is the resolved startup configuration.
type Config struct {
	Prefs

	PrefsPath string
	TUI       bool
	Once      bool
	Strict    bool
	SavePrefs bool
	Timeout   time.Duration
	OutputDir string
}

// Paths returns the generator paths as a session value.
func (c *Config) Paths() state.GeneratorPaths {
	return state.GeneratorPaths{
		Interpreter: c.Interpreter,
		Generator:   c.Generator,
		Script:      c.Script,
	}
}

// DefaultPrefsPath is <user config dir>/terrainview/prefs.json.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, prefsFileName), nil
}

// LoadPrefs reads the preferences file. A missing file yields defaults.
func LoadPrefs(path string) (Prefs, error) {
	prefs := Prefs{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs.withDefaults(), nil
	}
	if err != nil {
		return prefs.withDefaults(), err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Prefs{}.withDefaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	return prefs.withDefaults(), nil
}

// SavePrefs writes the preferences file, creating its directory.
func SavePrefs(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (p Prefs) withDefaults() Prefs {
	if p.WindowWidth <= 0 {
		p.WindowWidth = DefaultWindowWidth
	}
	if p.WindowHeight <= 0 {
		p.WindowHeight = DefaultWindowHeight
	}
	return p
}

// Parse builds the configuration from args (without the program name).
// Flags override values from the preferences file. Problems with the
// preferences file are reported to errOut and otherwise ignored.
func Parse(args []string, errOut io.Writer) (*Config, error) {
	fset := flag.NewFlagSet("terrainview", flag.ContinueOnError)
	fset.SetOutput(errOut)

	defaultPath, pathErr := DefaultPrefsPath()

	var (
		flagInterpreter = fset.String("interpreter", "", "Interpreter used to run the generator (e.g. python3)")
		flagGenerator   = fset.String("generator", "", "Path to the generator program")
		flagScript      = fset.String("script", "", "Path to the script passed to the generator with -p")
		flagLocale      = fset.String("locale", "", "UI language (e.g. en, de)")
		flagWidth       = fset.Int("width", 0, "Window width in pixels")
		flagHeight      = fset.Int("height", 0, "Window height in pixels")
	)
	cfg := &Config{}
	fset.StringVar(&cfg.PrefsPath, "config", defaultPath, "Preferences file")
	fset.BoolVar(&cfg.TUI, "tui", false, "Use the terminal frontend instead of the window")
	fset.BoolVar(&cfg.Once, "once", false, "Run the generator once, print the room and exit")
	fset.BoolVar(&cfg.Strict, "strict", false, "Reject generator output with more than one top-level room")
	fset.BoolVar(&cfg.SavePrefs, "save-prefs", false, "Save paths, window size and locale to the preferences file on exit")
	fset.DurationVar(&cfg.Timeout, "timeout", 0, "Kill the generator after this long (0 = no limit)")
	fset.StringVar(&cfg.OutputDir, "out", ".", "Directory for terrain dumps and screenshots")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fset.Args())
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("-timeout must not be negative")
	}

	if cfg.PrefsPath == "" && pathErr != nil {
		fmt.Fprintf(errOut, "Warning: no preferences file location: %v\n", pathErr)
	}
	if cfg.PrefsPath != "" {
		prefs, err := LoadPrefs(cfg.PrefsPath)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
		}
		cfg.Prefs = prefs
	} else {
		cfg.Prefs = Prefs{}.withDefaults()
	}

	// Only flags given explicitly override saved preferences.
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interpreter":
			cfg.Interpreter = *flagInterpreter
		case "generator":
			cfg.Generator = *flagGenerator
		case "script":
			cfg.Script = *flagScript
		case "locale":
			cfg.Locale = *flagLocale
		case "width":
			cfg.WindowWidth = *flagWidth
		case "height":
			cfg.WindowHeight = *flagHeight
		}
	})
	cfg.Prefs = cfg.Prefs.withDefaults()

	return cfg, nil
}

// Save stores the current paths alongside the other preferences.
func (c *Config) Save(paths state.GeneratorPaths) error {
	if c.PrefsPath == "" {
		return errors.New("no preferences file location")
	}
	p := c.Prefs
	p.Interpreter = paths.Interpreter
	p.Generator = paths.Generator
	p.Script = paths.Script
	return SavePrefs(c.PrefsPath, p)
}
