// Package devtools provides developer tools for inspecting generated rooms.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"terrainview/pkg/viewer/render"
	"terrainview/pkg/viewer/room"
	"terrainview/pkg/viewer/state"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileSafe turns a room name into something usable in a file name.
func fileSafe(name string) string {
	safe := unsafeName.ReplaceAllString(name, "_")
	if safe == "" || safe == "." || safe == ".." {
		return "room"
	}
	return safe
}

// DumpTerrainToFile writes the selected room to terrain-<room>.txt in dir:
// metadata, legend, terrain grid (source row order) and the message log.
// It returns the absolute path of the written file.
func DumpTerrainToFile(s *state.Session, dir string) (string, error) {
	r, name, ok := s.Store.Selected()
	if !ok {
		return "", fmt.Errorf("no room to dump")
	}

	absPath, err := filepath.Abs(filepath.Join(dir, "terrain-"+fileSafe(name)+".txt"))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteTerrainDump(f, s, name, r); err != nil {
		return "", err
	}
	return absPath, nil
}

// WriteTerrainDump writes the dump for one room to w.
func WriteTerrainDump(w io.Writer, s *state.Session, name string, r *room.Room) error {
	fmt.Fprintln(w, "=== TERRAIN DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "room: %s\n", name)
	fmt.Fprintf(w, "dumped_at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "rows: %d\n", r.Height())
	fmt.Fprintf(w, "max_cols: %d\n", r.Width())
	fmt.Fprintf(w, "cells: %d\n", r.CellCount())
	fmt.Fprintf(w, "ragged: %t\n", isRagged(r))
	fmt.Fprintf(w, "tile_size: %g\n", render.TileSize)
	fmt.Fprintf(w, "origin: %g,%g\n", -render.OriginX, -render.OriginY)
	fmt.Fprintln(w, "coordinate_system: row,col (0-based); row 0 is drawn at the bottom")
	if s != nil {
		fmt.Fprintf(w, "rooms_in_store: %d\n", s.Store.Len())
		fmt.Fprintf(w, "camera: x=%g y=%g scale=%g\n", s.Camera.Translation.X, s.Camera.Translation.Y, s.Camera.Scale)
		fmt.Fprintf(w, "state: %s\n", s.Machine.Current())
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	counts := symbolCounts(r)
	for _, e := range render.Legend(r) {
		fmt.Fprintf(w, "%s  #%02x%02x%02x  count=%d\n", e.Symbol, e.Color.R, e.Color.G, e.Color.B, counts[e.Symbol])
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Terrain ---")
	for i, row := range r.Layers.Terrain {
		fmt.Fprintf(w, "%4d ", i)
		for _, cell := range row {
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}

	if s != nil && len(s.Messages) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "--- Messages ---")
		for _, m := range s.Messages {
			fmt.Fprintf(w, "[%s] %s\n", m.At.Format("15:04:05"), m.Text)
		}
	}
	return nil
}

func isRagged(r *room.Room) bool {
	for _, row := range r.Layers.Terrain {
		if len(row) != r.Width() {
			return true
		}
	}
	return false
}

func symbolCounts(r *room.Room) map[string]int {
	counts := make(map[string]int)
	for _, row := range r.Layers.Terrain {
		for _, cell := range row {
			counts[cell]++
		}
	}
	return counts
}
