package devtools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"terrainview/pkg/viewer/room"
	"terrainview/pkg/viewer/state"
)

func sessionWithRoom(name string, terrain room.Terrain) *state.Session {
	s := state.NewSession(state.GeneratorPaths{})
	s.Store.Insert(name, &room.Room{Layers: room.Layers{Terrain: terrain}})
	return s
}

func TestDumpTerrainToFile(t *testing.T) {
	dir := t.TempDir()
	s := sessionWithRoom("room1", room.Terrain{{"#", "."}, {".", "&"}, {"#"}})
	s.AddMessage("hello")

	path, err := DumpTerrainToFile(s, dir)
	if err != nil {
		t.Fatalf("DumpTerrainToFile: %v", err)
	}
	if filepath.Base(path) != "terrain-room1.txt" {
		t.Errorf("file name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"room: room1",
		"rows: 3",
		"max_cols: 2",
		"cells: 5",
		"ragged: true",
		"#  #ff0000  count=2",
		"&  #1ab380  count=1",
		"   0 #.",
		"   2 #",
		"hello",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpTerrainToFile_NoRoom(t *testing.T) {
	s := state.NewSession(state.GeneratorPaths{})
	if _, err := DumpTerrainToFile(s, t.TempDir()); err == nil {
		t.Fatal("expected an error with an empty store")
	}
}

func TestFileSafe(t *testing.T) {
	cases := map[string]string{
		"room1":      "room1",
		"a/b c":      "a_b_c",
		"":           "room",
		"..":         "room",
		"../../etc":  ".._.._etc",
		"cave-2.v1":  "cave-2.v1",
		"ünïcode":    "_n_code",
	}
	for in, want := range cases {
		if got := fileSafe(in); got != want {
			t.Errorf("fileSafe(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveScreenshotHTML(t *testing.T) {
	dir := t.TempDir()
	s := sessionWithRoom("<r>", room.Terrain{{"#"}, {"@"}})

	path, err := SaveScreenshotHTML(s, dir)
	if err != nil {
		t.Fatalf("SaveScreenshotHTML: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "screenshot-") || filepath.Ext(path) != ".html" {
		t.Errorf("file name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "Room &lt;r&gt;") {
		t.Error("room name not escaped")
	}
	// Row 1 ('@') is above row 0 ('#') on screen.
	deep := strings.Index(out, "background-color:#1a334d;")
	wall := strings.Index(out, "background-color:#ff0000;")
	if deep < 0 || wall < 0 || deep > wall {
		t.Errorf("rows not in screen order (deep=%d wall=%d)", deep, wall)
	}
}
