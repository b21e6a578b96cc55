package renderer

import (
	"reflect"
	"strings"
	"testing"

	"terrainview/pkg/viewer/room"
	"terrainview/pkg/viewer/state"
)

func TestParseMarkup(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		want []Segment
	}{
		{"plain", "hello", []Segment{{"hello", StyleNormal}}},
		{"room and item", "Generated ROOM{cave} (ITEM{3x2})", []Segment{
			{"Generated ", StyleNormal},
			{"cave", StyleRoom},
			{" (", StyleNormal},
			{"3x2", StyleItem},
			{")", StyleNormal},
		}},
		{"action with path characters", "Running ACTION{python3 ./gen.py -p a.txt}...", []Segment{
			{"Running ", StyleNormal},
			{"python3 ./gen.py -p a.txt", StyleAction},
			{"...", StyleNormal},
		}},
		{"translated", "GT{RUN_CANCELED}", []Segment{{"Run canceled.", StyleNormal}}},
		{"unknown function kept", "FOO{bar}", []Segment{{"FOO{bar}", StyleNormal}}},
		{"lowercase is not markup", "map{x}", []Segment{{"map{x}", StyleNormal}}},
		{"empty", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseMarkup(tc.msg); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseMarkup(%q) = %#v, want %#v", tc.msg, got, tc.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	if got := PlainText("Viewing ROOM{a} ERROR{x}"); got != "Viewing a x" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	s := state.NewSession(state.GeneratorPaths{})
	if got := PlainText(StatusLine(s)); !strings.Contains(got, "No room yet") {
		t.Errorf("empty status = %q", got)
	}

	s.Store.Insert("a", &room.Room{})
	s.Store.Insert("b", &room.Room{})
	s.Store.Select("a")
	got := PlainText(StatusLine(s))
	for _, want := range []string{"Room a", "1 of 2", "Zoom 100%"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
}

func TestStatusLine_BraceInRoomName(t *testing.T) {
	s := state.NewSession(state.GeneratorPaths{})
	s.Store.Insert("vault}1", &room.Room{})

	var roomSeg Segment
	for _, seg := range ParseMarkup(StatusLine(s)) {
		if seg.Style == StyleRoom {
			roomSeg = seg
		}
	}
	if roomSeg.Text != "vault)1" {
		t.Errorf("room segment = %+v, want vault)1", roomSeg)
	}
	if strings.Contains(PlainText(StatusLine(s)), "}") {
		t.Errorf("markup leaked into %q", PlainText(StatusLine(s)))
	}
}

func TestPathsLine(t *testing.T) {
	s := state.NewSession(state.GeneratorPaths{Interpreter: "python3"})
	if got := PlainText(PathsLine(s)); !strings.Contains(got, "generator, script") {
		t.Errorf("PathsLine = %q", got)
	}
	s.Paths.Generator, s.Paths.Script = "gen.py", "s.txt"
	if got := PlainText(PathsLine(s)); got != "python3 gen.py -p s.txt" {
		t.Errorf("PathsLine = %q", got)
	}
}
