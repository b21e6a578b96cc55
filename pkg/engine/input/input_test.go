package input

import (
	"io"
	"strings"
	"testing"
)

func TestKeyReader_ReadKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain letters", "rq", []string{"r", "q"}},
		{"arrows csi", "\x1b[A\x1b[D", []string{"arrow_up", "arrow_left"}},
		{"arrows ss3", "\x1bOB\x1bOC", []string{"arrow_down", "arrow_right"}},
		{"function keys", "\x1bOQ\x1b[15~\x1b[24~", []string{"f2", "f5", "f12"}},
		{"shift tab", "\t\x1b[Z", []string{"tab", "shift_tab"}},
		{"enter and ctrl c", "\r\x03", []string{"enter", "ctrl_c"}},
		{"unknown sequence", "\x1b[99~x", []string{"", "x"}},
		{"alt key", "\x1bn", []string{"n"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := NewKeyReader(strings.NewReader(tc.input))
			for i, want := range tc.want {
				got, err := k.ReadKey()
				if err != nil {
					t.Fatalf("key %d: %v", i, err)
				}
				if got != want {
					t.Errorf("key %d = %q, want %q", i, got, want)
				}
			}
			if _, err := k.ReadKey(); err != io.EOF {
				t.Errorf("trailing read err = %v, want EOF", err)
			}
		})
	}
}

func TestKeyReader_LoneEscape(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x1b"))
	got, err := k.ReadKey()
	if err != nil || got != "escape" {
		t.Fatalf("ReadKey = %q, %v; want escape", got, err)
	}
}

func TestKeyReader_ReadLine(t *testing.T) {
	k := NewKeyReader(strings.NewReader("gen.py\r\nlast"))
	if got, err := k.ReadLine(); err != nil || got != "gen.py" {
		t.Errorf("ReadLine = %q, %v", got, err)
	}
	if got, err := k.ReadLine(); err != nil || got != "last" {
		t.Errorf("ReadLine without newline = %q, %v", got, err)
	}
	if _, err := k.ReadLine(); err != io.EOF {
		t.Errorf("ReadLine at end err = %v, want EOF", err)
	}
}
