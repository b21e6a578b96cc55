package locale

import (
	"errors"
	"reflect"
	"testing"
)

func TestAvailable(t *testing.T) {
	if got := Available(); !reflect.DeepEqual(got, []string{"de", "en"}) {
		t.Errorf("Available() = %v", got)
	}
}

func TestInit_Languages(t *testing.T) {
	t.Cleanup(func() { _ = Init(DefaultLanguage) })

	cases := []struct {
		lang    string
		want    string
		wantErr bool
		text    string
	}{
		{"", "en", false, "Run canceled."},
		{"en", "en", false, "Run canceled."},
		{"de", "de", false, "Lauf abgebrochen."},
		{"de_DE.UTF-8", "de", false, "Lauf abgebrochen."},
		{"xx", "en", true, "Run canceled."},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			err := Init(tc.lang)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Init(%q) err = %v", tc.lang, err)
			}
			if Current() != tc.want {
				t.Errorf("Current() = %q, want %q", Current(), tc.want)
			}
			if got := T("RUN_CANCELED"); got != tc.text {
				t.Errorf("T(RUN_CANCELED) = %q, want %q", got, tc.text)
			}
		})
	}
}

func TestT_UnknownKeyUnchanged(t *testing.T) {
	if got := T("Not A Key"); got != "Not A Key" {
		t.Errorf("T = %q", got)
	}
}

func TestTf(t *testing.T) {
	if got := Tf("GENERATED_ROOM", "room1", 2, 3); got != "Generated ROOM{room1} (ITEM{2x3})" {
		t.Errorf("Tf = %q", got)
	}
}

func TestTf_BracesInArgs(t *testing.T) {
	cases := []struct {
		name string
		arg  any
		want string
	}{
		{"string", "a}b", "Viewing ROOM{a)b}"},
		{"nested markup", "ITEM{x}", "Viewing ROOM{ITEM(x)}"},
		{"error", errors.New("bad {"), "Viewing ROOM{bad (}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tf("VIEWING_ROOM", tc.arg); got != tc.want {
				t.Errorf("Tf = %q, want %q", got, tc.want)
			}
		})
	}
}
