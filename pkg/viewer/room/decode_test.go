package room

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode_SingleRoom(t *testing.T) {
	name, r, err := Decode(`{"room1":{"layers":{"terrain":[["#","."],[".","&"]]}}}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if name != "room1" {
		t.Errorf("name = %q, want room1", name)
	}
	want := Terrain{{"#", "."}, {".", "&"}}
	if !reflect.DeepEqual(r.Layers.Terrain, want) {
		t.Errorf("terrain = %v, want %v", r.Layers.Terrain, want)
	}
}

func TestDecode_RaggedAndEmptyTerrain(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want Terrain
	}{
		{"ragged", `{"r":{"layers":{"terrain":[["#"],[".",".","@"],[]]}}}`, Terrain{{"#"}, {".", ".", "@"}, {}}},
		{"empty", `{"r":{"layers":{"terrain":[]}}}`, Terrain{}},
		{"unicode symbol", `{"r":{"layers":{"terrain":[["▒"]]}}}`, Terrain{{"▒"}}},
		{"extra fields ignored", `{"r":{"seed":4,"layers":{"terrain":[["*"]],"items":[]}}}`, Terrain{{"*"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, r, err := Decode(tc.doc)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(r.Layers.Terrain, tc.want) {
				t.Errorf("terrain = %#v, want %#v", r.Layers.Terrain, tc.want)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `not json`, ErrParse},
		{"empty input", ``, ErrParse},
		{"truncated", `{"a":{"layers":`, ErrParse},
		{"trailing data", `{"a":{}} {}`, ErrParse},
		{"array top level", `[1,2]`, ErrShape},
		{"string top level", `"room"`, ErrShape},
		{"empty object", `{}`, ErrShape},
		{"missing layers", `{"a":{}}`, ErrSchema},
		{"null content", `{"a":null}`, ErrSchema},
		{"missing terrain", `{"a":{"layers":{}}}`, ErrSchema},
		{"null terrain", `{"a":{"layers":{"terrain":null}}}`, ErrSchema},
		{"terrain not array", `{"a":{"layers":{"terrain":"##"}}}`, ErrSchema},
		{"number cell", `{"a":{"layers":{"terrain":[["#",1]]}}}`, ErrSchema},
		{"multi-char cell", `{"a":{"layers":{"terrain":[["##"]]}}}`, ErrSchema},
		{"empty cell", `{"a":{"layers":{"terrain":[[""]]}}}`, ErrSchema},
		{"null row", `{"a":{"layers":{"terrain":[null]}}}`, ErrSchema},
		{"capitalised layers", `{"a":{"Layers":{"terrain":[["#"]]}}}`, ErrSchema},
		{"upper-case terrain", `{"a":{"layers":{"TERRAIN":[["#"]]}}}`, ErrSchema},
		{"both keys miscased", `{"r":{"LAYERS":{"Terrain":[["#"]]}}}`, ErrSchema},
		{"null layers", `{"a":{"layers":null}}`, ErrSchema},
		{"layers not object", `{"a":{"layers":[1]}}`, ErrSchema},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, r, err := Decode(tc.doc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if r != nil {
				t.Errorf("room = %v, want nil on failure", r)
			}
		})
	}
}

func TestDecode_FirstKeyInDocumentOrder(t *testing.T) {
	// "b" sorts before "z"; document order must win over any map ordering.
	doc := `{"z":{"layers":{"terrain":[["#"]]}},"b":{"layers":{"terrain":[["."]]}}}`
	info, r, err := Decoder{}.DecodeDetailed(doc)
	if err != nil {
		t.Fatalf("DecodeDetailed: %v", err)
	}
	if info.Name != "z" {
		t.Errorf("name = %q, want z", info.Name)
	}
	if got, _ := r.Cell(0, 0); got != "#" {
		t.Errorf("cell = %q, want # from the first room", got)
	}
	if info.Keys != 2 || !reflect.DeepEqual(info.Ignored, []string{"b"}) {
		t.Errorf("info = %+v, want 2 keys with b ignored", info)
	}
}

func TestDecode_MultiKeyFirstChosenEvenWhenInvalid(t *testing.T) {
	_, _, err := Decode(`{"a":{},"b":{}}`)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Room != "a" {
		t.Fatalf("err = %#v, want DecodeError for room a", err)
	}
}

func TestDecoder_StrictRejectsExtraKeys(t *testing.T) {
	doc := `{"a":{"layers":{"terrain":[]}},"b":{"layers":{"terrain":[]}}}`
	if _, _, err := (Decoder{Strict: true}).Decode(doc); !errors.Is(err, ErrShape) {
		t.Fatalf("strict err = %v, want ErrShape", err)
	}
	if _, _, err := (Decoder{Strict: true}).Decode(`{"a":{"layers":{"terrain":[]}}}`); err != nil {
		t.Fatalf("strict single key: %v", err)
	}
}

func TestDecode_RoomIsIndependentOfInput(t *testing.T) {
	buf := []byte(`{"a":{"layers":{"terrain":[["#"]]}}}`)
	_, r, err := Decode(string(buf))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range buf {
		buf[i] = ' '
	}
	if got, _ := r.Cell(0, 0); got != "#" {
		t.Errorf("cell changed to %q after input mutation", got)
	}
}

func TestRoom_Dimensions(t *testing.T) {
	r := &Room{Layers: Layers{Terrain: Terrain{{"#"}, {".", ".", "."}, {}}}}
	if r.Height() != 3 || r.Width() != 3 || r.CellCount() != 4 {
		t.Errorf("Height/Width/CellCount = %d/%d/%d, want 3/3/4", r.Height(), r.Width(), r.CellCount())
	}
	if _, ok := r.Cell(1, 0); ok {
		t.Error("Cell(1,0) exists in a one-cell row")
	}
	var nilRoom *Room
	if nilRoom.Width() != 0 || nilRoom.Height() != 0 {
		t.Error("nil room should have zero size")
	}
	c := r.Clone()
	c.Layers.Terrain[0][0] = "@"
	if r.Layers.Terrain[0][0] != "#" {
		t.Error("Clone shares storage with the original")
	}
}
