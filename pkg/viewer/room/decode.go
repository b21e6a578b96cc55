package room

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrParse means the text is not a well-formed JSON document.
	ErrParse = errors.New("malformed document")
	// ErrShape means the top level is not a non-empty object
	// (or, in strict mode, has more than one key).
	ErrShape = errors.New("unexpected document shape")
	// ErrSchema means the room content is missing fields or has wrong types.
	ErrSchema = errors.New("room schema mismatch")
)

// DecodeError carries the failure kind and, when known, the room name.
type DecodeError struct {
	Kind error
	Room string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Room != "" {
		return fmt.Sprintf("%v: room %q: %v", e.Kind, e.Room, e.Err)
	}
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Is matches the sentinel kind.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeInfo describes how a document was interpreted.
type DecodeInfo struct {
	Name    string
	Keys    int      // number of top-level keys seen
	Ignored []string // keys after the first, in document order
}

// Decoder converts generator output into a named Room.
//
// The room is taken from the first top-level key in document order. Extra
// keys are never merged: they are skipped and listed in DecodeInfo.Ignored,
// or rejected with ErrShape when Strict is set.
type Decoder struct {
	Strict bool
}

// Decode is Decoder{}.Decode.
func Decode(text string) (string, *Room, error) {
	return Decoder{}.Decode(text)
}

// Decode parses text and returns the first room it describes.
func (d Decoder) Decode(text string) (string, *Room, error) {
	info, r, err := d.DecodeDetailed(text)
	if err != nil {
		return "", nil, err
	}
	return info.Name, r, nil
}

// DecodeDetailed is Decode plus information about ignored keys.
func (d Decoder) DecodeDetailed(text string) (DecodeInfo, *Room, error) {
	var info DecodeInfo
	data := []byte(text)

	if !json.Valid(data) {
		return info, nil, &DecodeError{Kind: ErrParse, Err: syntaxDetail(data)}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return info, nil, &DecodeError{Kind: ErrParse, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return info, nil, &DecodeError{Kind: ErrShape, Err: fmt.Errorf("top level is %s, want object", describeToken(tok))}
	}

	var content json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return info, nil, &DecodeError{Kind: ErrParse, Err: err}
		}
		key, _ := keyTok.(string)
		info.Keys++

		if info.Keys == 1 {
			info.Name = key
			if err := dec.Decode(&content); err != nil {
				return info, nil, &DecodeError{Kind: ErrParse, Room: key, Err: err}
			}
			continue
		}

		info.Ignored = append(info.Ignored, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return info, nil, &DecodeError{Kind: ErrParse, Err: err}
		}
	}

	if info.Keys == 0 {
		return info, nil, &DecodeError{Kind: ErrShape, Err: errors.New("top-level object is empty")}
	}
	if d.Strict && info.Keys > 1 {
		return info, nil, &DecodeError{Kind: ErrShape, Err: fmt.Errorf("expected exactly one room, found %d", info.Keys)}
	}

	r, err := decodeRoom(content)
	if err != nil {
		return info, nil, &DecodeError{Kind: ErrSchema, Room: info.Name, Err: err}
	}
	return info, r, nil
}

// decodeRoom looks fields up by their exact names; encoding/json struct
// decoding would also accept "Layers" or "TERRAIN".
func decodeRoom(content json.RawMessage) (*Room, error) {
	if bytes.Equal(bytes.TrimSpace(content), []byte("null")) {
		return nil, errors.New("room content is null")
	}

	var fields map[string]json.RawMessage
	if err := unmarshalField(content, &fields, "room"); err != nil {
		return nil, err
	}
	rawLayers, ok := fields["layers"]
	if !ok {
		return nil, errors.New("missing field \"layers\"")
	}

	var layers map[string]json.RawMessage
	if err := unmarshalField(rawLayers, &layers, "layers"); err != nil {
		return nil, err
	}
	rawTerrain, ok := layers["terrain"]
	if !ok {
		return nil, errors.New("missing field \"layers.terrain\"")
	}

	var terrainPtr *[][]string
	if err := unmarshalField(rawTerrain, &terrainPtr, "layers.terrain"); err != nil {
		return nil, err
	}
	if terrainPtr == nil {
		return nil, errors.New("missing field \"layers.terrain\"")
	}

	src := *terrainPtr
	terrain := make(Terrain, len(src))
	for y, row := range src {
		if row == nil {
			return nil, fmt.Errorf("terrain row %d is null", y)
		}
		out := make([]string, len(row))
		for x, cell := range row {
			if utf8.RuneCountInString(cell) != 1 {
				return nil, fmt.Errorf("terrain cell (%d,%d) is %q, want a single character", x, y, cell)
			}
			out[x] = cell
		}
		terrain[y] = out
	}

	return &Room{Layers: Layers{Terrain: terrain}}, nil
}

func unmarshalField(data json.RawMessage, v any, field string) error {
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("field %q: got %s, want %s", field, typeErr.Value, typeErr.Type)
		}
		return err
	}
	return nil
}

// syntaxDetail re-runs the decoder to obtain a descriptive syntax error.
func syntaxDetail(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return errors.New("empty input")
		}
		return err
	}
	return errors.New("unexpected data after document")
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return string(v)
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
