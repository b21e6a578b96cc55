// Package room holds the decoded map model produced by a generator run.
package room

// Terrain is a row-major grid of single-character symbols.
// Row index is y, column index is x. Rows may differ in length.
type Terrain [][]string

// Layers groups the map layers of a room. Only terrain is known today.
type Layers struct {
	Terrain Terrain `json:"terrain"`
}

// Room is one decoded generator result.
type Room struct {
	Layers Layers `json:"layers"`
}

// Height returns the number of terrain rows.
func (r *Room) Height() int {
	if r == nil {
		return 0
	}
	return len(r.Layers.Terrain)
}

// Width returns the length of the longest terrain row.
func (r *Room) Width() int {
	if r == nil {
		return 0
	}
	w := 0
	for _, row := range r.Layers.Terrain {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// CellCount returns the total number of cells across all rows.
func (r *Room) CellCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, row := range r.Layers.Terrain {
		n += len(row)
	}
	return n
}

// Cell returns the symbol at (x, y) and whether that position exists in its row.
func (r *Room) Cell(x, y int) (string, bool) {
	if r == nil || y < 0 || y >= len(r.Layers.Terrain) {
		return "", false
	}
	row := r.Layers.Terrain[y]
	if x < 0 || x >= len(row) {
		return "", false
	}
	return row[x], true
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	t := make(Terrain, len(r.Layers.Terrain))
	for y, row := range r.Layers.Terrain {
		t[y] = append([]string(nil), row...)
	}
	return &Room{Layers: Layers{Terrain: t}}
}
