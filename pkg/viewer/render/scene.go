package render

import "terrainview/pkg/viewer/room"

// Scene owns the tiles currently on screen. Drawing a room replaces the
// previous tile set instead of adding to it, so drawing the same room twice
// leaves the same visible tiles.
type Scene struct {
	room  string
	tiles []Tile
	byKey map[Key]int

	// Lifetime counters, useful for debugging redraw behaviour.
	Draws     int
	Spawned   int
	Despawned int
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{byKey: make(map[Key]int)}
}

// Draw renders r and replaces the scene contents with the result.
func (s *Scene) Draw(name string, r *room.Room) {
	s.Replace(name, Render(r))
}

// Replace despawns every current tile and spawns tiles in their place.
func (s *Scene) Replace(name string, tiles []Tile) {
	s.Despawned += len(s.tiles)

	s.room = name
	s.tiles = tiles
	s.byKey = make(map[Key]int, len(tiles))
	for i, t := range tiles {
		s.byKey[t.Key()] = i
	}

	s.Spawned += len(tiles)
	s.Draws++
}

// Clear despawns all tiles.
func (s *Scene) Clear() {
	s.Replace("", nil)
}

// Room returns the name of the room currently shown.
func (s *Scene) Room() string {
	return s.room
}

// Tiles returns the live tiles. Callers must not modify the slice.
func (s *Scene) Tiles() []Tile {
	return s.tiles
}

// Len returns the number of live tiles.
func (s *Scene) Len() int {
	return len(s.tiles)
}

// TileAt returns the live tile at a grid position.
func (s *Scene) TileAt(col, row int) (Tile, bool) {
	i, ok := s.byKey[Key{Col: col, Row: row}]
	if !ok {
		return Tile{}, false
	}
	return s.tiles[i], true
}

// TileAtWorld returns the tile covering world point (x, y).
func (s *Scene) TileAtWorld(x, y float64) (Tile, bool) {
	col, row := GridAt(x, y)
	return s.TileAt(col, row)
}

// GridAt converts a world point to the grid position whose tile covers it.
// Tiles are centred on their world position.
func GridAt(x, y float64) (int, int) {
	fx := (x + OriginX + TileSize/2) / TileSize
	fy := (y + OriginY + TileSize/2) / TileSize
	return floor(fx), floor(fy)
}

func floor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
