// Package render turns room terrain into positioned, coloured tiles.
package render

import (
	"image/color"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"terrainview/pkg/viewer/room"
)

// Tile geometry in world units.
const (
	TileSize = 8.0
	OriginX  = 400.0
	OriginY  = 300.0
)

// Terrain palette
var (
	ColorWall     = color.RGBA{255, 0, 0, 255}     // '#' red
	ColorFloor    = color.RGBA{204, 204, 204, 255} // '.' light gray
	ColorWater    = color.RGBA{26, 179, 128, 255}  // '&' teal
	ColorDeep     = color.RGBA{26, 51, 77, 255}    // '@' dark navy
	ColorVoid     = color.RGBA{0, 0, 0, 255}       // '*' black
	ColorFallback = color.RGBA{255, 255, 255, 255} // anything else
)

var palette = map[string]color.RGBA{
	"#": ColorWall,
	".": ColorFloor,
	"&": ColorWater,
	"@": ColorDeep,
	"*": ColorVoid,
}

// ColorFor maps a terrain symbol to its tile colour. Unknown symbols are white.
func ColorFor(symbol string) color.RGBA {
	if c, ok := palette[symbol]; ok {
		return c
	}
	return ColorFallback
}

// Tile is one rendered terrain cell. Col/Row are grid coordinates;
// X/Y are world coordinates of the tile centre.
type Tile struct {
	Col, Row int
	X, Y     float64
	Size     float64
	Symbol   string
	Color    color.RGBA
}

// Key identifies a tile by grid position.
type Key struct {
	Col, Row int
}

// Key returns the tile's grid key.
func (t Tile) Key() Key {
	return Key{Col: t.Col, Row: t.Row}
}

// Render emits one tile per terrain cell. Each row is walked to its own
// length, so ragged terrain is safe. The input room is not modified.
// The whole grid is recomputed on every call.
func Render(r *room.Room) []Tile {
	if r == nil {
		return nil
	}
	tiles := make([]Tile, 0, r.CellCount())
	for y, row := range r.Layers.Terrain {
		for x, cell := range row {
			tiles = append(tiles, Tile{
				Col:    x,
				Row:    y,
				X:      float64(x)*TileSize - OriginX,
				Y:      float64(y)*TileSize - OriginY,
				Size:   TileSize,
				Symbol: cell,
				Color:  ColorFor(cell),
			})
		}
	}
	return tiles
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Center returns the middle of the rectangle.
func (r Rect) Center() (float64, float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// Bounds returns the world rectangle covered by tiles, and false when empty.
func Bounds(tiles []Tile) (Rect, bool) {
	if len(tiles) == 0 {
		return Rect{}, false
	}
	half := tiles[0].Size / 2
	b := Rect{MinX: tiles[0].X - half, MinY: tiles[0].Y - half, MaxX: tiles[0].X + half, MaxY: tiles[0].Y + half}
	for _, t := range tiles[1:] {
		h := t.Size / 2
		if t.X-h < b.MinX {
			b.MinX = t.X - h
		}
		if t.Y-h < b.MinY {
			b.MinY = t.Y - h
		}
		if t.X+h > b.MaxX {
			b.MaxX = t.X + h
		}
		if t.Y+h > b.MaxY {
			b.MaxY = t.Y + h
		}
	}
	return b, true
}

// Symbols returns the distinct terrain symbols present in a room.
func Symbols(r *room.Room) mapset.Set[string] {
	set := mapset.New[string]()
	if r == nil {
		return set
	}
	for _, row := range r.Layers.Terrain {
		for _, cell := range row {
			set.Put(cell)
		}
	}
	return set
}

// LegendEntry pairs a symbol with its colour.
type LegendEntry struct {
	Symbol string
	Color  color.RGBA
}

// Legend returns the symbols present in r with their colours, sorted by symbol.
func Legend(r *room.Room) []LegendEntry {
	set := Symbols(r)
	entries := make([]LegendEntry, 0, set.Size())
	set.Each(func(sym string) {
		entries = append(entries, LegendEntry{Symbol: sym, Color: ColorFor(sym)})
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Symbol < entries[j].Symbol })
	return entries
}
