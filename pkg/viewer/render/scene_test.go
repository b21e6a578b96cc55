package render

import (
	"testing"

	"terrainview/pkg/viewer/room"
)

func TestScene_RedrawIsIdempotent(t *testing.T) {
	r := &room.Room{Layers: room.Layers{Terrain: room.Terrain{{"#", "."}, {".", "&"}}}}
	s := NewScene()

	s.Draw("room1", r)
	s.Draw("room1", r)

	if s.Len() != 4 {
		t.Fatalf("Len() = %d after two draws, want 4", s.Len())
	}
	if s.Draws != 2 || s.Spawned != 8 || s.Despawned != 4 {
		t.Errorf("Draws/Spawned/Despawned = %d/%d/%d, want 2/8/4", s.Draws, s.Spawned, s.Despawned)
	}
	if s.Room() != "room1" {
		t.Errorf("Room() = %q", s.Room())
	}
}

func TestScene_ReplaceWithSmallerRoom(t *testing.T) {
	big := &room.Room{Layers: room.Layers{Terrain: room.Terrain{{"#", "#", "#"}, {"#", "#", "#"}}}}
	small := &room.Room{Layers: room.Layers{Terrain: room.Terrain{{"."}}}}
	s := NewScene()
	s.Draw("big", big)
	s.Draw("small", small)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, ok := s.TileAt(2, 1); ok {
		t.Error("tile from the previous room is still live")
	}
	tile, ok := s.TileAt(0, 0)
	if !ok || tile.Symbol != "." {
		t.Errorf("TileAt(0,0) = %+v,%v", tile, ok)
	}
}

func TestScene_Clear(t *testing.T) {
	s := NewScene()
	s.Draw("a", &room.Room{Layers: room.Layers{Terrain: room.Terrain{{"#"}}}})
	s.Clear()
	if s.Len() != 0 || s.Room() != "" {
		t.Errorf("after Clear Len=%d Room=%q", s.Len(), s.Room())
	}
}

func TestGridAt(t *testing.T) {
	cases := []struct {
		x, y     float64
		col, row int
	}{
		{-OriginX, -OriginY, 0, 0},
		{-OriginX + 3.9, -OriginY - 3.9, 0, 0},
		{-OriginX + 4, -OriginY, 1, 0},
		{-OriginX + 8, -OriginY + 8, 1, 1},
		{-OriginX - 5, -OriginY, -1, 0},
	}
	for _, tc := range cases {
		col, row := GridAt(tc.x, tc.y)
		if col != tc.col || row != tc.row {
			t.Errorf("GridAt(%v,%v) = (%d,%d), want (%d,%d)", tc.x, tc.y, col, row, tc.col, tc.row)
		}
	}
}

func TestScene_TileAtWorld(t *testing.T) {
	s := NewScene()
	s.Draw("a", &room.Room{Layers: room.Layers{Terrain: room.Terrain{{"#", "&"}}}})
	tile, ok := s.TileAtWorld(-OriginX+TileSize, -OriginY)
	if !ok || tile.Symbol != "&" {
		t.Errorf("TileAtWorld = %+v,%v, want &", tile, ok)
	}
}
