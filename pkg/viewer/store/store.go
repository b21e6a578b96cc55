// Package store keeps the decoded rooms of the current session.
package store

import "terrainview/pkg/viewer/room"

// Store maps room names to rooms. Re-inserting a name overwrites the room
// (last write wins) but keeps its original position in Names. Rooms are never
// removed.
//
// The store also carries a selection cursor. Insert moves the cursor to the
// inserted room, so the selected room is the latest one unless the user
// picked another with Select, Next or Prev.
type Store struct {
	rooms    map[string]*room.Room
	order    []string
	latest   string
	selected int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		rooms:    make(map[string]*room.Room),
		selected: -1,
	}
}

// Insert adds or replaces a room and selects it.
func (s *Store) Insert(name string, r *room.Room) {
	if _, exists := s.rooms[name]; !exists {
		s.order = append(s.order, name)
	}
	s.rooms[name] = r
	s.latest = name
	s.selected = s.indexOf(name)
}

// Get returns the room with the given name.
func (s *Store) Get(name string) (*room.Room, bool) {
	r, ok := s.rooms[name]
	return r, ok
}

// Latest returns the most recently inserted room and its name.
func (s *Store) Latest() (*room.Room, string, bool) {
	if len(s.order) == 0 {
		return nil, "", false
	}
	r, ok := s.rooms[s.latest]
	return r, s.latest, ok
}

// Len returns the number of rooms.
func (s *Store) Len() int {
	return len(s.order)
}

// Names returns room names in first-insertion order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Selected returns the room under the cursor.
func (s *Store) Selected() (*room.Room, string, bool) {
	if s.selected < 0 || s.selected >= len(s.order) {
		return nil, "", false
	}
	name := s.order[s.selected]
	return s.rooms[name], name, true
}

// Select moves the cursor to name. It reports false if no such room exists.
func (s *Store) Select(name string) bool {
	i := s.indexOf(name)
	if i < 0 {
		return false
	}
	s.selected = i
	return true
}

// Next moves the cursor forward with wrap-around and returns the new name.
func (s *Store) Next() (string, bool) {
	return s.step(1)
}

// Prev moves the cursor backward with wrap-around and returns the new name.
func (s *Store) Prev() (string, bool) {
	return s.step(-1)
}

func (s *Store) step(delta int) (string, bool) {
	n := len(s.order)
	if n == 0 {
		return "", false
	}
	s.selected = ((s.selected+delta)%n + n) % n
	return s.order[s.selected], true
}

func (s *Store) indexOf(name string) int {
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return -1
}
