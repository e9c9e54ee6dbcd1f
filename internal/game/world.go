package game

import (
	"fmt"
	"sort"

	"github.com/driftline/castaway/internal/storage"
)

// World is the arena of rooms plus the live items sitting in them. Room
// definitions are static for the session lifetime; only the item lists
// change as the player takes and drops things.
type World struct {
	rooms map[string]*Room
	items map[string][]*Item
}

// NewWorld instantiates the world from the room and item stores. Every room
// exit must resolve to a known room and every placed item to a catalog
// definition; a world that half-loads is worse than one that fails loudly.
func NewWorld(rooms storage.Storer[*Room], catalog storage.Storer[*Item]) (*World, error) {
	w := &World{
		rooms: rooms.GetAll(),
		items: map[string][]*Item{},
	}

	for key, room := range w.rooms {
		for dir, dest := range room.Exits {
			if _, ok := w.rooms[dest]; !ok {
				return nil, fmt.Errorf("room %q exit %q: destination %q does not exist", key, dir, dest)
			}
		}

		for _, itemKey := range room.Items {
			def := catalog.Get(itemKey)
			if def == nil {
				return nil, fmt.Errorf("room %q: item %q not in catalog", key, itemKey)
			}
			w.items[key] = append(w.items[key], def.Clone())
		}
	}

	return w, nil
}

// Room returns the room for key, or nil.
func (w *World) Room(key string) *Room {
	return w.rooms[key]
}

// RoomKeys returns all room keys in stable order.
func (w *World) RoomKeys() []string {
	keys := make([]string, 0, len(w.rooms))
	for k := range w.rooms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RoomItems returns the items currently in a room. The slice is a copy.
func (w *World) RoomItems(key string) []*Item {
	items := w.items[key]
	out := make([]*Item, len(items))
	copy(out, items)
	return out
}

// TakeItem moves the first item matching name out of the room and returns
// it, or nil if the room doesn't hold it.
func (w *World) TakeItem(roomKey, name string) *Item {
	items := w.items[roomKey]
	for i, item := range items {
		if item.MatchName(name) {
			w.items[roomKey] = append(items[:i], items[i+1:]...)
			return item
		}
	}
	return nil
}

// PlaceItem puts an item into a room.
func (w *World) PlaceItem(roomKey string, item *Item) error {
	if _, ok := w.rooms[roomKey]; !ok {
		return ErrRoomNotFound
	}
	w.items[roomKey] = append(w.items[roomKey], item)
	return nil
}

// SetRoomItems replaces a room's item list wholesale. Used when restoring a
// snapshot.
func (w *World) SetRoomItems(roomKey string, items []*Item) error {
	if _, ok := w.rooms[roomKey]; !ok {
		return ErrRoomNotFound
	}
	w.items[roomKey] = items
	return nil
}

// ClearItems empties every room. A restore replaces the freshly built item
// placement with the snapshot's, so the defaults must go first.
func (w *World) ClearItems() {
	w.items = map[string][]*Item{}
}

// ItemsByRoom returns the item lists for every room that holds at least one
// item, keyed by room key.
func (w *World) ItemsByRoom() map[string][]*Item {
	out := map[string][]*Item{}
	for key, items := range w.items {
		if len(items) > 0 {
			cp := make([]*Item, len(items))
			copy(cp, items)
			out[key] = cp
		}
	}
	return out
}
