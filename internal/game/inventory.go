package game

// DefaultInventoryCapacity is the pack size a new player starts with.
const DefaultInventoryCapacity = 10

// Inventory holds the items a player carries, in pickup order, up to a
// fixed capacity.
type Inventory struct {
	items    []*Item
	capacity int
}

// NewInventory creates an empty inventory. A capacity of zero or less uses
// the default.
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultInventoryCapacity
	}
	return &Inventory{
		items:    []*Item{},
		capacity: capacity,
	}
}

// Add appends an item. Returns ErrInventoryFull without mutating contents
// when the pack is at capacity.
func (inv *Inventory) Add(item *Item) error {
	if len(inv.items) >= inv.capacity {
		return ErrInventoryFull
	}
	inv.items = append(inv.items, item)
	return nil
}

// Remove takes the first item matching name out of the inventory.
// Returns nil if no item matches.
func (inv *Inventory) Remove(name string) *Item {
	for i, item := range inv.items {
		if item.MatchName(name) {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return item
		}
	}
	return nil
}

// Find returns the first item matching name without removing it, or nil.
func (inv *Inventory) Find(name string) *Item {
	for _, item := range inv.items {
		if item.MatchName(name) {
			return item
		}
	}
	return nil
}

// Items returns the carried items in order. The slice is a copy; the items
// are not.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

func (inv *Inventory) Capacity() int {
	return inv.capacity
}

func (inv *Inventory) Full() bool {
	return len(inv.items) >= inv.capacity
}
