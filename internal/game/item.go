package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// UnlimitedUses marks an item that never wears out.
const UnlimitedUses = -1

type ItemType int

const (
	ItemTypeGeneric ItemType = iota
	ItemTypeFood
	ItemTypeMedicine
	ItemTypeWeapon
	ItemTypeKey
	ItemTypeDocument
	ItemTypeTool
	ItemTypeArtifact
)

var itemTypeNames = map[ItemType]string{
	ItemTypeGeneric:  "generic",
	ItemTypeFood:     "food",
	ItemTypeMedicine: "medicine",
	ItemTypeWeapon:   "weapon",
	ItemTypeKey:      "key",
	ItemTypeDocument: "document",
	ItemTypeTool:     "tool",
	ItemTypeArtifact: "artifact",
}

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return "generic"
}

func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(text []byte) error {
	for typ, name := range itemTypeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown item type: %s", text)
}

// Item is a single object instance. Exactly one container holds it at a
// time, either a room or the player's pack; transfers are moves.
type Item struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Takeable    bool     `json:"takeable"`
	Type        ItemType `json:"type"`
	HealthBoost int      `json:"health_boost,omitempty"`

	// UsesRemaining counts down to exhaustion. UnlimitedUses means the item
	// never runs out; zero means it's spent.
	UsesRemaining int `json:"uses_remaining"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.UsesRemaining < UnlimitedUses {
		el.Add(fmt.Errorf("uses_remaining must be %d or greater", UnlimitedUses))
	}

	return el.Err()
}

// MatchName returns true if name matches this item's name (case-insensitive).
func (i *Item) MatchName(name string) bool {
	return strings.EqualFold(i.Name, name)
}

// Consumable reports whether using the item spends it for a health effect.
func (i *Item) Consumable() bool {
	return i.Type == ItemTypeFood || i.Type == ItemTypeMedicine
}

// Exhausted reports whether the item has no uses left.
func (i *Item) Exhausted() bool {
	return i.UsesRemaining == 0
}

// Spend consumes one use of a finite item.
func (i *Item) Spend() {
	if i.UsesRemaining > 0 {
		i.UsesRemaining--
	}
}

// Clone returns an independent copy, used when instantiating catalog
// definitions into the live world.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
