package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestInventoryAdd(t *testing.T) {
	inv := NewInventory(2)

	if err := inv.Add(&Item{Name: "Mango"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.Add(&Item{Name: "Rope"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := inv.Add(&Item{Name: "Knife"})
	if !errors.Is(err, ErrInventoryFull) {
		t.Errorf("expected ErrInventoryFull, got %v", err)
	}

	testutil.AssertEqual(t, "length", inv.Len(), 2)
	testutil.AssertEqual(t, "full", inv.Full(), true)
}

func TestInventoryFind(t *testing.T) {
	tests := map[string]struct {
		items   []string
		lookup  string
		expName string
	}{
		"exact match": {
			items:   []string{"Mango"},
			lookup:  "Mango",
			expName: "Mango",
		},
		"case insensitive": {
			items:   []string{"Water Bottle"},
			lookup:  "water bottle",
			expName: "Water Bottle",
		},
		"not carried": {
			items:  []string{"Mango"},
			lookup: "rope",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv := NewInventory(DefaultInventoryCapacity)
			for _, n := range tt.items {
				if err := inv.Add(&Item{Name: n}); err != nil {
					t.Fatalf("adding %s: %v", n, err)
				}
			}

			item := inv.Find(tt.lookup)
			if tt.expName == "" {
				if item != nil {
					t.Errorf("expected nil, got %v", item.Name)
				}
				return
			}
			if item == nil {
				t.Fatal("expected item, got nil")
			}
			testutil.AssertEqual(t, "name", item.Name, tt.expName)
		})
	}
}

func TestInventoryRemove(t *testing.T) {
	inv := NewInventory(DefaultInventoryCapacity)
	if err := inv.Add(&Item{Name: "Torch"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed := inv.Remove("TORCH")
	if removed == nil {
		t.Fatal("expected removed item")
	}
	testutil.AssertEqual(t, "name", removed.Name, "Torch")
	testutil.AssertEqual(t, "length", inv.Len(), 0)

	if inv.Remove("torch") != nil {
		t.Error("second remove should return nil")
	}
}

func TestInventoryItemsIsCopy(t *testing.T) {
	inv := NewInventory(DefaultInventoryCapacity)
	if err := inv.Add(&Item{Name: "Mango"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := inv.Items()
	items[0] = &Item{Name: "Imposter"}

	testutil.AssertEqual(t, "name", inv.Items()[0].Name, "Mango")
}
