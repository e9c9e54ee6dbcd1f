package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAdjustHealth(t *testing.T) {
	tests := map[string]struct {
		start     int
		delta     int
		expResult int
	}{
		"simple damage":     {start: 100, delta: -30, expResult: 70},
		"simple heal":       {start: 50, delta: 25, expResult: 75},
		"clamped at max":    {start: 95, delta: 20, expResult: 100},
		"clamped at zero":   {start: 10, delta: -50, expResult: 0},
		"zero delta":        {start: 60, delta: 0, expResult: 60},
		"heal from nothing": {start: 0, delta: 10, expResult: 10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer("Hugo", 0)
			p.SetHealth(tt.start)
			got := p.AdjustHealth(tt.delta)
			testutil.AssertEqual(t, "result", got, tt.expResult)
			testutil.AssertEqual(t, "health", p.Health(), tt.expResult)
		})
	}
}

func TestAdjustSanity(t *testing.T) {
	p := NewPlayer("Hugo", 0)

	p.AdjustSanity(-40)
	testutil.AssertEqual(t, "sanity", p.Sanity(), 60)

	p.AdjustSanity(-100)
	testutil.AssertEqual(t, "sanity floor", p.Sanity(), 0)

	p.AdjustSanity(200)
	testutil.AssertEqual(t, "sanity ceiling", p.Sanity(), MaxSanity)
}

func TestAlive(t *testing.T) {
	p := NewPlayer("Hugo", 0)
	testutil.AssertEqual(t, "alive at start", p.Alive(), true)

	p.SetHealth(0)
	testutil.AssertEqual(t, "dead at zero", p.Alive(), false)
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("Kate", 0)

	testutil.AssertEqual(t, "name", p.Name(), "Kate")
	testutil.AssertEqual(t, "health", p.Health(), MaxHealth)
	testutil.AssertEqual(t, "sanity", p.Sanity(), MaxSanity)
	testutil.AssertEqual(t, "day one", p.DaysOnIsland(), 1)
	testutil.AssertEqual(t, "capacity", p.Inventory().Capacity(), DefaultInventoryCapacity)

	p.AdvanceDay()
	testutil.AssertEqual(t, "day two", p.DaysOnIsland(), 2)
}

func TestSetDaysOnIslandFloor(t *testing.T) {
	p := NewPlayer("Kate", 0)
	p.SetDaysOnIsland(0)
	testutil.AssertEqual(t, "floored", p.DaysOnIsland(), 1)

	p.SetDaysOnIsland(14)
	testutil.AssertEqual(t, "set", p.DaysOnIsland(), 14)
}
