package minigame

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDialDirectEntryWins(t *testing.T) {
	tests := map[string]struct {
		target   float64
		entry    string
		expState State
	}{
		"exact frequency":       {target: 92.5, entry: "92.5", expState: StateWon},
		"inside tolerance":      {target: 92.5, entry: "92.4", expState: StateWon},
		"just outside":          {target: 92.5, entry: "92.0", expState: StateInProgress},
		"far off":               {target: 92.5, entry: "115", expState: StateInProgress},
		"other end of the dial": {target: 61.0, entry: "61.1", expState: StateWon},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewDial(WithDialTarget(tt.target))
			g.Reset()

			g.HandleText(tt.entry)
			testutil.AssertEqual(t, "state", g.State(), tt.expState)
		})
	}
}

func TestDialKnobSweep(t *testing.T) {
	g := NewDial(WithDialTarget(91.0))
	g.Reset()

	// Start is 90.0; two steps up land on target.
	g.HandleButton("up")
	testutil.AssertEqual(t, "state mid-sweep", g.State(), StateInProgress)

	out := g.HandleButton("up")
	testutil.AssertEqual(t, "state", g.State(), StateWon)
	if !strings.Contains(out, "voice comes through") {
		t.Errorf("expected win text, got %q", out)
	}
}

func TestDialBatteryRunsOut(t *testing.T) {
	g := NewDial(WithDialTarget(119.0))
	g.Reset()

	for i := 0; i < dialMaxAttempts-1; i++ {
		g.HandleText("60")
		testutil.AssertEqual(t, "state", g.State(), StateInProgress)
	}

	out := g.HandleText("60")
	testutil.AssertEqual(t, "state", g.State(), StateLost)
	if !strings.Contains(out, "battery") {
		t.Errorf("expected battery death, got %q", out)
	}

	// Terminal state never mutates, even on the right frequency.
	g.HandleText("119.0")
	testutil.AssertEqual(t, "state after loss", g.State(), StateLost)
}

func TestDialRangeAndGarbageCostNothing(t *testing.T) {
	g := NewDial(WithDialTarget(92.5))
	g.Reset()

	g.HandleText("200")
	g.HandleText("static please")
	g.HandleButton("sideways")

	testutil.AssertEqual(t, "attempts", g.attemptsLeft, dialMaxAttempts)
}

func TestDialProximityBands(t *testing.T) {
	g := NewDial(WithDialTarget(92.5))
	g.Reset()

	out := g.HandleText("92.0")
	if !strings.Contains(out, "almost readable") {
		t.Errorf("expected near band, got %q", out)
	}

	out = g.HandleText("95.0")
	if !strings.Contains(out, "static thins") {
		t.Errorf("expected mid band, got %q", out)
	}

	out = g.HandleText("110.0")
	if !strings.Contains(out, "Wall of static") {
		t.Errorf("expected far band, got %q", out)
	}
}
