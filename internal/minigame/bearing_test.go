package minigame

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBearingWinPath(t *testing.T) {
	g := NewBearing()
	g.Reset()

	for i, step := range bearingSteps {
		out := g.HandleText(step.direction)
		if i < len(bearingSteps)-1 {
			testutil.AssertEqual(t, "state", g.State(), StateInProgress)
			if !strings.Contains(out, "The trail continues") {
				t.Errorf("step %d: expected progress, got %q", i, out)
			}
		} else {
			testutil.AssertEqual(t, "state", g.State(), StateWon)
		}
	}
}

func TestBearingThreeMistakesLose(t *testing.T) {
	g := NewBearing()
	g.Reset()

	// First step wants north; south is always wrong here.
	g.HandleText("south")
	g.HandleText("south")
	testutil.AssertEqual(t, "state before third", g.State(), StateInProgress)

	out := g.HandleText("south")
	testutil.AssertEqual(t, "state", g.State(), StateLost)
	if !strings.Contains(out, "gone cold") {
		t.Errorf("expected loss text, got %q", out)
	}

	// Terminal state never mutates.
	g.HandleText("north")
	testutil.AssertEqual(t, "state after loss", g.State(), StateLost)
}

func TestBearingInvalidDirectionNoPenalty(t *testing.T) {
	g := NewBearing()
	g.Reset()

	out := g.HandleText("up")
	if !strings.Contains(out, "north, south, east or west") {
		t.Errorf("expected direction guidance, got %q", out)
	}
	testutil.AssertEqual(t, "mistakes", g.mistakes, 0)
	testutil.AssertEqual(t, "step", g.step, 0)
}

func TestBearingHints(t *testing.T) {
	g := NewBearing()
	g.Reset()

	compass := g.HandleButton("compass")
	if !strings.Contains(compass, bearingSteps[0].direction) {
		t.Errorf("compass should mention the true direction, got %q", compass)
	}
	if !strings.Contains(compass, bearingSteps[0].compass) {
		t.Errorf("compass should mention the decoy, got %q", compass)
	}

	tracks := g.HandleButton("tracks")
	testutil.AssertEqual(t, "tracks hint", tracks, bearingSteps[0].tracks)
}
