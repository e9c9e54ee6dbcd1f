package minigame

import (
	"fmt"
	"strings"
)

const bearingMaxMistakes = 3

type bearingStep struct {
	direction string
	scene     string
	compass   string // decoy direction the needle also swings toward
	tracks    string
}

var bearingSteps = []bearingStep{
	{
		direction: "north",
		scene:     "The trail out of camp splits in the wet grass.",
		compass:   "east",
		tracks:    "Boot prints sink deep on the uphill side, away from the sun.",
	},
	{
		direction: "east",
		scene:     "A creek cuts across the path. Both banks have been walked.",
		compass:   "north",
		tracks:    "Snapped ferns lean toward the sunrise.",
	},
	{
		direction: "north",
		scene:     "The canopy closes in and the light goes green and dim.",
		compass:   "west",
		tracks:    "A strip of torn shirt hangs on a branch on the high side of the slope.",
	},
	{
		direction: "west",
		scene:     "The trees break onto a ridge. The sound of surf is faint below.",
		compass:   "south",
		tracks:    "The prints turn toward the setting sun and quicken.",
	},
}

var bearingDirections = map[string]bool{
	"north": true,
	"south": true,
	"east":  true,
	"west":  true,
}

// BearingGame is the jungle-tracking puzzle: four fixed compass calls, each
// with two hint sources, and a trail that goes cold after three bad calls.
type BearingGame struct {
	state    State
	step     int
	mistakes int
}

func NewBearing(opts ...Option) *BearingGame {
	return &BearingGame{state: StatePending}
}

func (g *BearingGame) State() State { return g.state }

func (g *BearingGame) Buttons() []string { return []string{"compass", "tracks"} }

func (g *BearingGame) Reset() {
	g.state = StateInProgress
	g.step = 0
	g.mistakes = 0
}

func (g *BearingGame) HandleButton(label string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "You haven't picked up the trail yet."
	}

	step := bearingSteps[g.step]
	switch strings.ToLower(label) {
	case "compass":
		return fmt.Sprintf("The needle won't settle; it swings between %s and %s.", step.direction, step.compass)
	case "tracks":
		return step.tracks
	default:
		return fmt.Sprintf("There is no %q to consult out here.", label)
	}
}

func (g *BearingGame) HandleText(input string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "You haven't picked up the trail yet."
	}

	guess := strings.ToLower(strings.TrimSpace(input))
	if !bearingDirections[guess] {
		return "Call a compass direction: north, south, east or west."
	}

	step := bearingSteps[g.step]
	if guess != step.direction {
		g.mistakes++
		if g.mistakes >= bearingMaxMistakes {
			g.state = StateLost
			return "You double back one time too many. " + g.terminalText()
		}
		return fmt.Sprintf("The undergrowth closes out that way; you backtrack. (%d wrong turn(s), the trail dies at %d)",
			g.mistakes, bearingMaxMistakes)
	}

	g.step++
	if g.step >= len(bearingSteps) {
		g.state = StateWon
		return "The trail opens onto the clearing you were after. " + g.terminalText()
	}
	return "The trail continues. " + bearingSteps[g.step].scene
}

func (g *BearingGame) terminalText() string {
	switch g.state {
	case StateWon:
		return "The tracking is over; you found where the trail leads."
	case StateLost:
		return "The trail has gone cold for good."
	default:
		return ""
	}
}

// Scene returns the current step's description, for the embedding prompt.
func (g *BearingGame) Scene() string {
	if g.state != StateInProgress {
		return g.terminalText()
	}
	return bearingSteps[g.step].scene
}
