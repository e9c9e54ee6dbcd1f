package minigame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	dialMin          = 60.0
	dialMax          = 120.0
	dialStart        = 90.0
	dialStep         = 0.5
	dialTolerance    = 0.2
	dialMaxAttempts  = 20
	defaultDialSpan  = dialMax - dialMin
	dialTargetMargin = 5.0 // keep random targets away from the band edges
)

// DialGame is the shortwave radio puzzle: sweep a continuous frequency with
// the tuning knob or key one in directly, guided by how loud the static
// gets. The battery budget is finite; run it dry and the radio is dead.
type DialGame struct {
	state        State
	target       float64
	value        float64
	attemptsLeft int
}

func NewDial(opts ...Option) *DialGame {
	cfg := buildConfig(opts)
	g := &DialGame{state: StatePending}
	if cfg.dialTargetOk {
		g.target = cfg.dialTarget
	} else {
		// Derived from the seed so a pinned seed pins the station.
		span := defaultDialSpan - 2*dialTargetMargin
		offset := float64(cfg.seed%int64(span*2)) / 2.0
		if offset < 0 {
			offset = -offset
		}
		g.target = dialMin + dialTargetMargin + offset
	}
	return g
}

func (g *DialGame) State() State { return g.state }

func (g *DialGame) Buttons() []string { return []string{"up", "down"} }

func (g *DialGame) Reset() {
	g.state = StateInProgress
	g.value = dialStart
	g.attemptsLeft = dialMaxAttempts
}

func (g *DialGame) HandleButton(label string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The radio is switched off."
	}

	switch strings.ToLower(label) {
	case "up":
		g.value = math.Min(g.value+dialStep, dialMax)
	case "down":
		g.value = math.Max(g.value-dialStep, dialMin)
	default:
		return fmt.Sprintf("The radio has no %q control; just up, down, or a frequency.", label)
	}

	return g.tune()
}

func (g *DialGame) HandleText(input string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The radio is switched off."
	}

	freq, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return "Key in a frequency as a number, like 92.5, or work the dial up and down."
	}
	if freq < dialMin || freq > dialMax {
		return fmt.Sprintf("The dial only covers %.1f to %.1f.", dialMin, dialMax)
	}

	g.value = freq
	return g.tune()
}

// tune spends one attempt and reports how close the dial sits.
func (g *DialGame) tune() string {
	g.attemptsLeft--

	diff := math.Abs(g.value - g.target)
	if diff <= dialTolerance {
		g.state = StateWon
		return fmt.Sprintf("At %.1f the static parts and a voice comes through. %s", g.value, g.terminalText())
	}

	if g.attemptsLeft <= 0 {
		g.state = StateLost
		return "The battery light dies mid-sweep. " + g.terminalText()
	}

	var band string
	switch {
	case diff <= 1.0:
		band = "A voice surfaces in the static, almost readable."
	case diff <= 3.0:
		band = "The static thins; something rhythmic underneath."
	case diff <= 8.0:
		band = "Faint structure in the noise."
	default:
		band = "Wall of static."
	}

	return fmt.Sprintf("%.1f - %s (%d attempt(s) of battery left)", g.value, band, g.attemptsLeft)
}

func (g *DialGame) terminalText() string {
	switch g.state {
	case StateWon:
		return "The signal is locked in; the radio puzzle is done."
	case StateLost:
		return "The radio is dead."
	default:
		return ""
	}
}
