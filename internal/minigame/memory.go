package minigame

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

const (
	memoryRounds          = 4
	memoryRevealsPerRound = 2
)

// The console only ever flashes these six numbers.
var memoryDigits = []int{4, 8, 15, 16, 23, 42}

// MemoryGame is the station-console pattern puzzle: four rounds of watching
// a number sequence flash and typing it back, lengths two through five.
// There is no losing path; a wrong answer just scraps the round's pattern
// and deals a new one.
type MemoryGame struct {
	state       State
	rng         *rand.Rand
	round       int // 1-based
	sequence    []int
	revealsLeft int
}

func NewMemory(opts ...Option) *MemoryGame {
	cfg := buildConfig(opts)
	return &MemoryGame{
		state: StatePending,
		rng:   rand.New(rand.NewSource(cfg.seed)),
	}
}

func (g *MemoryGame) State() State { return g.state }

func (g *MemoryGame) Buttons() []string { return []string{"show"} }

func (g *MemoryGame) Reset() {
	g.state = StateInProgress
	g.round = 1
	g.dealRound()
}

func (g *MemoryGame) HandleButton(label string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The console is dark. Step up to it first."
	}

	if !strings.EqualFold(label, "show") {
		return fmt.Sprintf("There is no %q control on this console.", label)
	}

	if g.revealsLeft <= 0 {
		return "The console stays dark. No more replays this round; type the pattern from memory."
	}
	g.revealsLeft--
	return fmt.Sprintf("The lights flash again: %s  (%d replay(s) left)", g.sequenceText(), g.revealsLeft)
}

func (g *MemoryGame) HandleText(input string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The console is dark. Step up to it first."
	}

	guess, err := parseNumbers(input)
	if err != nil {
		return "Enter the pattern as numbers separated by spaces, like: 4 8 15"
	}

	if !equalInts(guess, g.sequence) {
		g.dealRound()
		return fmt.Sprintf("The console buzzes and wipes the pattern. A new one flashes for round %d: %s",
			g.round, g.sequenceText())
	}

	g.round++
	if g.round > memoryRounds {
		g.state = StateWon
		return "The console chimes and the blast door unlocks. " + g.terminalText()
	}

	g.dealRound()
	return fmt.Sprintf("Correct. Round %d, watch closely: %s", g.round, g.sequenceText())
}

// dealRound draws a fresh sequence for the current round and restores the
// reveal budget. Round r shows r+1 numbers.
func (g *MemoryGame) dealRound() {
	length := g.round + 1
	g.sequence = make([]int, length)
	for i := range g.sequence {
		g.sequence[i] = memoryDigits[g.rng.Intn(len(memoryDigits))]
	}
	g.revealsLeft = memoryRevealsPerRound
}

func (g *MemoryGame) sequenceText() string {
	parts := make([]string, len(g.sequence))
	for i, n := range g.sequence {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

func (g *MemoryGame) terminalText() string {
	return "The pattern puzzle is done; the console shows a steady green light."
}

func parseNumbers(input string) ([]int, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("not a number: %s", f)
		}
		out[i] = n
	}
	return out, nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
