package minigame

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultChaseTimeout = 10 * time.Second
	chaseMaxErrors      = 3
)

type chaseOutcome int

const (
	chaseBad chaseOutcome = iota
	chaseSafe
	chaseRisky // pays off, but reads like a bad idea
)

type chaseOption struct {
	label   string
	outcome chaseOutcome
}

type chaseRound struct {
	prompt  string
	options []chaseOption
}

// Every option is pre-classified; the game just looks the label up.
var chaseRounds = []chaseRound{
	{
		prompt: "Trees snap somewhere behind you. The ticking roar is getting closer.",
		options: []chaseOption{
			{"freeze", chaseBad},
			{"sprint", chaseSafe},
			{"scream", chaseBad},
		},
	},
	{
		prompt: "The ground drops away ahead: a ravine with a single fallen trunk across it.",
		options: []chaseOption{
			{"cross", chaseSafe},
			{"climb down", chaseBad},
			{"jump", chaseRisky},
		},
	},
	{
		prompt: "Black smoke pours through the canopy to your left.",
		options: []chaseOption{
			{"veer right", chaseSafe},
			{"hold course", chaseBad},
			{"dive into brush", chaseRisky},
		},
	},
	{
		prompt: "A ring of banyan roots rises out of the mud like a cage.",
		options: []chaseOption{
			{"hide inside", chaseSafe},
			{"keep running", chaseBad},
			{"throw a rock", chaseBad},
		},
	},
	{
		prompt: "Light through the treeline - the beach. One last open stretch.",
		options: []chaseOption{
			{"run for it", chaseSafe},
			{"wait for dark", chaseBad},
			{"zigzag", chaseRisky},
		},
	},
}

// ChaseGame is the smoke-monster escape: five rounds of pre-classified
// choices under a per-round deadline. The deadline is judged lazily when
// the next input arrives, not by a timer; answer too late and the round
// scores as its worst outcome no matter what was pressed.
type ChaseGame struct {
	state      State
	now        func() time.Time
	timeout    time.Duration
	round      int
	errors     int
	bonuses    int
	roundStart time.Time
}

func NewChase(opts ...Option) *ChaseGame {
	cfg := buildConfig(opts)
	return &ChaseGame{
		state:   StatePending,
		now:     cfg.now,
		timeout: cfg.chaseTimeout,
	}
}

func (g *ChaseGame) State() State { return g.state }

// Buttons exposes the current round's choice labels.
func (g *ChaseGame) Buttons() []string {
	if g.state != StateInProgress {
		return nil
	}
	opts := chaseRounds[g.round].options
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.label
	}
	return labels
}

func (g *ChaseGame) Reset() {
	g.state = StateInProgress
	g.round = 0
	g.errors = 0
	g.bonuses = 0
	g.roundStart = g.now()
}

func (g *ChaseGame) HandleButton(label string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "Nothing is chasing you. Yet."
	}

	var choice *chaseOption
	for i := range chaseRounds[g.round].options {
		if strings.EqualFold(chaseRounds[g.round].options[i].label, label) {
			choice = &chaseRounds[g.round].options[i]
			break
		}
	}
	if choice == nil {
		return fmt.Sprintf("%q isn't an option. Choices: %s", label, strings.Join(g.Buttons(), ", "))
	}

	// Late input scores the round's worst outcome regardless of the button.
	outcome := choice.outcome
	if g.now().Sub(g.roundStart) > g.timeout {
		outcome = chaseBad
	}

	switch outcome {
	case chaseBad:
		g.errors++
		if g.errors >= chaseMaxErrors {
			g.state = StateLost
			return "It catches you in the open. " + g.terminalText()
		}
		return fmt.Sprintf("Wrong move - you barely scramble clear. (%d of %d close calls)\n%s",
			g.errors, chaseMaxErrors, g.nextRound())
	case chaseRisky:
		g.bonuses++
		return "Reckless, and it works; you've gained ground.\n" + g.nextRound()
	default:
		return "You keep your distance.\n" + g.nextRound()
	}
}

// HandleText treats free text as a button press, so typed labels work too.
func (g *ChaseGame) HandleText(input string) string {
	return g.HandleButton(strings.TrimSpace(input))
}

// nextRound advances the chase, restarting the round clock, and returns the
// next prompt or declares the win.
func (g *ChaseGame) nextRound() string {
	g.round++
	if g.round >= len(chaseRounds) {
		g.state = StateWon
		return g.terminalText()
	}
	g.roundStart = g.now()
	return fmt.Sprintf("%s [%s]", chaseRounds[g.round].prompt, strings.Join(g.Buttons(), " / "))
}

// Bonuses reports how many risky choices paid off, for the engine's reward.
func (g *ChaseGame) Bonuses() int { return g.bonuses }

func (g *ChaseGame) terminalText() string {
	switch g.state {
	case StateWon:
		return "The roar fades back into the jungle. The chase is over."
	case StateLost:
		return "Everything goes black. The chase is over."
	default:
		return ""
	}
}

// Prompt returns the current round's prompt, for the embedding chapter.
func (g *ChaseGame) Prompt() string {
	if g.state != StateInProgress {
		return g.terminalText()
	}
	return fmt.Sprintf("%s [%s]", chaseRounds[g.round].prompt, strings.Join(g.Buttons(), " / "))
}
