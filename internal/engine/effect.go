package engine

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Narrative event flags an effect may set, by asset name.
const (
	FlagHatchOpened       = "hatch-opened"
	FlagBlackRockExplored = "black-rock-explored"
	FlagJacobMet          = "jacob-met"
	FlagTempleBathed      = "temple-bathed"
)

// Timers an effect may arm, by asset name.
const (
	TimerDynamite     = "dynamite"
	TimerSmokeMonster = "smoke-monster"
	TimerOthers       = "others"
)

var knownFlags = map[string]bool{
	FlagHatchOpened:       true,
	FlagBlackRockExplored: true,
	FlagJacobMet:          true,
	FlagTempleBathed:      true,
}

var knownTimers = map[string]bool{
	TimerDynamite:     true,
	TimerSmokeMonster: true,
	TimerOthers:       true,
}

// Effect describes the scripted side effects of a chapter outcome. The
// engine is the only thing that applies one.
type Effect struct {
	// GrantItem names a catalog item to put in the player's pack.
	GrantItem string `json:"grant_item,omitempty"`

	Health int `json:"health,omitempty"`
	Sanity int `json:"sanity,omitempty"`

	AdvanceDay bool `json:"advance_day,omitempty"`

	SetFlags []string `json:"set_flags,omitempty"`

	// Timers maps a timer name to its countdown in commands.
	Timers map[string]int `json:"timers,omitempty"`

	// Audio cues a track when the effect fires.
	Audio     string `json:"audio,omitempty"`
	AudioLoop bool   `json:"audio_loop,omitempty"`
}

// Validate checks flag and timer names. Safe to call on a nil effect.
func (e *Effect) Validate() error {
	if e == nil {
		return nil
	}

	el := errors.NewErrorList()

	for _, f := range e.SetFlags {
		if !knownFlags[f] {
			el.Add(fmt.Errorf("unknown flag %q", f))
		}
	}
	for t, ticks := range e.Timers {
		if !knownTimers[t] {
			el.Add(fmt.Errorf("unknown timer %q", t))
		}
		if ticks <= 0 {
			el.Add(fmt.Errorf("timer %q must count down from a positive number", t))
		}
	}

	return el.Err()
}
