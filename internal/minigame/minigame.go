package minigame

import "fmt"

// State is a mini-game's lifecycle position. Pending games haven't been
// started; Won and Lost are terminal and further input never mutates.
type State int

const (
	StatePending State = iota
	StateInProgress
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInProgress:
		return "in progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game is over, either way.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Game is the uniform contract every embedded puzzle implements. All state
// transitions run through the two input methods; a game never reads engine
// state, and the engine applies any inventory or health consequences itself
// after observing a terminal state.
type Game interface {
	State() State
	HandleButton(label string) string
	HandleText(input string) string
	Reset()
	Buttons() []string
}

// Registered game keys, referenced by chapter definitions.
const (
	KeyMemory  = "memory"
	KeyBearing = "bearing"
	KeyChase   = "chase"
	KeyDial    = "dial"
	KeyCipher  = "cipher"
)

// New constructs the game registered under key.
func New(key string, opts ...Option) (Game, error) {
	switch key {
	case KeyMemory:
		return NewMemory(opts...), nil
	case KeyBearing:
		return NewBearing(opts...), nil
	case KeyChase:
		return NewChase(opts...), nil
	case KeyDial:
		return NewDial(opts...), nil
	case KeyCipher:
		return NewCipher(opts...), nil
	default:
		return nil, fmt.Errorf("unknown mini-game: %s", key)
	}
}

// Known reports whether key names a registered game.
func Known(key string) bool {
	switch key {
	case KeyMemory, KeyBearing, KeyChase, KeyDial, KeyCipher:
		return true
	}
	return false
}
