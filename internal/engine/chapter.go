package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"

	"github.com/driftline/castaway/internal/minigame"
	"github.com/driftline/castaway/internal/storage"
)

// Chapter is one narrative beat: a prompt, an acceptance rule, and the
// scripted consequences of getting past it. Chapters are immutable value
// objects loaded once at startup and addressed by their position in the
// ordered sequence.
type Chapter struct {
	// Sequence orders chapters; it must be contiguous from zero.
	Sequence int    `json:"sequence"`
	Title    string `json:"title"`

	// Prompt may use template markers ({{ .PlayerName }}, {{ .Day }}).
	Prompt string `json:"prompt"`

	// Choices maps letters a/b/c to choice text. Empty means free-text only.
	Choices map[string]string `json:"choices,omitempty"`

	// Answers are the lowercase accepted tokens. Input matches when it
	// equals or contains one of them.
	Answers []string `json:"answers"`

	Hint    string `json:"hint"`
	Outcome string `json:"outcome,omitempty"` // shown when the chapter is beaten

	// RoomKey is where this chapter takes place; starting the chapter
	// relocates the player there.
	RoomKey string `json:"room"`

	// MiniGame optionally gates the chapter with an embedded puzzle.
	MiniGame string `json:"mini_game,omitempty"`

	// Audio names a track to cue when the chapter starts. Fire-and-forget.
	Audio     string `json:"audio,omitempty"`
	AudioLoop bool   `json:"audio_loop,omitempty"`

	OnSuccess *Effect `json:"on_success,omitempty"`
	OnFailure *Effect `json:"on_failure,omitempty"` // applied when the mini-game is lost
}

var choiceLetters = map[string]bool{"a": true, "b": true, "c": true}

// Validate satisfies storage.ValidatingSpec.
func (c *Chapter) Validate() error {
	el := errors.NewErrorList()

	if c.Title == "" {
		el.Add(fmt.Errorf("chapter title is required"))
	}
	if c.Prompt == "" {
		el.Add(fmt.Errorf("chapter prompt is required"))
	}
	if c.RoomKey == "" {
		el.Add(fmt.Errorf("chapter room is required"))
	}

	if len(c.Answers) == 0 && c.MiniGame == "" {
		el.Add(fmt.Errorf("chapter needs accepted answers or a mini-game"))
	}
	for _, a := range c.Answers {
		if a != strings.ToLower(a) {
			el.Add(fmt.Errorf("accepted answer %q must be lowercase", a))
		}
	}

	if len(c.Choices) > 3 {
		el.Add(fmt.Errorf("at most three choices are allowed"))
	}
	for letter := range c.Choices {
		if !choiceLetters[letter] {
			el.Add(fmt.Errorf("choice label %q must be a, b or c", letter))
		}
	}

	if c.MiniGame != "" && !minigame.Known(c.MiniGame) {
		el.Add(fmt.Errorf("unknown mini-game %q", c.MiniGame))
	}

	el.Add(c.OnSuccess.Validate())
	el.Add(c.OnFailure.Validate())

	return el.Err()
}

// HasChoices reports whether the chapter offers lettered choices.
func (c *Chapter) HasChoices() bool {
	return len(c.Choices) > 0
}

// Accepts applies the acceptance rule: the normalized input is correct when
// it equals or contains one of the accepted tokens. Containment lets verbose
// answers through, so answer sets must be chosen with that in mind.
func (c *Chapter) Accepts(input string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return false
	}
	for _, token := range c.Answers {
		if normalized == token || strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}

// ChaptersFromStore pulls every chapter out of the store and orders them by
// sequence number, rejecting gaps and duplicates so the cursor can be a
// plain index.
func ChaptersFromStore(st storage.Storer[*Chapter]) ([]*Chapter, error) {
	all := st.GetAll()
	if len(all) == 0 {
		return nil, fmt.Errorf("no chapters found")
	}

	chapters := make([]*Chapter, 0, len(all))
	for _, ch := range all {
		chapters = append(chapters, ch)
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].Sequence < chapters[j].Sequence
	})

	for i, ch := range chapters {
		if ch.Sequence != i {
			return nil, fmt.Errorf("chapter sequence broken at %d: got %d (%s)", i, ch.Sequence, ch.Title)
		}
	}

	return chapters, nil
}
