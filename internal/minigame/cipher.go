package minigame

import (
	"fmt"
	"strings"
)

const cipherHintThreshold = 3

type cipherSegment struct {
	encoded string
	answer  string
	hint    string
}

// The scrawled transcript of the looping distress broadcast, one shifted
// word per line. Each letter is moved one forward in the alphabet.
var cipherSegments = []cipherSegment{
	{"ju", "it", "Two letters. The shortest word on the page."},
	{"ljmmfe", "killed", "Something terrible happened to the ones who sent this."},
	{"uifn", "them", "Who did it happen to?"},
	{"bmm", "all", "Every last one."},
}

// CipherGame is the transcript-decoding puzzle: an ordered list of encoded
// segments, each checked against an exact lowercase answer. Struggling on a
// segment for three wrong tries unlocks its hint. There is no losing; the
// page waits as long as it takes.
type CipherGame struct {
	state   State
	segment int
	wrong   int // wrong attempts on the current segment
}

func NewCipher(opts ...Option) *CipherGame {
	return &CipherGame{state: StatePending}
}

func (g *CipherGame) State() State { return g.state }

func (g *CipherGame) Buttons() []string { return []string{"hint"} }

func (g *CipherGame) Reset() {
	g.state = StateInProgress
	g.segment = 0
	g.wrong = 0
}

func (g *CipherGame) HandleButton(label string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The transcript is folded away."
	}

	if !strings.EqualFold(label, "hint") {
		return fmt.Sprintf("There's no %q here, just the transcript and your pencil.", label)
	}

	if g.wrong < cipherHintThreshold {
		return "Stare at it longer first. The hint comes when you've earned it."
	}
	return "Hint: " + cipherSegments[g.segment].hint
}

func (g *CipherGame) HandleText(input string) string {
	if g.state.Terminal() {
		return g.terminalText()
	}
	if g.state == StatePending {
		return "The transcript is folded away."
	}

	guess := strings.ToLower(strings.TrimSpace(input))
	if guess == "" {
		return "Write your reading of the segment, one word."
	}

	seg := cipherSegments[g.segment]
	if guess != seg.answer {
		g.wrong++
		if g.wrong == cipherHintThreshold {
			return "Still wrong. The scribbled margin note might help now - ask for the hint."
		}
		return fmt.Sprintf("That doesn't fit %q.", seg.encoded)
	}

	g.segment++
	g.wrong = 0
	if g.segment >= len(cipherSegments) {
		g.state = StateWon
		return "The last word falls into place. " + g.terminalText()
	}
	return fmt.Sprintf("Yes - %q reads %q. Next segment: %q", seg.encoded, seg.answer, cipherSegments[g.segment].encoded)
}

// CurrentSegment returns the encoded text being worked on, for the
// embedding prompt.
func (g *CipherGame) CurrentSegment() string {
	if g.state != StateInProgress {
		return g.terminalText()
	}
	return cipherSegments[g.segment].encoded
}

func (g *CipherGame) terminalText() string {
	return "The transcript is decoded; the message reads: it killed them all."
}
