package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the column the narrative wraps at. Telnet and SSH clients
// both render 80 columns without horizontal scrolling.
const DefaultWidth = 80

// Wrap word-wraps text for the player's terminal. ANSI escape sequences
// survive the wrapping.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Paragraphs joins non-empty blocks with a blank line between them, the
// spacing every narrative screen uses.
func Paragraphs(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Capitalize uppercases the first character of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
