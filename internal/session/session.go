package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/driftline/castaway/internal/command"
	"github.com/driftline/castaway/internal/display"
	"github.com/driftline/castaway/internal/engine"
	"github.com/driftline/castaway/internal/messaging"
	"github.com/driftline/castaway/internal/persist"
)

const banner = `
  ==========================================
     C A S T A W A Y
     an island that doesn't want to be left
  ==========================================
`

var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 '-]{0,19}$`)

// Session drives one player's connection: the intro flow, then the command
// loop. All engine access is from this goroutine only.
type Session struct {
	id   string
	m    *Manager
	conn io.ReadWriter
	eng  *engine.Engine
}

func newSession(m *Manager, conn io.ReadWriter) *Session {
	return &Session{
		id:   uuid.NewString(),
		m:    m,
		conn: conn,
	}
}

func (s *Session) run(ctx context.Context) error {
	if err := s.writeLine(banner); err != nil {
		return err
	}

	name, err := prompt(s.conn, "What's your name, survivor? ",
		withValidator(func(input string) (bool, string) {
			if !namePattern.MatchString(strings.TrimSpace(input)) {
				return false, "A name, letters mostly, twenty characters at best.\n"
			}
			return true, ""
		}),
		withMaxTries(5),
	)
	if err != nil {
		return fmt.Errorf("reading player name: %w", err)
	}
	name = strings.TrimSpace(name)

	s.eng, err = s.m.BuildEngine(name, s.engineOptions()...)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	intro := fmt.Sprintf("Oceanic 815 broke apart around you, %s. The beach is littered with what's left.\n\nPress enter to begin. 'help' lists what you can do; 'load <slot>' picks up an old story.", name)
	if err := s.writeLine(display.Wrap(intro)); err != nil {
		return err
	}
	if err := s.writePrompt(); err != nil {
		return err
	}

	// Read input lines into a channel so shutdown can interrupt the loop.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			if quitting(line) {
				return s.writeLine("The island will keep your place. Goodbye.")
			}

			if err := s.handleLine(line); err != nil {
				return err
			}

			if err := s.writePrompt(); err != nil {
				return err
			}
		}
	}
}

func quitting(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "salir":
		return true
	}
	return false
}

func (s *Session) handleLine(line string) error {
	cmd := s.m.parser.Parse(line)

	var out string
	var err error
	switch cmd.Action {
	case command.ActionSave:
		out, err = s.handleSave(cmd.Target)
	case command.ActionLoad:
		out, err = s.handleLoad(cmd.Target)
	default:
		out, err = s.eng.HandleCommand(cmd)
	}

	if err != nil {
		var userErr *command.UserError
		if errors.As(err, &userErr) {
			return s.writeLine(userErr.Message)
		}
		slog.Error("handling command", "session", s.id, "error", err)
		return s.writeLine("Something on the island shifts wrong. Try that again.")
	}

	if out == "" {
		return nil
	}
	return s.writeLine(display.Wrap(out))
}

// handleSave persists the current state under a named slot. A live puzzle
// can't be snapshotted; the player finishes or walks away first.
func (s *Session) handleSave(slot string) (string, error) {
	if s.m.slots == nil {
		return "", command.NewUserError("There is nowhere to keep a save right now.")
	}
	if slot == "" {
		return s.slotList("Save where? 'save <slot>'."), nil
	}
	if s.eng.MiniGameActive() {
		return "", command.NewUserError("Not in the middle of this. See it through first.")
	}

	gs := persist.Extract(s.eng)

	title := ""
	if cur := s.eng.Cursor(); cur < len(s.eng.Chapters()) {
		title = s.eng.Chapters()[cur].Title
	}

	if err := s.m.slots.Save(slot, gs, title); err != nil {
		if errors.Is(err, persist.ErrBadSlotName) {
			return "", command.NewUserError("Slot names are letters, digits and dashes. Try 'save camp-1'.")
		}
		return "", fmt.Errorf("saving slot %q: %w", slot, err)
	}

	slog.Info("game saved", "session", s.id, "slot", slot)
	return fmt.Sprintf("Your story is kept under '%s'.", slot), nil
}

// handleLoad swaps the session's engine for one rebuilt from a snapshot.
// The old engine is discarded untouched if anything about the restore fails.
func (s *Session) handleLoad(slot string) (string, error) {
	if s.m.slots == nil {
		return "", command.NewUserError("There is nowhere to load a save from right now.")
	}
	if slot == "" {
		return s.slotList("Load what? 'load <slot>'."), nil
	}

	gs, err := s.m.slots.Load(slot)
	if err != nil {
		if errors.Is(err, persist.ErrSlotNotFound) {
			return "", command.NewUserError(fmt.Sprintf("No save called '%s'.", slot))
		}
		return "", fmt.Errorf("loading slot %q: %w", slot, err)
	}

	eng, err := persist.Restore(gs, func(playerName string) (*engine.Engine, error) {
		return s.m.BuildEngine(playerName, s.engineOptions()...)
	})
	if err != nil {
		return "", fmt.Errorf("restoring slot %q: %w", slot, err)
	}

	s.eng = eng
	slog.Info("game loaded", "session", s.id, "slot", slot)
	return fmt.Sprintf("You pick the story back up, %s. 'look' to get your bearings; enter to press on.", gs.PlayerName), nil
}

func (s *Session) slotList(usage string) string {
	slots := s.m.slots.Slots()
	if len(slots) == 0 {
		return usage + " No saves yet."
	}

	var b strings.Builder
	b.WriteString(usage + "\nSaves:\n")
	for _, info := range slots {
		fmt.Fprintf(&b, "  %s — %s, chapter %d (%s)\n", info.SlotName, info.PlayerName, info.Chapter+1, info.Timestamp.Format("Jan 2 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) engineOptions() []engine.Option {
	if s.m.nats == nil {
		return nil
	}
	return []engine.Option{engine.WithNotifier(messaging.NewSessionNotifier(s.m.nats, s.id))}
}

func (s *Session) writePrompt() error {
	player := s.eng.Player()
	p := fmt.Sprintf("[Day %d | H%d | S%d] > ", player.DaysOnIsland(), player.Health(), player.Sanity())
	_, err := s.conn.Write([]byte(p))
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n\n"))
	return err
}
