package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/driftline/castaway/internal/command"
	"github.com/driftline/castaway/internal/display"
	"github.com/driftline/castaway/internal/game"
	"github.com/driftline/castaway/internal/minigame"
	"github.com/driftline/castaway/internal/storage"
)

// Notifier is the fire-and-forget surface for external collaborators: a
// renderer and an audio manager. The engine never queries either.
type Notifier interface {
	Render(locationKey, narrative, title, status string)
	Audio(track string, loop bool, stopAfter time.Duration)
}

type noopNotifier struct{}

func (noopNotifier) Render(string, string, string, string) {}

func (noopNotifier) Audio(string, bool, time.Duration) {}

// Engine owns the chapter cursor and is the only writer of player and world
// state. Command processing is strictly synchronous: one call finishes,
// including any mini-game delegation, before the next is accepted.
type Engine struct {
	player   *game.Player
	world    *game.World
	chapters []*Chapter
	catalog  storage.Storer[*game.Item]

	cursor    int
	started   bool
	completed bool
	running   bool
	won       bool
	flags     game.EventFlags

	active    minigame.Game
	activeKey string

	log      []string
	notifier Notifier
	now      func() time.Time
	mgOpts   []minigame.Option
}

type Option func(*Engine)

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithClock injects the wall-clock source, which also feeds the timed
// mini-games.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMiniGameOptions adds construction options for embedded mini-games.
func WithMiniGameOptions(opts ...minigame.Option) Option {
	return func(e *Engine) {
		e.mgOpts = append(e.mgOpts, opts...)
	}
}

func New(player *game.Player, world *game.World, chapters []*Chapter, catalog storage.Storer[*game.Item], opts ...Option) *Engine {
	e := &Engine{
		player:   player,
		world:    world,
		chapters: chapters,
		catalog:  catalog,
		running:  true,
		notifier: noopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.mgOpts = append(e.mgOpts, minigame.WithClock(e.now))
	return e
}

// --- Accessors ---

func (e *Engine) Player() *game.Player { return e.player }

func (e *Engine) World() *game.World { return e.world }

func (e *Engine) Chapters() []*Chapter { return e.chapters }

func (e *Engine) Cursor() int { return e.cursor }

func (e *Engine) ChapterStarted() bool { return e.started }

func (e *Engine) ChapterCompleted() bool { return e.completed }

func (e *Engine) Running() bool { return e.running }

func (e *Engine) Won() bool { return e.won }

// Flags exposes the narrative event flags for snapshotting and restore.
func (e *Engine) Flags() *game.EventFlags { return &e.flags }

// MiniGameActive reports whether a chapter puzzle is currently live.
// Active mini-games are never persisted, so saving waits until this clears.
func (e *Engine) MiniGameActive() bool { return e.active != nil }

// Log returns the narrative event log appended so far this session.
func (e *Engine) Log() []string {
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

// RestoreProgress overwrites the progression state. Only the persistence
// layer should call this, against a freshly built engine.
func (e *Engine) RestoreProgress(cursor int, started, completed, running, won bool) {
	e.cursor = cursor
	e.started = started
	e.completed = completed
	e.running = running
	e.won = won
}

// --- Top-level dispatch ---

// HandleCommand runs one parsed command to completion and returns the text
// to show the player. Player-facing refusals come back as
// *command.UserError; state is untouched in those cases.
func (e *Engine) HandleCommand(cmd command.Command) (string, error) {
	if !e.running {
		return e.endText(), nil
	}

	var out string
	var err error
	if e.active != nil && e.routesToMiniGame(cmd) {
		out = e.handleMiniGameInput(cmd)
	} else {
		out, err = e.dispatch(cmd)
	}
	if err != nil {
		return "", err
	}

	if note := e.tickTimers(); note != "" {
		out = out + "\n\n" + note
	}
	if e.running && !e.player.Alive() {
		out = out + "\n\n" + e.loseGame()
	}
	return out, nil
}

func (e *Engine) dispatch(cmd command.Command) (string, error) {
	switch cmd.Action {
	case command.ActionAdvance:
		return e.StartNextChapter()
	case command.ActionAnswer:
		return e.AnswerChapter(cmd.Target)
	case command.ActionChoose:
		return e.ProcessChoice(cmd.Target)
	case command.ActionTake:
		return e.handleTake(cmd.Target)
	case command.ActionDrop:
		return e.handleDrop(cmd.Target)
	case command.ActionLook:
		return e.handleLook()
	case command.ActionConsume:
		return e.handleConsume(cmd.Target)
	case command.ActionActivate:
		return e.handleActivate(cmd.Target)
	case command.ActionUse:
		return e.handleUse(cmd.Target)
	case command.ActionInventory:
		return e.handleInventory()
	case command.ActionStatus:
		return e.handleStatus()
	case command.ActionHelp:
		return e.handleHelp()
	case command.ActionMap:
		return e.handleMap()
	case command.ActionSave, command.ActionLoad:
		// The session layer owns persistence; reaching here means there is none.
		return "", command.NewUserError("There is nowhere to keep a save right now.")
	default:
		return "", command.NewUserError(fmt.Sprintf("You don't know how to %q. Try 'help'.", cmd.Target))
	}
}

// routesToMiniGame decides which input an active puzzle captures. Status,
// help, and the pack remain reachable mid-game; everything else belongs to
// the puzzle.
func (e *Engine) routesToMiniGame(cmd command.Command) bool {
	switch cmd.Action {
	case command.ActionStatus, command.ActionHelp, command.ActionInventory,
		command.ActionSave, command.ActionLoad:
		return false
	}
	return true
}

// --- Chapter progression ---

// StartNextChapter advances the story cursor. It refuses while the current
// chapter is unanswered, and flips to the won terminal state once the
// cursor has passed the final chapter.
func (e *Engine) StartNextChapter() (string, error) {
	if e.started && !e.completed {
		msg := "The island is waiting on your answer. Deal with the current chapter before moving on."
		if e.active != nil {
			msg = "Finish the task in front of you first."
		}
		return "", command.NewUserError(msg)
	}

	if e.cursor >= len(e.chapters) {
		return e.winGame(), nil
	}

	ch := e.chapters[e.cursor]
	e.started = true
	e.completed = false

	var parts []string
	parts = append(parts, fmt.Sprintf("— Chapter %d: %s —", e.cursor+1, ch.Title))

	if move := e.relocate(ch.RoomKey); move != "" {
		parts = append(parts, move)
	}

	prompt, err := display.Expand(ch.Prompt, e.promptData())
	if err != nil {
		slog.Warn("expanding chapter prompt", "chapter", ch.Title, "error", err)
		prompt = ch.Prompt
	}
	parts = append(parts, prompt)

	if ch.HasChoices() {
		for _, letter := range []string{"a", "b", "c"} {
			if text, ok := ch.Choices[letter]; ok {
				parts = append(parts, fmt.Sprintf("  %s) %s", strings.ToUpper(letter), text))
			}
		}
	}

	if ch.MiniGame != "" {
		intro, err := e.startMiniGame(ch.MiniGame)
		if err != nil {
			return "", fmt.Errorf("starting mini-game %q: %w", ch.MiniGame, err)
		}
		parts = append(parts, intro)
	}

	e.logf("chapter %d started: %s", e.cursor, ch.Title)

	text := display.Paragraphs(parts...)
	e.notifier.Render(ch.RoomKey, text, ch.Title, e.statusSummary())
	if ch.Audio != "" {
		e.notifier.Audio(ch.Audio, ch.AudioLoop, 0)
	}

	return text, nil
}

// AnswerChapter checks an answer against the current chapter's acceptance
// rule. A wrong answer costs nothing but returns the chapter's hint.
func (e *Engine) AnswerChapter(answer string) (string, error) {
	if e.active != nil {
		return "", command.NewUserError("Finish the task in front of you first.")
	}
	if !e.started || e.cursor >= len(e.chapters) {
		return "", command.NewUserError("Nothing is being asked of you yet. Press enter to continue the story.")
	}
	if e.completed {
		return "", command.NewUserError("That chapter is behind you. Press enter to continue.")
	}

	ch := e.chapters[e.cursor]
	if ch.MiniGame != "" {
		return "", command.NewUserError("This chapter isn't answered with words. Try 'activate' to face it again.")
	}

	if !ch.Accepts(answer) {
		return ch.Hint, nil
	}

	return e.completeChapter(), nil
}

// ProcessChoice resolves a lettered choice by delegating to AnswerChapter
// after validating the chapter actually offers choices.
func (e *Engine) ProcessChoice(letter string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(letter))
	if !choiceLetters[normalized] {
		return "", command.NewUserError("Choose a, b or c.")
	}
	if !e.started || e.cursor >= len(e.chapters) {
		return "", command.NewUserError("Nothing is being asked of you yet. Press enter to continue the story.")
	}
	if !e.chapters[e.cursor].HasChoices() {
		return "", command.NewUserError("This chapter doesn't offer choices; answer in your own words.")
	}
	if _, ok := e.chapters[e.cursor].Choices[normalized]; !ok {
		return "", command.NewUserError(fmt.Sprintf("There is no choice %s here.", strings.ToUpper(normalized)))
	}
	return e.AnswerChapter(normalized)
}

// completeChapter marks the current chapter done, applies its scripted
// consequences, and advances the cursor, winning the game if the sequence
// is exhausted.
func (e *Engine) completeChapter() string {
	ch := e.chapters[e.cursor]
	e.completed = true

	var parts []string
	if ch.Outcome != "" {
		outcome, err := display.Expand(ch.Outcome, e.promptData())
		if err != nil {
			outcome = ch.Outcome
		}
		parts = append(parts, outcome)
	}

	parts = append(parts, e.applyEffect(ch.OnSuccess)...)

	e.logf("chapter %d completed: %s", e.cursor, ch.Title)
	e.cursor++

	if e.cursor >= len(e.chapters) {
		parts = append(parts, e.winGame())
	} else {
		parts = append(parts, "(Press enter to continue.)")
	}

	return display.Paragraphs(parts...)
}

func (e *Engine) winGame() string {
	e.won = true
	e.running = false
	e.logf("game won")
	text := fmt.Sprintf("After %d days, the island finally lets you go. You made it.", e.player.DaysOnIsland())
	e.notifier.Render(e.player.RoomKey(), text, "The End", e.statusSummary())
	return text
}

func (e *Engine) loseGame() string {
	e.running = false
	e.logf("player died")
	text := fmt.Sprintf("Your legs give out and the island goes quiet around you. Day %d was your last.", e.player.DaysOnIsland())
	e.notifier.Render(e.player.RoomKey(), text, "The End", e.statusSummary())
	return text
}

func (e *Engine) endText() string {
	if e.won {
		return "The story is over - you got off the island. Start a new game to play again."
	}
	return "The story has ended. Start a new game to try again."
}

// relocate moves the player for a chapter start and reports the passage,
// including the toll a dangerous place takes.
func (e *Engine) relocate(roomKey string) string {
	if roomKey == e.player.RoomKey() {
		return ""
	}

	room := e.world.Room(roomKey)
	if room == nil {
		slog.Warn("chapter references unknown room", "room", roomKey)
		return ""
	}

	e.player.MoveTo(roomKey)
	text := fmt.Sprintf("You make your way to %s. %s", room.Name, room.Description)
	if room.Dangerous {
		e.player.AdjustSanity(-5)
		text += "\n" + room.DangerDesc
	}
	return text
}

// --- Mini-game embedding ---

func (e *Engine) startMiniGame(key string) (string, error) {
	g, err := minigame.New(key, e.mgOpts...)
	if err != nil {
		return "", err
	}
	g.Reset()
	e.active = g
	e.activeKey = key

	intro := "This one isn't a question. Respond directly; your pack and status are still a word away."
	if buttons := g.Buttons(); len(buttons) > 0 {
		intro += fmt.Sprintf(" [%s]", strings.Join(buttons, " / "))
	}
	if cg, ok := g.(*minigame.ChaseGame); ok {
		intro = cg.Prompt() + "\n\n" + intro
	}
	if bg, ok := g.(*minigame.BearingGame); ok {
		intro = bg.Scene() + "\n\n" + intro
	}
	if cg, ok := g.(*minigame.CipherGame); ok {
		intro = fmt.Sprintf("First segment: %q", cg.CurrentSegment()) + "\n\n" + intro
	}
	return intro, nil
}

// handleMiniGameInput feeds one line to the active puzzle and resolves any
// terminal state it reaches. The engine applies consequences itself; the
// puzzle never touches player or world state.
func (e *Engine) handleMiniGameInput(cmd command.Command) string {
	input := strings.TrimSpace(cmd.Raw)
	if cmd.Action == command.ActionAnswer {
		input = cmd.Target
	}

	g := e.active
	out := ""
	if label, ok := matchButton(g.Buttons(), input); ok {
		out = g.HandleButton(label)
	} else {
		out = g.HandleText(input)
	}

	switch g.State() {
	case minigame.StateWon:
		out += "\n\n" + e.resolveMiniGameWin()
	case minigame.StateLost:
		out += "\n\n" + e.resolveMiniGameLoss()
	}
	return out
}

func (e *Engine) resolveMiniGameWin() string {
	if cg, ok := e.active.(*minigame.ChaseGame); ok && cg.Bonuses() > 0 {
		e.player.AdjustSanity(5 * cg.Bonuses())
	}
	e.discardMiniGame()
	return e.completeChapter()
}

func (e *Engine) resolveMiniGameLoss() string {
	ch := e.chapters[e.cursor]
	parts := e.applyEffect(ch.OnFailure)
	e.discardMiniGame()
	e.logf("chapter %d mini-game lost: %s", e.cursor, ch.Title)
	parts = append(parts, "When you're ready to face it again: 'activate'.")
	return strings.Join(parts, "\n")
}

// discardMiniGame drops the instance once it's terminal. A finished game is
// never revived; retrying builds a fresh one.
func (e *Engine) discardMiniGame() {
	e.active = nil
}

func matchButton(buttons []string, input string) (string, bool) {
	for _, b := range buttons {
		if strings.EqualFold(b, input) {
			return b, true
		}
	}
	return "", false
}

// --- Timers ---

// tickTimers advances the command-driven countdowns. Time on the island
// moves only when the player acts; nothing fires in the background.
func (e *Engine) tickTimers() string {
	var notes []string

	if e.flags.DynamiteActive {
		e.flags.DynamiteTimer--
		switch {
		case e.flags.DynamiteTimer <= 0:
			e.flags.DynamiteActive = false
			e.flags.DynamiteTimer = 0
			if e.player.Inventory().Find("dynamite") != nil {
				e.player.Inventory().Remove("dynamite")
				e.player.AdjustHealth(-25)
				notes = append(notes, "The dynamite goes off in your pack. Your ears ring and your side is wet.")
			} else {
				notes = append(notes, "A dull boom rolls across the island from where you left the dynamite.")
			}
			e.logf("dynamite detonated")
		case e.flags.DynamiteTimer <= 2:
			notes = append(notes, fmt.Sprintf("The fuse is nearly gone. (%d)", e.flags.DynamiteTimer))
		}
	}

	if e.flags.SmokeMonsterTimer > 0 {
		e.flags.SmokeMonsterTimer--
		if e.flags.SmokeMonsterTimer == 0 {
			e.player.AdjustSanity(-10)
			notes = append(notes, "That ticking roar again, close enough to feel. You don't sleep well after.")
			e.logf("smoke monster passed through")
		}
	}

	if e.flags.OthersTimer > 0 {
		e.flags.OthersTimer--
		if e.flags.OthersTimer == 0 {
			e.player.AdjustHealth(-10)
			notes = append(notes, "Whispers in the treeline, then a thrown rock out of nowhere. The Others know where you are.")
			e.logf("the others caught up")
		}
	}

	return strings.Join(notes, "\n")
}

// --- Effects ---

// applyEffect runs a scripted consequence descriptor and returns the
// player-visible notes it produced. Safe on nil.
func (e *Engine) applyEffect(ef *Effect) []string {
	if ef == nil {
		return nil
	}

	var notes []string

	if ef.GrantItem != "" {
		if def := e.catalog.Get(ef.GrantItem); def != nil {
			item := def.Clone()
			if err := e.player.Inventory().Add(item); err != nil {
				// Full pack: the item lands at the player's feet instead.
				if perr := e.world.PlaceItem(e.player.RoomKey(), item); perr == nil {
					notes = append(notes, fmt.Sprintf("You're handed %s, but your pack is full; it's left beside you.", item.Name))
				}
			} else {
				notes = append(notes, fmt.Sprintf("%s is yours now.", display.Capitalize(item.Name)))
				e.logf("granted item: %s", ef.GrantItem)
			}
		} else {
			slog.Warn("effect grants unknown item", "item", ef.GrantItem)
		}
	}

	if ef.Health != 0 {
		e.player.AdjustHealth(ef.Health)
		notes = append(notes, statDelta("health", ef.Health))
	}
	if ef.Sanity != 0 {
		e.player.AdjustSanity(ef.Sanity)
		notes = append(notes, statDelta("sanity", ef.Sanity))
	}

	if ef.AdvanceDay {
		e.player.AdvanceDay()
		notes = append(notes, fmt.Sprintf("Night passes. Day %d on the island.", e.player.DaysOnIsland()))
	}

	for _, flag := range ef.SetFlags {
		e.setFlag(flag)
	}

	for timer, ticks := range ef.Timers {
		switch timer {
		case TimerDynamite:
			e.flags.DynamiteActive = true
			e.flags.DynamiteTimer = ticks
			notes = append(notes, "The fuse is lit.")
		case TimerSmokeMonster:
			e.flags.SmokeMonsterTimer = ticks
		case TimerOthers:
			e.flags.OthersTimer = ticks
		}
	}

	if ef.Audio != "" {
		e.notifier.Audio(ef.Audio, ef.AudioLoop, 0)
	}

	return notes
}

func (e *Engine) setFlag(name string) {
	switch name {
	case FlagHatchOpened:
		e.flags.HatchOpened = true
	case FlagBlackRockExplored:
		e.flags.BlackRockExplored = true
	case FlagJacobMet:
		e.flags.JacobMet = true
	case FlagTempleBathed:
		e.flags.TempleBathed = true
	}
	e.logf("flag set: %s", name)
}

func statDelta(stat string, delta int) string {
	if delta > 0 {
		return fmt.Sprintf("(%s +%d)", stat, delta)
	}
	return fmt.Sprintf("(%s %d)", stat, delta)
}

// --- Shared formatting ---

type promptData struct {
	PlayerName string
	Day        int
	Health     int
	Sanity     int
}

func (e *Engine) promptData() promptData {
	return promptData{
		PlayerName: e.player.Name(),
		Day:        e.player.DaysOnIsland(),
		Health:     e.player.Health(),
		Sanity:     e.player.Sanity(),
	}
}

func (e *Engine) statusSummary() string {
	return fmt.Sprintf("Day %d | Health %d/%d | Sanity %d/%d",
		e.player.DaysOnIsland(), e.player.Health(), game.MaxHealth, e.player.Sanity(), game.MaxSanity)
}

func (e *Engine) logf(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}
