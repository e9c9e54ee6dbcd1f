package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/driftline/castaway/internal/command"
	"github.com/driftline/castaway/internal/game"
	"github.com/driftline/castaway/internal/minigame"
)

func testRooms() *mockStore[*game.Room] {
	return &mockStore[*game.Room]{recs: map[string]*game.Room{
		"beach": {
			Name:        "The Beach",
			Description: "Sand and wreckage.",
			Exits:       map[string]string{"north": "jungle"},
			Items:       []string{"mango"},
		},
		"jungle": {
			Name:        "The Jungle",
			Description: "Green and close.",
			Exits:       map[string]string{"south": "beach"},
			Dangerous:   true,
			DangerDesc:  "Something moves out there.",
		},
	}}
}

func testCatalog() *mockStore[*game.Item] {
	return &mockStore[*game.Item]{recs: map[string]*game.Item{
		"mango":    {Name: "Mango", Description: "Sweet.", Takeable: true, Type: game.ItemTypeFood, HealthBoost: 5, UsesRemaining: 1},
		"dynamite": {Name: "Dynamite", Description: "Short fuse.", Takeable: true, Type: game.ItemTypeWeapon, UsesRemaining: 1},
		"compass":  {Name: "Compass", Description: "Points off true.", Takeable: true, Type: game.ItemTypeTool, UsesRemaining: game.UnlimitedUses},
		"boulder":  {Name: "Boulder", Description: "Immense.", Takeable: false, Type: game.ItemTypeGeneric, UsesRemaining: game.UnlimitedUses},
	}}
}

// newTestEngine wires an engine over in-memory stores with the player on the
// beach.
func newTestEngine(t *testing.T, chapters []*Chapter) *Engine {
	t.Helper()

	catalog := testCatalog()
	world, err := game.NewWorld(testRooms(), catalog)
	if err != nil {
		t.Fatalf("building world: %v", err)
	}

	player := game.NewPlayer("Hugo", 3)
	player.MoveTo("beach")

	return New(player, world, chapters, catalog)
}

func answerCmd(text string) command.Command {
	return command.Command{Action: command.ActionAnswer, Target: text, Raw: "answer " + text}
}

var advanceCmd = command.Command{Action: command.ActionAdvance}

func TestChapterProgression(t *testing.T) {
	chapters := []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "First question?", RoomKey: "beach", Answers: []string{"yes"}, Hint: "Try agreeing."},
		{Sequence: 1, Title: "Two", Prompt: "Second question?", RoomKey: "beach", Answers: []string{"done"}},
	}
	e := newTestEngine(t, chapters)

	out, err := e.HandleCommand(advanceCmd)
	if err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	if !strings.Contains(out, "Chapter 1: One") {
		t.Errorf("expected chapter header, got %q", out)
	}

	// Advancing again while unanswered is refused.
	_, err = e.HandleCommand(advanceCmd)
	var userErr *command.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError, got %v", err)
	}

	// A wrong answer returns the hint and costs nothing.
	out, err = e.HandleCommand(answerCmd("no"))
	if err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if !strings.Contains(out, "Try agreeing.") {
		t.Errorf("expected hint, got %q", out)
	}
	testutil.AssertEqual(t, "cursor after wrong answer", e.Cursor(), 0)

	// The right answer completes the chapter and moves the cursor.
	out, err = e.HandleCommand(answerCmd("yes"))
	if err != nil {
		t.Fatalf("right answer: %v", err)
	}
	if !strings.Contains(out, "Press enter to continue") {
		t.Errorf("expected continue nudge, got %q", out)
	}
	testutil.AssertEqual(t, "cursor", e.Cursor(), 1)
	testutil.AssertEqual(t, "completed", e.ChapterCompleted(), true)
}

func TestAnswerBeforeStart(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})

	_, err := e.HandleCommand(answerCmd("yes"))
	var userErr *command.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError, got %v", err)
	}
}

func TestChoiceChapter(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{
			Sequence: 0, Title: "Fork", Prompt: "Which way?", RoomKey: "beach",
			Choices: map[string]string{"a": "left", "b": "right"},
			Answers: []string{"b"},
			Hint:    "Not left.",
		},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}

	// A letter the chapter doesn't offer is refused outright.
	_, err := e.HandleCommand(command.Command{Action: command.ActionChoose, Target: "c"})
	var userErr *command.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError for missing choice, got %v", err)
	}

	// A wrong offered choice returns the hint.
	out, err := e.HandleCommand(command.Command{Action: command.ActionChoose, Target: "a"})
	if err != nil {
		t.Fatalf("wrong choice: %v", err)
	}
	if !strings.Contains(out, "Not left.") {
		t.Errorf("expected hint, got %q", out)
	}

	// The right choice completes.
	if _, err := e.HandleCommand(command.Command{Action: command.ActionChoose, Target: "b"}); err != nil {
		t.Fatalf("right choice: %v", err)
	}
	testutil.AssertEqual(t, "completed", e.ChapterCompleted(), true)
}

func TestWinAndTerminalFinality(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "Only", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	out, err := e.HandleCommand(answerCmd("yes"))
	if err != nil {
		t.Fatalf("answering: %v", err)
	}
	if !strings.Contains(out, "You made it") {
		t.Errorf("expected win text, got %q", out)
	}
	testutil.AssertEqual(t, "won", e.Won(), true)
	testutil.AssertEqual(t, "running", e.Running(), false)

	// Every command after the end just restates it.
	out, err = e.HandleCommand(answerCmd("yes"))
	if err != nil {
		t.Fatalf("post-game command: %v", err)
	}
	if !strings.Contains(out, "story is over") {
		t.Errorf("expected end text, got %q", out)
	}
	out, _ = e.HandleCommand(command.Command{Action: command.ActionLook})
	if !strings.Contains(out, "story is over") {
		t.Errorf("expected end text for look too, got %q", out)
	}
}

func TestDeathEndsGame(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}, OnSuccess: &Effect{Health: -100}},
		{Sequence: 1, Title: "Two", Prompt: "Q?", RoomKey: "beach", Answers: []string{"x"}},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	out, err := e.HandleCommand(answerCmd("yes"))
	if err != nil {
		t.Fatalf("answering: %v", err)
	}
	if !strings.Contains(out, "was your last") {
		t.Errorf("expected death text, got %q", out)
	}
	testutil.AssertEqual(t, "running", e.Running(), false)
	testutil.AssertEqual(t, "won", e.Won(), false)

	out, err = e.HandleCommand(command.Command{Action: command.ActionLook})
	if err != nil {
		t.Fatalf("post-death command: %v", err)
	}
	if !strings.Contains(out, "story has ended") {
		t.Errorf("expected end text, got %q", out)
	}
}

func TestCompletionEffects(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{
			Sequence: 0, Title: "Gift", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"},
			OnSuccess: &Effect{
				GrantItem:  "compass",
				Health:     -10,
				Sanity:     5,
				AdvanceDay: true,
				SetFlags:   []string{FlagJacobMet},
			},
		},
		{Sequence: 1, Title: "Next", Prompt: "Q?", RoomKey: "beach", Answers: []string{"x"}},
	})

	e.Player().AdjustSanity(-20)

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	if _, err := e.HandleCommand(answerCmd("yes")); err != nil {
		t.Fatalf("answering: %v", err)
	}

	testutil.AssertEqual(t, "health", e.Player().Health(), 90)
	testutil.AssertEqual(t, "sanity", e.Player().Sanity(), 85)
	testutil.AssertEqual(t, "day", e.Player().DaysOnIsland(), 2)
	testutil.AssertEqual(t, "flag", e.Flags().JacobMet, true)
	if e.Player().Inventory().Find("compass") == nil {
		t.Error("expected granted compass in pack")
	}
}

func TestMiniGameCapturesInput(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "Puzzle", Prompt: "Decode it.", RoomKey: "beach", MiniGame: minigame.KeyCipher},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	testutil.AssertEqual(t, "mini-game active", e.MiniGameActive(), true)

	// Status stays reachable mid-puzzle.
	out, err := e.HandleCommand(command.Command{Action: command.ActionStatus})
	if err != nil {
		t.Fatalf("status mid-game: %v", err)
	}
	if !strings.Contains(out, "Hugo") {
		t.Errorf("expected status text, got %q", out)
	}
}

func TestMiniGameWinCompletesChapter(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{
			Sequence: 0, Title: "Puzzle", Prompt: "Decode it.", RoomKey: "beach", MiniGame: minigame.KeyCipher,
			OnSuccess: &Effect{GrantItem: "compass"},
		},
		{Sequence: 1, Title: "Next", Prompt: "Q?", RoomKey: "beach", Answers: []string{"x"}},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}

	for _, word := range []string{"it", "killed", "them", "all"} {
		if _, err := e.HandleCommand(answerCmd(word)); err != nil {
			t.Fatalf("answering %q: %v", word, err)
		}
	}

	testutil.AssertEqual(t, "mini-game cleared", e.MiniGameActive(), false)
	testutil.AssertEqual(t, "cursor", e.Cursor(), 1)
	if e.Player().Inventory().Find("compass") == nil {
		t.Error("expected success effect to run")
	}
}

func TestMiniGameLossAppliesFailureEffect(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{
			Sequence: 0, Title: "Trail", Prompt: "Follow it.", RoomKey: "beach", MiniGame: minigame.KeyBearing,
			OnFailure: &Effect{Sanity: -10},
		},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}

	// Three wrong calls kill the trail.
	for i := 0; i < 3; i++ {
		if _, err := e.HandleCommand(answerCmd("south")); err != nil {
			t.Fatalf("wrong call %d: %v", i, err)
		}
	}

	testutil.AssertEqual(t, "mini-game cleared", e.MiniGameActive(), false)
	testutil.AssertEqual(t, "cursor stays", e.Cursor(), 0)
	testutil.AssertEqual(t, "chapter not completed", e.ChapterCompleted(), false)
	testutil.AssertEqual(t, "sanity", e.Player().Sanity(), 90)

	// With the puzzle down, words are still not an answer.
	var userErr *command.UserError
	_, err := e.HandleCommand(answerCmd("north"))
	if !errors.As(err, &userErr) || !strings.Contains(userErr.Message, "activate") {
		t.Fatalf("expected redirect to activate, got %v", err)
	}

	// 'activate' rebuilds the puzzle for another try.
	out, err := e.HandleCommand(command.Command{Action: command.ActionActivate})
	if err != nil {
		t.Fatalf("retrying: %v", err)
	}
	testutil.AssertEqual(t, "mini-game active again", e.MiniGameActive(), true)
	if out == "" {
		t.Error("expected retry intro text")
	}
}

func TestDynamiteTimer(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})

	if err := e.Player().Inventory().Add(testCatalog().Get("dynamite").Clone()); err != nil {
		t.Fatalf("seeding dynamite: %v", err)
	}

	out, err := e.HandleCommand(command.Command{Action: command.ActionActivate, Target: "dynamite"})
	if err != nil {
		t.Fatalf("lighting fuse: %v", err)
	}
	if !strings.Contains(out, "fuse catches") {
		t.Errorf("expected fuse text, got %q", out)
	}
	// The lighting command itself burns a tick.
	testutil.AssertEqual(t, "timer", e.Flags().DynamiteTimer, dynamiteFuseTicks-1)

	// Burn the rest of the fuse holding the stick.
	for e.Flags().DynamiteActive {
		if _, err := e.HandleCommand(command.Command{Action: command.ActionLook}); err != nil {
			t.Fatalf("waiting out fuse: %v", err)
		}
	}

	testutil.AssertEqual(t, "health", e.Player().Health(), 75)
	if e.Player().Inventory().Find("dynamite") != nil {
		t.Error("expected the dynamite to be gone")
	}
}

func TestSmokeMonsterTimer(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{
			Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"},
			OnSuccess: &Effect{Timers: map[string]int{TimerSmokeMonster: 2}},
		},
		{Sequence: 1, Title: "Two", Prompt: "Q?", RoomKey: "beach", Answers: []string{"x"}},
	})

	if _, err := e.HandleCommand(advanceCmd); err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	if _, err := e.HandleCommand(answerCmd("yes")); err != nil {
		t.Fatalf("answering: %v", err)
	}
	// The completing command itself burns a tick.
	testutil.AssertEqual(t, "timer armed", e.Flags().SmokeMonsterTimer, 1)

	out, err := e.HandleCommand(command.Command{Action: command.ActionLook})
	if err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if !strings.Contains(out, "ticking roar") {
		t.Errorf("expected monster note, got %q", out)
	}
	testutil.AssertEqual(t, "sanity", e.Player().Sanity(), 90)
}

func TestTakeDropAndFullPack(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})

	if _, err := e.HandleCommand(command.Command{Action: command.ActionTake, Target: "mango"}); err != nil {
		t.Fatalf("taking: %v", err)
	}
	if e.Player().Inventory().Find("mango") == nil {
		t.Fatal("expected the mango in the pack")
	}
	testutil.AssertEqual(t, "room emptied", len(e.World().RoomItems("beach")), 0)

	// Fill the pack, then a take must undo cleanly.
	e.Player().Inventory().Add(&game.Item{Name: "Rock A"})
	e.Player().Inventory().Add(&game.Item{Name: "Rock B"})
	e.World().PlaceItem("beach", testCatalog().Get("compass").Clone())

	_, err := e.HandleCommand(command.Command{Action: command.ActionTake, Target: "compass"})
	var userErr *command.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError for full pack, got %v", err)
	}
	testutil.AssertEqual(t, "item back on the ground", len(e.World().RoomItems("beach")), 1)

	// Drop returns it to the room.
	if _, err := e.HandleCommand(command.Command{Action: command.ActionDrop, Target: "mango"}); err != nil {
		t.Fatalf("dropping: %v", err)
	}
	testutil.AssertEqual(t, "room count", len(e.World().RoomItems("beach")), 2)
}

func TestUntakeableItem(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})
	e.World().PlaceItem("beach", testCatalog().Get("boulder").Clone())

	_, err := e.HandleCommand(command.Command{Action: command.ActionTake, Target: "boulder"})
	var userErr *command.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError, got %v", err)
	}
	testutil.AssertEqual(t, "still there", len(e.World().RoomItems("beach")), 2)
}

func TestConsume(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "beach", Answers: []string{"yes"}},
	})
	e.Player().SetHealth(50)
	if err := e.Player().Inventory().Add(testCatalog().Get("mango").Clone()); err != nil {
		t.Fatalf("seeding mango: %v", err)
	}

	out, err := e.HandleCommand(command.Command{Action: command.ActionConsume, Target: "mango"})
	if err != nil {
		t.Fatalf("consuming: %v", err)
	}
	if !strings.Contains(out, "last of it") {
		t.Errorf("expected exhaustion note, got %q", out)
	}
	testutil.AssertEqual(t, "health", e.Player().Health(), 55)
	if e.Player().Inventory().Find("mango") != nil {
		t.Error("expected spent mango to be discarded")
	}
}

func TestDangerousRelocationCostsSanity(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Q?", RoomKey: "jungle", Answers: []string{"yes"}},
	})

	out, err := e.HandleCommand(advanceCmd)
	if err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	if !strings.Contains(out, "Something moves out there.") {
		t.Errorf("expected danger note, got %q", out)
	}
	testutil.AssertEqual(t, "room", e.Player().RoomKey(), "jungle")
	testutil.AssertEqual(t, "sanity", e.Player().Sanity(), 95)
}

func TestPromptTemplateExpansion(t *testing.T) {
	e := newTestEngine(t, []*Chapter{
		{Sequence: 0, Title: "One", Prompt: "Good morning, {{ .PlayerName }}.", RoomKey: "beach", Answers: []string{"yes"}},
	})

	out, err := e.HandleCommand(advanceCmd)
	if err != nil {
		t.Fatalf("starting chapter: %v", err)
	}
	if !strings.Contains(out, "Good morning, Hugo.") {
		t.Errorf("expected expanded prompt, got %q", out)
	}
}
