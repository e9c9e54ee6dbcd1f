package persist

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/driftline/castaway/internal/engine"
	"github.com/driftline/castaway/internal/game"
)

// ItemState is the flat projection of one item instance.
type ItemState struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Takeable      bool   `json:"takeable"`
	Type          string `json:"type"`
	HealthBoost   int    `json:"health_boost"`
	UsesRemaining int    `json:"uses_remaining"`
}

// GameState is the serializable projection of all mutable session state.
// Rooms and items are referenced by key and field projection, never by
// pointer, so a snapshot can be resolved against a freshly rebuilt world.
// An active mini-game is deliberately absent: its chapter is re-entered on
// restore instead.
type GameState struct {
	PlayerName   string `json:"player_name"`
	Health       int    `json:"health"`
	Sanity       int    `json:"sanity"`
	DaysOnIsland int    `json:"days_on_island"`

	CurrentRoomKey string      `json:"current_room_key"`
	Inventory      []ItemState `json:"inventory"`

	CurrentChapter          int  `json:"current_chapter"`
	CurrentChapterStarted   bool `json:"current_chapter_started"`
	CurrentChapterCompleted bool `json:"current_chapter_completed"`
	GameRunning             bool `json:"game_running"`
	GameWon                 bool `json:"game_won"`

	HatchOpened       bool `json:"hatch_opened"`
	BlackRockExplored bool `json:"black_rock_explored"`
	JacobMet          bool `json:"jacob_met"`
	TempleBathed      bool `json:"temple_bathed"`
	DynamiteActive    bool `json:"dynamite_active"`
	DynamiteTimer     int  `json:"dynamite_timer"`
	SmokeMonsterTimer int  `json:"smoke_monster_timer"`
	OthersTimer       int  `json:"others_timer"`

	RoomItems map[string][]ItemState `json:"room_items,omitempty"`
}

// Validate satisfies storage.ValidatingSpec so snapshots ride the same
// asset store as everything else.
func (gs *GameState) Validate() error {
	el := errors.NewErrorList()

	if gs.PlayerName == "" {
		el.Add(fmt.Errorf("player_name is required"))
	}
	if gs.CurrentChapter < 0 {
		el.Add(fmt.Errorf("current_chapter must not be negative"))
	}
	if gs.DaysOnIsland < 1 {
		el.Add(fmt.Errorf("days_on_island must be at least 1"))
	}

	return el.Err()
}

// Extract flattens a live engine into a snapshot.
func Extract(e *engine.Engine) *GameState {
	player := e.Player()
	flags := e.Flags()

	gs := &GameState{
		PlayerName:   player.Name(),
		Health:       player.Health(),
		Sanity:       player.Sanity(),
		DaysOnIsland: player.DaysOnIsland(),

		CurrentRoomKey: player.RoomKey(),
		Inventory:      itemStates(player.Inventory().Items()),

		CurrentChapter:          e.Cursor(),
		CurrentChapterStarted:   e.ChapterStarted(),
		CurrentChapterCompleted: e.ChapterCompleted(),
		GameRunning:             e.Running(),
		GameWon:                 e.Won(),

		HatchOpened:       flags.HatchOpened,
		BlackRockExplored: flags.BlackRockExplored,
		JacobMet:          flags.JacobMet,
		TempleBathed:      flags.TempleBathed,
		DynamiteActive:    flags.DynamiteActive,
		DynamiteTimer:     flags.DynamiteTimer,
		SmokeMonsterTimer: flags.SmokeMonsterTimer,
		OthersTimer:       flags.OthersTimer,
	}

	byRoom := e.World().ItemsByRoom()
	if len(byRoom) > 0 {
		gs.RoomItems = make(map[string][]ItemState, len(byRoom))
		for key, items := range byRoom {
			gs.RoomItems[key] = itemStates(items)
		}
	}

	return gs
}

// Builder constructs a fresh engine with the static world and chapter list
// rebuilt deterministically. Restore applies a snapshot on top of one.
type Builder func(playerName string) (*engine.Engine, error)

// Restore rebuilds a live engine from a snapshot. The snapshot is validated
// as it's applied; a corrupt one returns an error and leaves nothing
// half-built for the caller to trip over.
func Restore(gs *GameState, build Builder) (*engine.Engine, error) {
	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	e, err := build(gs.PlayerName)
	if err != nil {
		return nil, fmt.Errorf("rebuilding engine: %w", err)
	}

	if gs.CurrentChapter > len(e.Chapters()) {
		return nil, fmt.Errorf("snapshot chapter %d is beyond the story (%d chapters)", gs.CurrentChapter, len(e.Chapters()))
	}

	player := e.Player()
	player.SetHealth(gs.Health)
	player.SetSanity(gs.Sanity)
	player.SetDaysOnIsland(gs.DaysOnIsland)

	if gs.CurrentRoomKey != "" {
		if e.World().Room(gs.CurrentRoomKey) == nil {
			return nil, fmt.Errorf("snapshot references unknown room %q", gs.CurrentRoomKey)
		}
		player.MoveTo(gs.CurrentRoomKey)
	}

	for _, is := range gs.Inventory {
		item, err := itemFromState(is)
		if err != nil {
			return nil, err
		}
		if err := player.Inventory().Add(item); err != nil {
			return nil, fmt.Errorf("snapshot inventory exceeds capacity: %w", err)
		}
	}

	// The fresh world carries default item placement; the snapshot's room
	// lists replace it entirely.
	e.World().ClearItems()
	for roomKey, states := range gs.RoomItems {
		items := make([]*game.Item, 0, len(states))
		for _, is := range states {
			item, err := itemFromState(is)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := e.World().SetRoomItems(roomKey, items); err != nil {
			return nil, fmt.Errorf("snapshot references unknown room %q", roomKey)
		}
	}

	flags := e.Flags()
	flags.HatchOpened = gs.HatchOpened
	flags.BlackRockExplored = gs.BlackRockExplored
	flags.JacobMet = gs.JacobMet
	flags.TempleBathed = gs.TempleBathed
	flags.DynamiteActive = gs.DynamiteActive
	flags.DynamiteTimer = gs.DynamiteTimer
	flags.SmokeMonsterTimer = gs.SmokeMonsterTimer
	flags.OthersTimer = gs.OthersTimer

	e.RestoreProgress(gs.CurrentChapter, gs.CurrentChapterStarted, gs.CurrentChapterCompleted, gs.GameRunning, gs.GameWon)

	return e, nil
}

func itemStates(items []*game.Item) []ItemState {
	out := make([]ItemState, len(items))
	for i, item := range items {
		out[i] = ItemState{
			Name:          item.Name,
			Description:   item.Description,
			Takeable:      item.Takeable,
			Type:          item.Type.String(),
			HealthBoost:   item.HealthBoost,
			UsesRemaining: item.UsesRemaining,
		}
	}
	return out
}

func itemFromState(is ItemState) (*game.Item, error) {
	var t game.ItemType
	if err := t.UnmarshalText([]byte(is.Type)); err != nil {
		return nil, fmt.Errorf("snapshot item %q: %w", is.Name, err)
	}
	return &game.Item{
		Name:          is.Name,
		Description:   is.Description,
		Takeable:      is.Takeable,
		Type:          t,
		HealthBoost:   is.HealthBoost,
		UsesRemaining: is.UsesRemaining,
	}, nil
}
