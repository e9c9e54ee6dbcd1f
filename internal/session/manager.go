package session

import (
	"context"
	"fmt"
	"io"

	"github.com/driftline/castaway/internal/command"
	"github.com/driftline/castaway/internal/engine"
	"github.com/driftline/castaway/internal/game"
	"github.com/driftline/castaway/internal/messaging"
	"github.com/driftline/castaway/internal/persist"
	"github.com/driftline/castaway/internal/storage"
)

// Manager builds one engine per connection. Room and item definitions are
// shared read-only stores; every session gets its own world instantiated
// from them, so players never see each other's looting.
type Manager struct {
	rooms    storage.Storer[*game.Room]
	items    storage.Storer[*game.Item]
	chapters []*engine.Chapter
	slots    *persist.SlotManager
	nats     *messaging.NatsServer

	parser       *command.Parser
	startRoomKey string
}

func NewManager(rooms storage.Storer[*game.Room], items storage.Storer[*game.Item], chapterStore storage.Storer[*engine.Chapter], slots *persist.SlotManager, nats *messaging.NatsServer, startRoomKey string) (*Manager, error) {
	chapters, err := engine.ChaptersFromStore(chapterStore)
	if err != nil {
		return nil, fmt.Errorf("loading chapters: %w", err)
	}

	if rooms.Get(startRoomKey) == nil {
		return nil, fmt.Errorf("start room %q does not exist", startRoomKey)
	}

	return &Manager{
		rooms:        rooms,
		items:        items,
		chapters:     chapters,
		slots:        slots,
		nats:         nats,
		parser:       command.NewParser(),
		startRoomKey: startRoomKey,
	}, nil
}

// Start keeps the manager alive as a worker until shutdown.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// BuildEngine constructs a fresh engine for playerName with default world
// state. Restores layer a snapshot on top of exactly this.
func (m *Manager) BuildEngine(playerName string, opts ...engine.Option) (*engine.Engine, error) {
	world, err := game.NewWorld(m.rooms, m.items)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	player := game.NewPlayer(playerName, game.DefaultInventoryCapacity)
	player.MoveTo(m.startRoomKey)

	return engine.New(player, world, m.chapters, m.items, opts...), nil
}

// RunSession owns one connection from greeting to disconnect.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	s := newSession(m, conn)
	return s.run(ctx)
}
