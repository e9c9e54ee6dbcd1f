package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/driftline/castaway/internal/listener"
	"github.com/driftline/castaway/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Asset stores
	rooms, err := cfg.Storage.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	chapters, err := cfg.Storage.Chapters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating chapter store: %w", err)
	}
	slots, err := cfg.Storage.Saves.BuildSlotManager()
	if err != nil {
		return nil, fmt.Errorf("creating slot manager: %w", err)
	}

	// Embedded broker for render and audio events
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Session manager
	sessionManager, err := session.NewManager(rooms, items, chapters, slots, natsServer, cfg.Game.StartRoom)
	if err != nil {
		return nil, fmt.Errorf("creating session manager: %w", err)
	}

	// Create Listeners
	cm := listener.NewConnectionManager(sessionManager)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      natsServer,
		"sessions":  sessionManager,
		"listeners": &listeners,
	}, nil
}
