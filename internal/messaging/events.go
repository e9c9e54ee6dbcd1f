package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// RenderEvent tells an external renderer what the player is currently
// looking at. Consumers draw whatever they like from it; the game never
// waits for them.
type RenderEvent struct {
	LocationKey string `json:"location_key"`
	Narrative   string `json:"narrative"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

// AudioEvent asks an external audio manager to play a track.
type AudioEvent struct {
	Track     string `json:"track"`
	Loop      bool   `json:"loop"`
	StopAfter int64  `json:"stop_after_ms,omitempty"`
}

// SessionNotifier publishes render and audio events on per-session NATS
// subjects. Publish failures are logged and swallowed so a dead consumer
// can never stall the story.
type SessionNotifier struct {
	server    *NatsServer
	sessionId string
}

// NewSessionNotifier wraps a NatsServer for one session's event delivery.
func NewSessionNotifier(server *NatsServer, sessionId string) *SessionNotifier {
	return &SessionNotifier{
		server:    server,
		sessionId: sessionId,
	}
}

func (n *SessionNotifier) Render(locationKey, narrative, title, status string) {
	n.publish(fmt.Sprintf("render.%s", n.sessionId), &RenderEvent{
		LocationKey: locationKey,
		Narrative:   narrative,
		Title:       title,
		Status:      status,
	})
}

func (n *SessionNotifier) Audio(track string, loop bool, stopAfter time.Duration) {
	n.publish(fmt.Sprintf("audio.%s", n.sessionId), &AudioEvent{
		Track:     track,
		Loop:      loop,
		StopAfter: stopAfter.Milliseconds(),
	})
}

func (n *SessionNotifier) publish(subject string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("marshalling event", "subject", subject, "error", err)
		return
	}
	if err := n.server.Publish(subject, data); err != nil {
		slog.Warn("publishing event", "subject", subject, "error", err)
	}
}
