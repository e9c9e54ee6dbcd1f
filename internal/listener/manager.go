package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/driftline/castaway/internal/session"
)

// ConnectionManager is the seam between transports and sessions: every
// listener hands accepted connections here, so session lifecycle logging
// lives in one place.
type ConnectionManager struct {
	sm *session.Manager
}

func NewConnectionManager(sm *session.Manager) *ConnectionManager {
	return &ConnectionManager{
		sm: sm,
	}
}

// AcceptConnection runs a full session on conn and returns when it ends.
// A canceled context is a normal shutdown, not a session failure.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	err := m.sm.RunSession(ctx, conn)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		slog.InfoContext(ctx, "session ended")
	default:
		slog.WarnContext(ctx, "session failed", "error", err)
	}
}
