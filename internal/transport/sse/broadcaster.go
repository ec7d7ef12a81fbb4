package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/session"
)

// Broadcaster pushes room snapshots to SSE clients. It implements the
// session Multicaster interface.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// Ensure Broadcaster implements Multicaster
var _ session.Multicaster = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Broadcast sends a snapshot event to every client watching the room
func (b *Broadcaster) Broadcast(roomID model.RoomID, snapshot *model.Snapshot) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		b.logger.Error("sse failed to marshal snapshot",
			slog.String("room", string(roomID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent("snapshot", string(data))
}

// CloseRoom tells watchers the room is gone and tears down its hub
func (b *Broadcaster) CloseRoom(roomID model.RoomID) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("room-closed", string(roomID))
	b.hubManager.RemoveHub(roomID)
}
