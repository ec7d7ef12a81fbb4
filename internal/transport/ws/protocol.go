package ws

import (
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/session"
)

// Event types pushed to clients.
const (
	EventWelcome    = "welcome"
	EventSnapshot   = "snapshot"
	EventRoomClosed = "room_closed"
)

// Envelope is one inbound client frame. It wraps a session command; the
// participant identity comes from the connection, never from the frame.
type Envelope struct {
	Command session.Command `json:"command"`
}

// Event is one outbound server frame.
type Event struct {
	Type          string              `json:"type"`
	RoomID        model.RoomID        `json:"room_id,omitempty"`
	ParticipantID model.ParticipantID `json:"participant_id,omitempty"`
	Snapshot      *model.Snapshot     `json:"snapshot,omitempty"`
}
