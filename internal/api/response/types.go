package response

import (
	"time"

	"github.com/tableroom/tableroom/internal/model"
)

// Participant represents a minted identity in API responses
type Participant struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParticipantFromIdentity converts a model.Identity to a response Participant
func ParticipantFromIdentity(i *model.Identity) Participant {
	return Participant{
		ID:          string(i.ID),
		DisplayName: i.DisplayName,
		CreatedAt:   i.CreatedAt,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}
