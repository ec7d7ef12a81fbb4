package model

import "time"

// Identity is a participant record kept across connections so a returning
// client can present its token and keep its display name. This is connection
// identity, not an account: there are no credentials.
type Identity struct {
	ID          ParticipantID `json:"id"`
	DisplayName string        `json:"display_name"`
	CreatedAt   time.Time     `json:"created_at"`
	LastSeenAt  time.Time     `json:"last_seen_at"`
}
