package model

import (
	"strings"
	"time"
)

// ParticipantID uniquely identifies a connected participant. It is opaque,
// stable for the lifetime of a connection, and unique within a room.
type ParticipantID string

// Default resource caps. Both pools start at zero and are only filled by
// turn-start replenishment (AP) or healing actions (HP).
const (
	DefaultActionPointsMax = 4
	DefaultHealthPointsMax = 6
)

// MaxDisplayNameLength is the rune limit for display names; longer names are
// truncated at join time.
const MaxDisplayNameLength = 24

// NormalizeDisplayName trims surrounding whitespace and truncates to the rune
// limit. A name that is blank after trimming normalizes to the empty string.
func NormalizeDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > MaxDisplayNameLength {
		name = string(runes[:MaxDisplayNameLength])
	}
	return name
}

// Player is a participant's in-room state. Seat is assigned at join time and
// never reassigned, so seats keep their numbers when earlier players leave.
type Player struct {
	ID              ParticipantID
	DisplayName     string
	Seat            int
	ActionPoints    int
	ActionPointsMax int
	HealthPoints    int
	HealthPointsMax int
	JoinedAt        time.Time
}

// NewPlayer creates a player at the given seat with empty resource pools.
func NewPlayer(id ParticipantID, displayName string, seat int, joinedAt time.Time) *Player {
	return &Player{
		ID:              id,
		DisplayName:     displayName,
		Seat:            seat,
		ActionPoints:    0,
		ActionPointsMax: DefaultActionPointsMax,
		HealthPoints:    0,
		HealthPointsMax: DefaultHealthPointsMax,
		JoinedAt:        joinedAt,
	}
}
