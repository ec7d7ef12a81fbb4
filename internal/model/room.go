package model

// RoomID is a client-chosen identifier for an isolated game session.
type RoomID string

// Snapshot is the full public projection of a room, built fresh after every
// accepted mutation and broadcast to all connections in the room. It is never
// mutated once handed to a transport, so JSON tags live here: the snapshot is
// the wire shape by definition.
type Snapshot struct {
	RoomID          RoomID         `json:"room_id"`
	Players         []PlayerView   `json:"players"`
	CurrentPlayerID *ParticipantID `json:"current_player_id"`
	Board           BoardView      `json:"board"`
}

// PlayerView is the public per-player slice of a snapshot, ordered by seat.
type PlayerView struct {
	ID              ParticipantID `json:"id"`
	DisplayName     string        `json:"display_name"`
	Seat            int           `json:"seat"`
	ActionPoints    int           `json:"action_points"`
	ActionPointsMax int           `json:"action_points_max"`
	HealthPoints    int           `json:"health_points"`
	HealthPointsMax int           `json:"health_points_max"`
}

// BoardView carries the two occupancy layers. Both slices follow seat order,
// re-derived from the player list rather than map iteration, so output is
// deterministic.
type BoardView struct {
	Selections []Placement `json:"selections"`
	Tokens     []Placement `json:"tokens"`
}

// Placement binds one participant to one board cell.
type Placement struct {
	PlayerID ParticipantID `json:"player_id"`
	Index    BoardIndex    `json:"index"`
}
