package engine

import (
	"sync"

	"github.com/tableroom/tableroom/internal/dependencies/clock"
	"github.com/tableroom/tableroom/internal/model"
)

// Cost of the chargeable actions. The ledger itself supports arbitrary
// positive costs; every action in this design costs one action point.
const (
	tokenCost    = 1
	meditateCost = 1

	meditateHeal = 2
)

// Room is one isolated session: its players, turn order and board occupancy.
// All commands run under the room mutex as a single validate-apply-snapshot
// sequence, so no two commands for the same room ever interleave their
// effects. Rooms are only constructed and destroyed by the Registry.
type Room struct {
	mu sync.Mutex

	id      model.RoomID
	players []*model.Player // seat order == join order
	turns   turnSequencer
	board   occupancy
	clock   clock.Clock

	// closed is set when the last player leaves; the Registry then drops the
	// room, and any command that raced the teardown sees an unknown room.
	closed bool
}

func newRoom(id model.RoomID, clk clock.Clock) *Room {
	return &Room{
		id:    id,
		board: newOccupancy(),
		clock: clk,
	}
}

// ID returns the room identifier.
func (r *Room) ID() model.RoomID {
	return r.id
}

// Join adds a participant at the next seat, or updates the display name if
// the participant is already present (reconnection with the same identity).
// The second return value is false when the room has already been torn down
// and the caller must resolve a fresh room.
func (r *Room) Join(id model.ParticipantID, displayName string) (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom), false
	}

	displayName = model.NormalizeDisplayName(displayName)
	if id == "" || displayName == "" {
		return rejected(RejectMalformedInput), true
	}

	if p := r.playerByID(id); p != nil {
		p.DisplayName = displayName
		return accepted(r.snapshotLocked()), true
	}

	p := model.NewPlayer(id, displayName, len(r.players)+1, r.clock.Now())
	r.players = append(r.players, p)
	if r.turns.add(id) {
		// First participant: their turn starts immediately.
		replenish(p)
	}
	return accepted(r.snapshotLocked()), true
}

// Leave removes a participant, clears their occupancy entries and applies
// the turn-recovery rule. When the departing participant was the acting one
// the successor's turn begins with fresh action points. When the room
// empties it is marked closed and the result carries no snapshot: there is
// nobody left to broadcast to.
func (r *Room) Leave(id model.ParticipantID) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom)
	}

	pos := -1
	for i, p := range r.players {
		if p.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return rejected(RejectUnknownParticipant)
	}

	r.players = append(r.players[:pos], r.players[pos+1:]...)
	r.board.clear(id)
	if next, ok := r.turns.remove(id); ok {
		replenish(r.playerByID(next))
	}

	if len(r.players) == 0 {
		r.closed = true
		return accepted(nil)
	}
	return accepted(r.snapshotLocked())
}

// SetMarker places a participant's ping on a cell. Markers carry no turn
// restriction and no cost: any participant may ping any cell at any time.
func (r *Room) SetMarker(id model.ParticipantID, index model.BoardIndex) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom)
	}
	if r.playerByID(id) == nil {
		return rejected(RejectUnknownParticipant)
	}
	if !index.Valid() {
		return rejected(RejectMalformedInput)
	}

	r.board.setMarker(id, index)
	return accepted(r.snapshotLocked())
}

// SetToken places the caller's piece on a cell, overwriting any previous
// placement. Only the acting participant may place, and it costs one action
// point.
func (r *Room) SetToken(id model.ParticipantID, index model.BoardIndex) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom)
	}
	p := r.playerByID(id)
	if p == nil {
		return rejected(RejectUnknownParticipant)
	}
	if !index.Valid() {
		return rejected(RejectMalformedInput)
	}
	if !r.isCurrent(id) {
		return rejected(RejectNotYourTurn)
	}
	if !spend(p, tokenCost) {
		return rejected(RejectInsufficientAP)
	}

	r.board.setToken(id, index)
	return accepted(r.snapshotLocked())
}

// Meditate spends one action point to restore two health points, clamped to
// the cap. Only the acting participant may meditate.
func (r *Room) Meditate(id model.ParticipantID) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom)
	}
	p := r.playerByID(id)
	if p == nil {
		return rejected(RejectUnknownParticipant)
	}
	if !r.isCurrent(id) {
		return rejected(RejectNotYourTurn)
	}
	if !spend(p, meditateCost) {
		return rejected(RejectInsufficientAP)
	}

	restoreHealth(p, meditateHeal)
	return accepted(r.snapshotLocked())
}

// EndTurn passes play to the next participant, whose action points refill.
// In a solo room the caller stays current but still gets a fresh turn.
func (r *Room) EndTurn(id model.ParticipantID) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return rejected(RejectUnknownRoom)
	}
	if r.playerByID(id) == nil {
		return rejected(RejectUnknownParticipant)
	}
	if !r.isCurrent(id) {
		return rejected(RejectNotYourTurn)
	}

	if next, ok := r.turns.advance(); ok {
		replenish(r.playerByID(next))
	}
	return accepted(r.snapshotLocked())
}

// Snapshot builds the room's current public projection without mutating
// anything.
func (r *Room) Snapshot() *model.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Empty reports whether the room has been closed (its player set emptied).
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Room) playerByID(id model.ParticipantID) *model.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) isCurrent(id model.ParticipantID) bool {
	current, ok := r.turns.current()
	return ok && current == id
}

// snapshotLocked assembles a fresh snapshot. Ordering is always derived from
// the seat-ordered player list, never from occupancy map iteration.
func (r *Room) snapshotLocked() *model.Snapshot {
	snap := &model.Snapshot{
		RoomID:  r.id,
		Players: make([]model.PlayerView, 0, len(r.players)),
		Board: model.BoardView{
			Selections: []model.Placement{},
			Tokens:     []model.Placement{},
		},
	}

	if current, ok := r.turns.current(); ok {
		snap.CurrentPlayerID = &current
	}

	for _, p := range r.players {
		snap.Players = append(snap.Players, model.PlayerView{
			ID:              p.ID,
			DisplayName:     p.DisplayName,
			Seat:            p.Seat,
			ActionPoints:    p.ActionPoints,
			ActionPointsMax: p.ActionPointsMax,
			HealthPoints:    p.HealthPoints,
			HealthPointsMax: p.HealthPointsMax,
		})
		if index, ok := r.board.marker(p.ID); ok {
			snap.Board.Selections = append(snap.Board.Selections, model.Placement{PlayerID: p.ID, Index: index})
		}
		if index, ok := r.board.token(p.ID); ok {
			snap.Board.Tokens = append(snap.Board.Tokens, model.Placement{PlayerID: p.ID, Index: index})
		}
	}

	return snap
}
