package engine

import (
	"log/slog"
	"sync"

	"github.com/tableroom/tableroom/internal/dependencies/clock"
	"github.com/tableroom/tableroom/internal/model"
)

// Registry is the single authoritative map from room id to live Room. It is
// the only component that constructs or destroys rooms: a room is created on
// first join to an unknown id and destroyed the moment its player set
// empties. Registries are plain values with injected dependencies, so tests
// can run several side by side.
//
// The registry lock only guards the map; it is never held across a room
// mutation, so commands for different rooms never block each other.
type Registry struct {
	mu     sync.Mutex
	rooms  map[model.RoomID]*Room
	clock  clock.Clock
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[model.RoomID]*Room),
		clock:  clk,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// Join resolves (or creates) the room and joins the participant to it.
// Malformed input is rejected before any room is resolved, so a rejected
// join never brings an empty room into being. A join can race the teardown
// of a dying room with the same id; when it loses that race it simply
// resolves again, ending up in a brand-new room.
func (g *Registry) Join(roomID model.RoomID, id model.ParticipantID, displayName string) Result {
	if roomID == "" || id == "" || model.NormalizeDisplayName(displayName) == "" {
		return rejected(RejectMalformedInput)
	}
	for {
		room, created := g.getOrCreate(roomID)
		res, ok := room.Join(id, displayName)
		if !ok {
			continue
		}
		if created {
			g.logger.Info("room created", slog.String("room", string(roomID)))
		}
		return res
	}
}

// Leave removes the participant from the room and destroys the room if it
// emptied.
func (g *Registry) Leave(roomID model.RoomID, id model.ParticipantID) Result {
	room, ok := g.lookup(roomID)
	if !ok {
		return rejected(RejectUnknownRoom)
	}
	res := room.Leave(id)
	if res.Accepted && room.Empty() {
		g.deleteRoom(roomID, room)
	}
	return res
}

// SetMarker places a participant's ping in the room.
func (g *Registry) SetMarker(roomID model.RoomID, id model.ParticipantID, index model.BoardIndex) Result {
	room, ok := g.lookup(roomID)
	if !ok {
		return rejected(RejectUnknownRoom)
	}
	return room.SetMarker(id, index)
}

// SetToken places a participant's piece in the room.
func (g *Registry) SetToken(roomID model.RoomID, id model.ParticipantID, index model.BoardIndex) Result {
	room, ok := g.lookup(roomID)
	if !ok {
		return rejected(RejectUnknownRoom)
	}
	return room.SetToken(id, index)
}

// Meditate performs the heal action in the room.
func (g *Registry) Meditate(roomID model.RoomID, id model.ParticipantID) Result {
	room, ok := g.lookup(roomID)
	if !ok {
		return rejected(RejectUnknownRoom)
	}
	return room.Meditate(id)
}

// EndTurn advances the room's turn.
func (g *Registry) EndTurn(roomID model.RoomID, id model.ParticipantID) Result {
	room, ok := g.lookup(roomID)
	if !ok {
		return rejected(RejectUnknownRoom)
	}
	return room.EndTurn(id)
}

// Snapshot returns the room's current projection.
func (g *Registry) Snapshot(roomID model.RoomID) (*model.Snapshot, error) {
	room, ok := g.lookup(roomID)
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

func (g *Registry) getOrCreate(roomID model.RoomID) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[roomID]; ok {
		return room, false
	}
	room := newRoom(roomID, g.clock)
	g.rooms[roomID] = room
	return room, true
}

func (g *Registry) lookup(roomID model.RoomID) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[roomID]
	return room, ok
}

func (g *Registry) deleteRoom(roomID model.RoomID, room *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// Guard against deleting a newer room that reused the id after this one
	// closed.
	if g.rooms[roomID] == room {
		delete(g.rooms, roomID)
		g.logger.Info("room destroyed", slog.String("room", string(roomID)))
	}
}
