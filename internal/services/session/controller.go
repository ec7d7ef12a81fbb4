package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tableroom/tableroom/internal/engine"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/identity"
)

// Action names the commands a participant can issue against a room.
type Action string

const (
	ActionJoin      Action = "join"
	ActionLeave     Action = "leave"
	ActionSetMarker Action = "set_marker"
	ActionSetToken  Action = "set_token"
	ActionMeditate  Action = "meditate"
	ActionEndTurn   Action = "end_turn"
)

// Command is one participant request as it arrives off a transport. Fields
// beyond Action and RoomID are only meaningful for some actions; the engine
// validates them.
type Command struct {
	Action      Action           `json:"action"`
	RoomID      model.RoomID     `json:"room_id"`
	DisplayName string           `json:"display_name,omitempty"`
	Index       model.BoardIndex `json:"index,omitempty"`
}

// Multicaster fans accepted snapshots out to every watcher of a room. The
// SSE and websocket transports both implement it.
type Multicaster interface {
	Broadcast(roomID model.RoomID, snapshot *model.Snapshot)
	CloseRoom(roomID model.RoomID)
}

// Controller sits between the transports and the room engine. It executes
// commands, remembers which room each participant is in so a dropped
// connection can be turned into a leave, and pushes every accepted mutation
// to the room's watchers.
type Controller struct {
	registry   *engine.Registry
	identities *identity.Service
	logger     *slog.Logger

	mu        sync.Mutex
	casters   []Multicaster
	locations map[model.ParticipantID]model.RoomID
}

// NewController creates a session controller.
func NewController(registry *engine.Registry, identities *identity.Service, logger *slog.Logger) *Controller {
	return &Controller{
		registry:   registry,
		identities: identities,
		logger:     logger.With(slog.String("component", "session_controller")),
		locations:  make(map[model.ParticipantID]model.RoomID),
	}
}

// AddMulticaster registers a transport to receive room broadcasts. Call
// during wiring, before traffic starts.
func (c *Controller) AddMulticaster(m Multicaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.casters = append(c.casters, m)
}

// HandleCommand executes one command for a participant. Accepted mutations
// are broadcast to the room; rejections change nothing and are logged at
// debug level only, the participant is never told.
func (c *Controller) HandleCommand(ctx context.Context, participantID model.ParticipantID, cmd Command) engine.Result {
	var res engine.Result

	switch cmd.Action {
	case ActionJoin:
		// One room per participant: joining somewhere else implies leaving
		// the old room first, so no membership is left behind that a later
		// disconnect would never clean up.
		if prev, ok := c.location(participantID); ok && prev != cmd.RoomID {
			c.HandleCommand(ctx, participantID, Command{Action: ActionLeave, RoomID: prev})
		}
		res = c.registry.Join(cmd.RoomID, participantID, cmd.DisplayName)
		if res.Accepted {
			c.setLocation(participantID, cmd.RoomID)
			if err := c.identities.Remember(ctx, participantID, cmd.DisplayName); err != nil {
				c.logger.Warn("failed to remember identity",
					slog.String("participant_id", string(participantID)),
					slog.String("error", err.Error()))
			}
		}
	case ActionLeave:
		res = c.registry.Leave(cmd.RoomID, participantID)
		if res.Accepted {
			c.clearLocation(participantID)
		}
	case ActionSetMarker:
		res = c.registry.SetMarker(cmd.RoomID, participantID, cmd.Index)
	case ActionSetToken:
		res = c.registry.SetToken(cmd.RoomID, participantID, cmd.Index)
	case ActionMeditate:
		res = c.registry.Meditate(cmd.RoomID, participantID)
	case ActionEndTurn:
		res = c.registry.EndTurn(cmd.RoomID, participantID)
	default:
		res = engine.Result{Reason: engine.RejectMalformedInput}
	}

	if !res.Accepted {
		c.logger.Debug("command rejected",
			slog.String("participant_id", string(participantID)),
			slog.String("room", string(cmd.RoomID)),
			slog.String("action", string(cmd.Action)),
			slog.String("reason", string(res.Reason)))
		return res
	}

	if res.Snapshot != nil {
		c.broadcast(cmd.RoomID, res.Snapshot)
	} else {
		// Accepted with no snapshot means the room emptied and was destroyed.
		c.closeRoom(cmd.RoomID)
	}
	return res
}

// HandleDisconnect treats a dropped connection as a leave from whatever room
// the participant was last seen in.
func (c *Controller) HandleDisconnect(ctx context.Context, participantID model.ParticipantID) {
	roomID, ok := c.location(participantID)
	if !ok {
		return
	}
	c.logger.Info("participant disconnected, leaving room",
		slog.String("participant_id", string(participantID)),
		slog.String("room", string(roomID)))
	c.HandleCommand(ctx, participantID, Command{Action: ActionLeave, RoomID: roomID})
}

// Snapshot returns the current projection of a room.
func (c *Controller) Snapshot(roomID model.RoomID) (*model.Snapshot, error) {
	return c.registry.Snapshot(roomID)
}

func (c *Controller) broadcast(roomID model.RoomID, snapshot *model.Snapshot) {
	c.mu.Lock()
	casters := c.casters
	c.mu.Unlock()
	for _, m := range casters {
		m.Broadcast(roomID, snapshot)
	}
}

func (c *Controller) closeRoom(roomID model.RoomID) {
	c.mu.Lock()
	casters := c.casters
	c.mu.Unlock()
	for _, m := range casters {
		m.CloseRoom(roomID)
	}
}

func (c *Controller) setLocation(id model.ParticipantID, roomID model.RoomID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locations[id] = roomID
}

func (c *Controller) clearLocation(id model.ParticipantID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locations, id)
}

func (c *Controller) location(id model.ParticipantID) (model.RoomID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	roomID, ok := c.locations[id]
	return roomID, ok
}
