package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server accepts websocket connections, feeds their commands through the
// session controller and multicasts snapshots back to every connection in a
// room. It implements the session Multicaster interface.
type Server struct {
	controller *session.Controller
	logger     *slog.Logger

	mu    sync.RWMutex
	rooms map[model.RoomID]map[*conn]bool
}

// Ensure Server implements Multicaster
var _ session.Multicaster = (*Server)(nil)

// NewServer creates a websocket server bound to a session controller.
func NewServer(controller *session.Controller, logger *slog.Logger) *Server {
	return &Server{
		controller: controller,
		logger:     logger.With(slog.String("component", "ws_server")),
		rooms:      make(map[model.RoomID]map[*conn]bool),
	}
}

// ServeHTTP upgrades the request and runs the connection until it drops. The
// participant identity is taken from the participant_id query parameter; a
// connection without one gets a fresh identity minted for it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	participantID := model.ParticipantID(r.URL.Query().Get("participant_id"))
	if participantID == "" {
		participantID = model.ParticipantID("p_" + uuid.NewString())
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", slog.Any("error", err))
		return
	}

	c := newConn(ws, participantID, s.logger)
	go c.writePump()

	c.sendEvent(Event{Type: EventWelcome, ParticipantID: participantID})

	s.logger.Info("connection opened",
		slog.String("participant_id", string(participantID)),
		slog.String("remote_addr", ws.RemoteAddr().String()))

	s.readPump(r, c)
}

// readPump decodes inbound frames and executes them until the connection
// drops, then synthesizes a leave for the participant.
func (s *Server) readPump(r *http.Request, c *conn) {
	defer func() {
		s.dropConn(c)
		c.close()
		s.controller.HandleDisconnect(r.Context(), c.participantID)
		s.logger.Info("connection closed",
			slog.String("participant_id", string(c.participantID)))
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetPongHandler(func(string) error {
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read error",
					slog.String("participant_id", string(c.participantID)),
					slog.Any("error", err))
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			// Malformed frames are dropped silently, like any other
			// rejected command.
			s.logger.Debug("malformed frame",
				slog.String("participant_id", string(c.participantID)))
			continue
		}

		s.handleCommand(r, c, envelope.Command)
	}
}

func (s *Server) handleCommand(r *http.Request, c *conn, cmd session.Command) {
	res := s.controller.HandleCommand(r.Context(), c.participantID, cmd)
	if !res.Accepted {
		return
	}

	switch cmd.Action {
	case session.ActionJoin:
		s.addConn(cmd.RoomID, c)
	case session.ActionLeave:
		s.dropConn(c)
	}
}

// Broadcast sends a snapshot to every connection in the room.
func (s *Server) Broadcast(roomID model.RoomID, snapshot *model.Snapshot) {
	event := Event{Type: EventSnapshot, RoomID: roomID, Snapshot: snapshot}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.rooms[roomID] {
		c.sendEvent(event)
	}
}

// CloseRoom notifies the room's connections that it is gone and forgets the
// grouping.
func (s *Server) CloseRoom(roomID model.RoomID) {
	event := Event{Type: EventRoomClosed, RoomID: roomID}

	s.mu.Lock()
	conns := s.rooms[roomID]
	delete(s.rooms, roomID)
	s.mu.Unlock()

	for c := range conns {
		c.sendEvent(event)
	}
}

func (s *Server) addConn(roomID model.RoomID, c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[roomID] == nil {
		s.rooms[roomID] = make(map[*conn]bool)
	}
	s.rooms[roomID][c] = true
}

func (s *Server) dropConn(c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for roomID, conns := range s.rooms {
		if conns[c] {
			delete(conns, c)
			if len(conns) == 0 {
				delete(s.rooms, roomID)
			}
		}
	}
}
