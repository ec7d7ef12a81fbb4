package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/tableroom/tableroom/internal/dependencies/mocks"
	"github.com/tableroom/tableroom/internal/engine"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/identity"
	"github.com/tableroom/tableroom/internal/services/session"
	"github.com/tableroom/tableroom/internal/storage/memory"
	"github.com/tableroom/tableroom/internal/testutil"
)

type ServerSuite struct {
	suite.Suite
	httpServer *httptest.Server
	server     *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	registry := engine.NewRegistry(clk, logger)
	identities := identity.New(memory.New(), clk, mocks.NewMockRandom(), logger)
	controller := session.NewController(registry, identities, logger)

	s.server = NewServer(controller, logger)
	controller.AddMulticaster(s.server)
	s.httpServer = httptest.NewServer(s.server)
}

func (s *ServerSuite) TearDownTest() {
	s.httpServer.Close()
}

func (s *ServerSuite) dial(participantID string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.httpServer.URL, "http")
	if participantID != "" {
		url += "?participant_id=" + participantID
	}
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return ws
}

func (s *ServerSuite) readEvent(ws *websocket.Conn) Event {
	s.Require().NoError(ws.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var event Event
	s.Require().NoError(ws.ReadJSON(&event))
	return event
}

func (s *ServerSuite) sendCommand(ws *websocket.Conn, cmd session.Command) {
	s.Require().NoError(ws.WriteJSON(Envelope{Command: cmd}))
}

func (s *ServerSuite) TestWelcomeCarriesIdentity() {
	ws := s.dial("p1")
	defer ws.Close()

	event := s.readEvent(ws)
	s.Equal(EventWelcome, event.Type)
	s.Equal(model.ParticipantID("p1"), event.ParticipantID)
}

func (s *ServerSuite) TestWelcomeMintsIdentityWhenAbsent() {
	ws := s.dial("")
	defer ws.Close()

	event := s.readEvent(ws)
	s.Equal(EventWelcome, event.Type)
	s.True(strings.HasPrefix(string(event.ParticipantID), "p_"))
}

func (s *ServerSuite) TestJoinYieldsSnapshot() {
	ws := s.dial("p1")
	defer ws.Close()
	s.readEvent(ws) // welcome

	s.sendCommand(ws, session.Command{
		Action:      session.ActionJoin,
		RoomID:      "room-1",
		DisplayName: "Alice",
	})

	event := s.readEvent(ws)
	s.Equal(EventSnapshot, event.Type)
	s.Equal(model.RoomID("room-1"), event.RoomID)
	s.Require().NotNil(event.Snapshot)
	s.Require().Len(event.Snapshot.Players, 1)
	s.Equal("Alice", event.Snapshot.Players[0].DisplayName)
	s.Equal(model.DefaultActionPointsMax, event.Snapshot.Players[0].ActionPoints)
}

func (s *ServerSuite) TestRejectedCommandIsSilent() {
	ws := s.dial("p1")
	defer ws.Close()
	s.readEvent(ws) // welcome

	s.sendCommand(ws, session.Command{
		Action:      session.ActionJoin,
		RoomID:      "room-1",
		DisplayName: "Alice",
	})
	s.readEvent(ws) // join snapshot

	// Placing a token without action points left must produce no frame;
	// the next accepted command's snapshot is the first thing we see.
	s.sendCommand(ws, session.Command{Action: session.ActionSetToken, RoomID: "room-1", Index: -1})
	s.sendCommand(ws, session.Command{Action: session.ActionSetMarker, RoomID: "room-1", Index: 4})

	event := s.readEvent(ws)
	s.Equal(EventSnapshot, event.Type)
	s.Require().NotNil(event.Snapshot)
	s.Require().Len(event.Snapshot.Board.Selections, 1)
	s.Equal(model.BoardIndex(4), event.Snapshot.Board.Selections[0].Index)
	s.Empty(event.Snapshot.Board.Tokens)
}

func (s *ServerSuite) TestSnapshotFansOutToRoom() {
	alice := s.dial("p1")
	defer alice.Close()
	bob := s.dial("p2")
	defer bob.Close()
	s.readEvent(alice)
	s.readEvent(bob)

	s.sendCommand(alice, session.Command{Action: session.ActionJoin, RoomID: "room-1", DisplayName: "Alice"})
	s.readEvent(alice)

	s.sendCommand(bob, session.Command{Action: session.ActionJoin, RoomID: "room-1", DisplayName: "Bob"})

	aliceView := s.readEvent(alice)
	bobView := s.readEvent(bob)
	s.Require().Len(aliceView.Snapshot.Players, 2)
	s.Require().Len(bobView.Snapshot.Players, 2)
	s.Equal(aliceView.Snapshot.Players, bobView.Snapshot.Players)
}

func (s *ServerSuite) TestDisconnectLeavesRoom() {
	alice := s.dial("p1")
	bob := s.dial("p2")
	defer bob.Close()
	s.readEvent(alice)
	s.readEvent(bob)

	s.sendCommand(alice, session.Command{Action: session.ActionJoin, RoomID: "room-1", DisplayName: "Alice"})
	s.readEvent(alice)
	s.sendCommand(bob, session.Command{Action: session.ActionJoin, RoomID: "room-1", DisplayName: "Bob"})
	s.readEvent(alice)
	s.readEvent(bob)

	// Alice drops; the turn passes to Bob with fresh action points.
	alice.Close()

	event := s.readEvent(bob)
	s.Equal(EventSnapshot, event.Type)
	s.Require().Len(event.Snapshot.Players, 1)
	s.Equal(model.ParticipantID("p2"), event.Snapshot.Players[0].ID)
	s.Require().NotNil(event.Snapshot.CurrentPlayerID)
	s.Equal(model.ParticipantID("p2"), *event.Snapshot.CurrentPlayerID)
	s.Equal(model.DefaultActionPointsMax, event.Snapshot.Players[0].ActionPoints)
}

func (s *ServerSuite) TestLastLeaveClosesRoom() {
	ws := s.dial("p1")
	defer ws.Close()
	s.readEvent(ws)

	s.sendCommand(ws, session.Command{Action: session.ActionJoin, RoomID: "room-1", DisplayName: "Alice"})
	s.readEvent(ws)

	s.sendCommand(ws, session.Command{Action: session.ActionLeave, RoomID: "room-1"})

	event := s.readEvent(ws)
	s.Equal(EventRoomClosed, event.Type)
	s.Equal(model.RoomID("room-1"), event.RoomID)
	s.Nil(event.Snapshot)
}
