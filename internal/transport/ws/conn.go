package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tableroom/tableroom/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// conn is one websocket connection bound to a participant identity.
type conn struct {
	ws            *websocket.Conn
	participantID model.ParticipantID
	send          chan []byte
	logger        *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn, participantID model.ParticipantID, logger *slog.Logger) *conn {
	return &conn{
		ws:            ws,
		participantID: participantID,
		send:          make(chan []byte, sendBufferSize),
		logger:        logger.With(slog.String("participant_id", string(participantID))),
	}
}

// sendEvent queues an event frame, dropping it if the client is too slow to
// keep its buffer drained.
func (c *conn) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event", slog.Any("error", err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("event dropped - client buffer full",
			slog.String("event", event.Type))
	}
}

// close shuts the send channel exactly once. A broadcast racing the teardown
// sees the closed flag instead of a closed channel.
func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings. It owns all writes to the socket.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
