package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bmharper/rotator"
	"github.com/bmharper/rotator/internal/wire"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

type outbound struct {
	messageType int
	data        []byte
}

// websocketClient is one connection. Requests are handled in arrival order;
// each reply goes out in the frame type the request came in.
type websocketClient struct {
	id     string
	conn   *websocket.Conn
	server *RotateServer
	send   chan outbound
	done   chan struct{}
}

// HandleWebSocket upgrades to a websocket and serves rotate requests on it.
func (s *RotateServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "requestId", requestID(r.Context()), "err", err)
		return
	}
	conn.SetReadLimit(s.cfg.MaxBodyBytes)
	c := &websocketClient{
		id:     requestID(r.Context()),
		conn:   conn,
		server: s,
		send:   make(chan outbound, 4),
		done:   make(chan struct{}),
	}
	s.log.Debug("WebSocket connected", "requestId", c.id)
	go c.writePump()
	c.readPump()
}

func (c *websocketClient) readPump() {
	defer func() {
		close(c.done)
		c.server.log.Debug("WebSocket disconnected", "requestId", c.id)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.log.Warn("WebSocket error", "requestId", c.id, "err", err)
			}
			return
		}
		var reply outbound
		if messageType == websocket.BinaryMessage {
			reply = c.handleBinary(message)
		} else {
			reply = c.handleJSON(message)
		}
		select {
		case c.send <- reply:
		case <-c.done:
			return
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(msg.messageType, msg.data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *websocketClient) handleJSON(message []byte) outbound {
	var req wire.RotateRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return c.errorReply(c.id, fmt.Errorf("%w: decoding request: %v", rotator.ErrInvalidInput, err))
	}
	img, angle, err := req.Decode()
	if err != nil {
		return c.errorReply(c.id, err)
	}
	out, err := c.server.rotate(c.id, img, angle)
	if err != nil {
		return c.errorReply(c.id, err)
	}
	data, err := json.Marshal(wire.FromImage(out))
	if err != nil {
		return c.errorReply(c.id, err)
	}
	return outbound{websocket.TextMessage, data}
}

func (c *websocketClient) handleBinary(message []byte) outbound {
	frame, err := wire.UnmarshalFrame(message)
	if err != nil {
		return c.errorReply(c.id, fmt.Errorf("%w: %v", rotator.ErrInvalidInput, err))
	}
	id := frame.ID
	if id == "" {
		id = c.id
	}
	out, err := c.server.rotate(id, frame.Image(), frame.Angle)
	if err != nil {
		return c.errorReply(id, err)
	}
	return outbound{websocket.BinaryMessage, wire.NewResponseFrame(frame.ID, out).Marshal()}
}

func (c *websocketClient) errorReply(id string, err error) outbound {
	data, _ := json.Marshal(wire.ErrorResponse{Error: err.Error(), RequestID: id})
	return outbound{websocket.TextMessage, data}
}
