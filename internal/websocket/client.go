package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16

	// Clients are listen-only: anything beyond a control frame is noise.
	maxInboundBytes = 512
)

// Client is one browser subscription to a workspace's invalidation stream.
// It never carries client->server messages; the read pump exists only to
// drain control frames and notice disconnects.
type Client struct {
	id          string
	workspaceID uuid.UUID
	conn        *websocket.Conn
	hub         *Hub

	outbound chan []byte
	done     chan struct{}
	stop     sync.Once
}

// NewClient wraps an upgraded connection for the given workspace.
func NewClient(conn *websocket.Conn, workspaceID uuid.UUID, hub *Hub) *Client {
	return &Client{
		id:          uuid.New().String(),
		workspaceID: workspaceID,
		conn:        conn,
		hub:         hub,
		outbound:    make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) WorkspaceID() uuid.UUID { return c.workspaceID }

// Send queues one event frame. A closed client, or one whose buffer is
// full because the peer stopped reading, reports ErrClientClosed; the hub
// treats both the same way.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	case c.outbound <- data:
		return nil
	default:
		return ErrClientClosed
	}
}

// Close tears down the connection. Safe to call from either pump or the
// hub concurrently.
func (c *Client) Close() error {
	var err error
	c.stop.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// ReadPump drains the connection until the peer goes away, keeping the
// read deadline fresh via pongs. Run in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("workspace_id", c.workspaceID.String()).
					Msg("WebSocket closed unexpectedly")
			}
			return
		}
	}
}

// WritePump delivers queued frames and pings the peer. Run in its own
// goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.outbound:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("workspace_id", c.workspaceID.String()).
					Msg("WebSocket write failed")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
