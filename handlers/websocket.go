package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emrekoco/syncarena/syncarena-backend/config"
	"github.com/emrekoco/syncarena/syncarena-backend/game"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1 << 20 // 1MB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler bundles the dependencies of the HTTP and websocket endpoints.
type Handler struct {
	hub      *game.Hub
	registry *game.Registry
	rooms    *game.RoomIndex
	cfg      *config.Config
	log      *zap.SugaredLogger
}

func New(hub *game.Hub, registry *game.Registry, rooms *game.RoomIndex, cfg *config.Config, log *zap.SugaredLogger) *Handler {
	return &Handler{hub: hub, registry: registry, rooms: rooms, cfg: cfg, log: log}
}

// Connection wraps one websocket with its outbound queue. It satisfies
// game.Client; the hub never touches the socket directly.
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	id        string
	closeOnce sync.Once
	log       *zap.SugaredLogger
}

func (c *Connection) ID() string { return c.id }

// Send queues a payload without blocking. A connection that cannot keep
// up loses messages instead of stalling the hub loop.
func (c *Connection) Send(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.log.Warnf("Send buffer full for %s, dropping message", c.id)
	}
}

// Close shuts the outbound queue, which ends the write pump and closes
// the socket.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// WsHandler upgrades the request and runs the connection's pumps. The
// connection id is minted here; clients learn theirs from the your_id
// event.
func (h *Handler) WsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("Upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ws:   ws,
		send: make(chan []byte, 256),
		id:   uuid.New().String(),
		log:  h.log,
	}

	h.hub.Register(conn)

	go conn.writePump(h.cfg.PingInterval)
	conn.readPump(h.hub, h.cfg.PongTimeout)
}

func (c *Connection) readPump(hub *game.Hub, pongTimeout time.Duration) {
	defer func() {
		hub.Unregister(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warnf("Read error on %s: %v", c.id, err)
			}
			return
		}
		hub.Dispatch(c.id, message)
	}
}

func (c *Connection) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
