package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/echoflaresat/midnightline/metrics"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 8
)

// Hub is the WebSocket endpoint globe viewers connect to. It fans frames out
// to every client and forwards client commands to the host.
type Hub struct {
	log      *zap.Logger
	metrics  *metrics.Collector
	commands chan<- Command
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	last    *Frame
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// NewHub forwards decoded commands to commands. m may be nil.
func NewHub(log *zap.Logger, commands chan<- Command, m *metrics.Collector) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:      log,
		metrics:  m,
		commands: commands,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues f for every client. A client whose queue is full is
// disconnected.
func (h *Hub) Broadcast(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &f
	for c := range h.clients {
		select {
		case c.send <- f:
		default:
			h.log.Warn("dropping slow viewer", zap.String("remote", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and serves one viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan Frame, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- placed(*h.last)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.metrics.SetClients(n)
	h.log.Info("viewer connected", zap.String("remote", r.RemoteAddr), zap.Int("clients", n))

	go h.writeLoop(c)
	h.readLoop(c)
}

// placed returns f with its camera as an instant transition unless a move is
// already pending, so a viewer joining mid-run starts at the host camera.
func placed(f Frame) Frame {
	if f.Transition == nil {
		f.Transition = &TransitionJSON{Pose: f.Camera.Pose}
	}
	return f
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("viewer read failed", zap.Error(err))
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
			h.log.Warn("command queue full, dropping", zap.String("type", cmd.Type))
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for f := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(f); err != nil {
			h.log.Debug("viewer write failed", zap.Error(err))
			h.remove(c)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.SetClients(len(h.clients))
	h.log.Info("viewer disconnected", zap.Int("clients", len(h.clients)))
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
