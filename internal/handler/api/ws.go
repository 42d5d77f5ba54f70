package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	domrepo "SigBoard/internal/domain/repository"
	xlogger "SigBoard/pkg/logger"
	"SigBoard/pkg/poll"
)

const (
	wsWriteWait = 5 * time.Second
	wsPongWait  = 60 * time.Second
)

// wsClient serializes all writes to one connection. gorilla/websocket
// forbids concurrent writers, and a freshly registered conn can receive its
// initial frame while a broadcast is in flight.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(messageType int, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteMessage(messageType, payload)
}

// WSHub pushes each applied board view to every connected WebSocket client.
// A client that cannot keep up within the write deadline is dropped rather
// than allowed to stall the broadcast.
type WSHub struct {
	log      *xlogger.Logger
	metrics  domrepo.Metrics
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	last    []byte
	closed  bool
}

func NewWSHub(log *xlogger.Logger, metrics domrepo.Metrics) *WSHub {
	return &WSHub{
		log:     log,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// ServeWS upgrades the connection and registers it with the hub. The client
// immediately receives the most recent view, if one exists.
func (h *WSHub) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	client := &wsClient{conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return nil
	}
	h.clients[client] = struct{}{}
	last := h.last
	h.mu.Unlock()

	h.metrics.WSClientConnected()

	if last != nil {
		if err := client.write(websocket.TextMessage, last); err != nil {
			h.drop(client)
			return nil
		}
	}

	go h.readLoop(client)
	return nil
}

// Broadcast marshals the view once and fans it out to every client.
func (h *WSHub) Broadcast(v poll.View) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error("view marshal failed", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.last = payload
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.write(websocket.TextMessage, payload); err != nil {
			h.drop(client)
		}
	}
}

// Close disconnects every client and rejects further registrations.
func (h *WSHub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*wsClient]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		client.write(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		client.conn.Close()
		h.metrics.WSClientDisconnected()
	}
}

// readLoop drains inbound frames so pings are answered and disconnects are
// noticed. Clients are not expected to send application messages.
func (h *WSHub) readLoop(client *wsClient) {
	conn := client.conn
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(client)
			return
		}
	}
}

func (h *WSHub) drop(client *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	client.conn.Close()
	if ok {
		h.metrics.WSClientDisconnected()
	}
}
