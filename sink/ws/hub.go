// Package ws broadcasts game notices to WebSocket spectators.
//
// Hub sits on both sides of the wire: it implements core.EventSink for the
// engine and http.Handler for the serving mux. Every published notice is
// encoded as one JSON text message and fanned out to all connected
// spectators. Spectators are read-only; anything they send is discarded.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/logging"
)

// broadcastBuffer bounds how many pending notices the hub queues before it
// starts dropping. The game produces notices far slower than a local write
// loop drains them, so the bound only matters when every spectator stalls.
const broadcastBuffer = 64

// HubOptions configures the spectator hub.
type HubOptions struct {
	// Logger reports connection churn and write failures.
	// Defaults to a no-op logger.
	Logger logging.Logger

	// CheckOrigin overrides the upgrader origin policy. Nil keeps the
	// gorilla default (same host only).
	CheckOrigin func(r *http.Request) bool
}

// Hub fans game notices out to every connected WebSocket spectator.
//
// The engine publishes into a buffered channel and never blocks on a slow
// client; a stalled spectator loses its connection rather than the game
// losing time. Close disconnects all spectators and stops the hub.
type Hub struct {
	upgrader websocket.Upgrader
	logger   logging.Logger

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

var _ core.EventSink = (*Hub)(nil)
var _ http.Handler = (*Hub)(nil)

// NewHub creates a spectator hub and starts its dispatch loop.
func NewHub(optFns ...func(o *HubOptions)) *Hub {
	opts := HubOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &Hub{
		upgrader:   websocket.Upgrader{CheckOrigin: opts.CheckOrigin},
		logger:     opts.Logger,
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*websocket.Conn]struct{}),
	}
	go h.run()
	return h
}

// Publish implements core.EventSink. The notice is queued for broadcast;
// when the queue is full or the hub is closed it is dropped with a warning.
func (h *Hub) Publish(n core.Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("encode notice", "kind", string(n.Kind), "error", err.Error())
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.logger.Warn("broadcast queue full, notice dropped", "kind", string(n.Kind))
	}
}

// ServeHTTP upgrades the request and registers the spectator. The read loop
// exists only to detect disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ClientCount reports the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every spectator and stops the dispatch loop. It is safe
// to call more than once; Publish after Close is a no-op.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("spectator connected", "total", total)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("spectator disconnected", "total", total)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.logger.Warn("spectator write failed, dropping connection", "error", err.Error())
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
			}
			h.clients = make(map[*websocket.Conn]struct{})
			h.mu.Unlock()
			return
		}
	}
}
