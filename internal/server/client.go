package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket keepalive timings.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 8
)

type message struct {
	Type string `json:"type"`
}

var reloadMessage = message{Type: "reload"}

// client is one live-reload connection.
type client struct {
	conn *websocket.Conn
	send chan message
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan message, sendBuffer)}
	s.register(c)

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
	s.log.Debug("Client connected", zap.Int("clients", len(s.clients)))
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
		s.log.Debug("Client disconnected", zap.Int("clients", len(s.clients)))
	}
}

// broadcast queues msg for every client and returns how many received it.
// A client whose buffer is full is dropped.
func (s *Server) broadcast(msg message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent := 0
	for c := range s.clients {
		select {
		case c.send <- msg:
			sent++
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}
	return sent
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

// readPump discards incoming messages and keeps the read deadline fresh.
// It unregisters the client when the connection ends.
func (s *Server) readPump(c *client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				s.log.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump sends queued messages and pings until the send channel closes.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				s.log.Debug("WebSocket write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
