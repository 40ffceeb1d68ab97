package services

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"kickoffAPI/internal/match"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// LiveHub pushes match results and leaderboard refresh hints to every
// connected websocket client. Only Run touches the client set.
type LiveHub struct {
	clients    map[*LiveClient]bool
	broadcast  chan []byte
	register   chan *LiveClient
	unregister chan *LiveClient
	done       chan struct{}
	count      atomic.Int64
}

func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients:    make(map[*LiveClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *LiveClient),
		unregister: make(chan *LiveClient),
		done:       make(chan struct{}),
	}
}

func (h *LiveHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.count.Store(int64(len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.count.Store(int64(len(h.clients)))

		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.count.Store(0)
			return
		}
	}
}

func (h *LiveHub) ClientCount() int {
	return int(h.count.Load())
}

func (h *LiveHub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("LiveHub: error marshalling payload:", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("LiveHub: broadcast buffer full, dropping message")
	}
}

type LivePayload struct {
	Action string       `json:"action"`
	Match  *match.Match `json:"match,omitempty"`
}

func (h *LiveHub) OnMatchScored(ctx context.Context, m *match.Match) {
	h.BroadcastJSON(LivePayload{Action: "match_result", Match: m})
	h.BroadcastJSON(LivePayload{Action: "leaderboard_updated"})
}

// Connect registers conn with the hub and starts its pumps.
func (h *LiveHub) Connect(conn *websocket.Conn) *LiveClient {
	client := &LiveClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}
	go client.writePump()
	go client.readPump()
	return client
}

type LiveClient struct {
	hub  *LiveHub
	conn *websocket.Conn
	send chan []byte
}

// readPump only drains control frames; clients never send data we act on.
func (c *LiveClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("LiveHub: read error: %v", err)
			}
			return
		}
	}
}

func (c *LiveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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
