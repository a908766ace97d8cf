// Package notify pushes server events (draft progress, new messages,
// quote updates) to connected clients over WebSocket. Events fan out
// through a Redis channel so every instance delivers to its own sockets.
package notify

import (
	"log"
	"net/http"
	"sync"

	"github.com/collecokzn-creator/colleco-mvp-sub004/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type broadcastMsg struct {
	UserID string // empty means deliver to everyone
	Data   []byte
}

type Hub struct {
	users      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.users[c.UserID] == nil {
				h.users[c.UserID] = make(map[*Client]bool)
			}
			h.users[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.users[c.UserID]; conns != nil {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			if m.UserID == "" {
				for _, conns := range h.users {
					h.deliver(conns, m.Data)
				}
			} else {
				h.deliver(h.users[m.UserID], m.Data)
			}
			h.mu.Unlock()
		}
	}
}

// caller holds h.mu
func (h *Hub) deliver(conns map[*Client]bool, data []byte) {
	for c := range conns {
		select {
		case c.Send <- data:
		default:
			close(c.Send)
			delete(conns, c)
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and keeps it registered until
// the peer goes away. Browsers cannot set headers on WebSocket requests,
// so the token also comes in as a query parameter.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			if tok := r.URL.Query().Get("token"); tok != "" {
				tokenString = "Bearer " + tok
			}
		}
		claims, err := middleware.ValidateJWT(tokenString)
		if err != nil || claims.UserID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: claims.UserID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump discards client frames; the socket is push only. Reading is
// still required to notice disconnects and answer pings.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
