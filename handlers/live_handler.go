package handlers

import (
	"log"
	"net/http"

	"kickoffAPI/services"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	hub *services.LiveHub
}

func NewLiveHandler(hub *services.LiveHub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
	}
}

// GET /api/v1/live/ws
func (h *LiveHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Could not upgrade connection: %v", err)
		return
	}

	h.hub.Connect(conn)
}
