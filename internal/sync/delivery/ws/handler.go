package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"event-prep-engine/pkg/log"
)

type Handler struct {
	l        log.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(l log.Logger, hub *Hub) *Handler {
	return &Handler{
		l:   l,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the app origin; same-device
			// native clients send no origin at all.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and starts the connection pumps.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "ws upgrade: %v", err)
		return
	}

	client := newClient(h.hub, h.l, conn)
	h.hub.register <- client

	go client.writePump()
	go client.readPump(c.Request.Context())
}

// MapRoutes registers the websocket endpoint.
func (h *Handler) MapRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Serve)
}
