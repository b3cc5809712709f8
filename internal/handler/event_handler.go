package handler

import (
	"net/http"

	"boardsync/internal/middleware"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	hub *realtime.Hub
}

func NewEventHandler(hub *realtime.Hub) *EventHandler {
	return &EventHandler{hub: hub}
}

// Publish relays a client's mutation broadcast into its room. The gateway
// does not inspect the payload; the aggregate inside is whatever the
// authoritative API returned to the emitting client.
func (h *EventHandler) Publish(c *gin.Context) {
	if _, exists := c.Get(middleware.UserIDKey); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var ev realtime.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event"})
		return
	}
	if ev.Type == "" || !validRoom(ev.Room) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event type and room are required"})
		return
	}

	h.hub.Publish(ev)
	c.JSON(http.StatusOK, gin.H{"delivered": true})
}
