package handler

import (
	"net/http"
	"strings"
	"time"

	"boardsync/internal/middleware"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	hub       *realtime.Hub
	heartbeat time.Duration
}

func NewStreamHandler(hub *realtime.Hub, heartbeat time.Duration) *StreamHandler {
	return &StreamHandler{hub: hub, heartbeat: heartbeat}
}

// Stream subscribes the caller to a room and serves its events over SSE.
// The subscription lives as long as the request: join on connect, leave on
// disconnect.
func (h *StreamHandler) Stream(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	room := c.Param("room")
	if !validRoom(room) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room name"})
		return
	}

	// A user room streams private notifications; only its owner may join.
	if strings.HasPrefix(room, "user:") && room != realtime.UserRoom(userID.(string)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to join this room"})
		return
	}

	h.hub.ServeSSE(c.Writer, c.Request, room, h.heartbeat)
}

func validRoom(room string) bool {
	for _, prefix := range []string{"board:", "card:", "user:"} {
		if strings.HasPrefix(room, prefix) && len(room) > len(prefix) {
			return true
		}
	}
	return false
}
