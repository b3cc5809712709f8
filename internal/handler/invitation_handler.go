package handler

import (
	"context"
	"fmt"
	"net/http"

	"boardsync/internal/middleware"
	"boardsync/internal/model"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationStore is the persistence the invitation/notification handlers
// need.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type InvitationHandler struct {
	notificationRepo NotificationStore
	hub              *realtime.Hub
}

func NewInvitationHandler(notificationRepo NotificationStore, hub *realtime.Hub) *InvitationHandler {
	return &InvitationHandler{notificationRepo: notificationRepo, hub: hub}
}

type InviteRequest struct {
	InviteeID   string `json:"inviteeId" binding:"required"`
	BoardID     string `json:"boardId" binding:"required"`
	BoardTitle  string `json:"boardTitle"`
	InviterName string `json:"inviterName"`
}

// Invite persists a notification for the invitee and pushes the invitation
// event to the invitee's user room, so an online invitee sees it live
// without polling.
func (h *InvitationHandler) Invite(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	inviterID := userID.(string)

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	inviter := req.InviterName
	if inviter == "" {
		inviter = "Someone"
	}
	boardName := req.BoardTitle
	if boardName == "" {
		boardName = "a board"
	}

	notification := &model.Notification{
		UserID:    req.InviteeID,
		Kind:      model.NotificationBoardInvitation,
		BoardID:   req.BoardID,
		InviterID: inviterID,
		Message:   fmt.Sprintf("%s invited you to %s", inviter, boardName),
	}

	if err := h.notificationRepo.Create(c.Request.Context(), notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store notification"})
		return
	}

	ev, err := realtime.NewEvent(realtime.EventInvitation, realtime.UserRoom(req.InviteeID), notification)
	if err == nil {
		h.hub.Publish(ev)
	}

	c.JSON(http.StatusCreated, notification)
}
