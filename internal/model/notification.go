package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds.
const (
	NotificationBoardInvitation = "board_invitation"
)

// Notification is the gateway-persisted record behind a live notification,
// so an invitee who was offline still sees the invitation on next login.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Kind      string    `gorm:"not null" json:"kind"`
	BoardID   string    `gorm:"index" json:"boardId,omitempty"`
	InviterID string    `json:"inviterId,omitempty"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"not null" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
