package model

// Invitation statuses.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationRejected = "REJECTED"
)

// BoardInvitation is the board-specific part of an invitation.
type BoardInvitation struct {
	BoardID string `json:"boardId"`
	Status  string `json:"status"`
}

// Invitation mirrors the invitation resource carried by the invitation
// event: the inviter asked the invitee to join a board.
type Invitation struct {
	ID              string          `json:"_id"`
	InviterID       string          `json:"inviterId"`
	InviteeID       string          `json:"inviteeId"`
	Type            string          `json:"type"`
	BoardInvitation BoardInvitation `json:"boardInvitation"`
	Inviter         *User           `json:"inviter,omitempty"`
	Board           *Board          `json:"board,omitempty"`
	CreatedAt       int64           `json:"createdAt,omitempty"`
}
