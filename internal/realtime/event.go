package realtime

import "encoding/json"

// Event names carried over the push channel. Payloads are JSON mirrors of
// the REST resources.
const (
	EventBoardChanged  = "boardChanged"
	EventColumnChanged = "columnChanged"
	EventCardChanged   = "cardChanged"
	EventInvitation    = "boardInvitation"
)

// Event is one message on the push channel, scoped to a room.
type Event struct {
	Type    string          `json:"type"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent marshals payload into an Event. Marshal failures are returned to
// the caller; the channel itself is fire-and-forget.
func NewEvent(eventType, room string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Room: room, Payload: data}, nil
}

// Rooms scope server-side fan-out, not authorization: a client joins a
// board room while the board view is mounted, a card room while the card
// detail view is open, and its own user room for live notifications.
func BoardRoom(boardID string) string { return "board:" + boardID }
func CardRoom(cardID string) string   { return "card:" + cardID }
func UserRoom(userID string) string   { return "user:" + userID }
