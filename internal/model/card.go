package model

// PlaceholderCardSuffix is appended to a column id to derive the id of that
// column's placeholder card.
const PlaceholderCardSuffix = "-placeholder-card"

// CardDates is the card's due-date/reminder sub-record.
type CardDates struct {
	StartDate int64 `json:"startDate,omitempty"`
	DueDate   int64 `json:"dueDate,omitempty"`
	Reminder  int64 `json:"reminder,omitempty"`
	Completed bool  `json:"completed"`
}

// Attachment is a file attached to a card, stored by the API.
type Attachment struct {
	ID       string `json:"_id"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType,omitempty"`
	AddedAt  int64  `json:"addedAt,omitempty"`
}

// Comment is a user comment on a card.
type Comment struct {
	ID            string `json:"_id,omitempty"`
	UserID        string `json:"userId"`
	UserEmail     string `json:"userEmail,omitempty"`
	UserAvatar    string `json:"userAvatar,omitempty"`
	UserDisplayer string `json:"userDisplayName,omitempty"`
	Content       string `json:"content"`
	CommentedAt   int64  `json:"commentedAt,omitempty"`
}

// Card mirrors the card resource. Placeholder reports the client-side
// sentinel synthesized for empty columns so drag-and-drop target zones stay
// renderable; placeholder cards must never be sent to the server.
type Card struct {
	ID          string       `json:"_id"`
	BoardID     string       `json:"boardId"`
	ColumnID    string       `json:"columnId"`
	Title       string       `json:"title"`
	Completed   bool         `json:"completed"`
	Description string       `json:"description,omitempty"`
	Cover       string       `json:"cover,omitempty"`
	MemberIDs   []string     `json:"memberIds"`
	Dates       *CardDates   `json:"dates,omitempty"`
	Attachments []Attachment `json:"attachments"`
	Comments    []Comment    `json:"comments"`
	Placeholder bool         `json:"FE_PlaceholderCard,omitempty"`
}

// NewPlaceholderCard synthesizes the non-persisted sentinel card for an
// empty column. Its id is derived from the column id so repeated synthesis
// is stable.
func NewPlaceholderCard(col *Column) Card {
	return Card{
		ID:          col.ID + PlaceholderCardSuffix,
		BoardID:     col.BoardID,
		ColumnID:    col.ID,
		Placeholder: true,
	}
}

// Clone deep-copies the card.
func (c *Card) Clone() *Card {
	out := *c
	out.MemberIDs = append([]string(nil), c.MemberIDs...)
	out.Attachments = append([]Attachment(nil), c.Attachments...)
	out.Comments = append([]Comment(nil), c.Comments...)
	if c.Dates != nil {
		dates := *c.Dates
		out.Dates = &dates
	}
	return &out
}
