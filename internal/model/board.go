package model

// Board visibility types.
const (
	BoardTypePublic  = "public"
	BoardTypePrivate = "private"
)

// Board mirrors the full board aggregate returned by the REST API: the
// board itself plus its columns and their cards, nested wholesale. The
// client holds exactly one of these at a time (the active board).
type Board struct {
	ID             string        `json:"_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Type           string        `json:"type"`
	OwnerIDs       []string      `json:"ownerIds"`
	MemberIDs      []string      `json:"memberIds"`
	Permissions    PermissionMap `json:"permissions"`
	ColumnOrderIDs []string      `json:"columnOrderIds"`
	Columns        []Column      `json:"columns"`
	UpdatedAt      int64         `json:"updatedAt,omitempty"`
}

// FindColumn returns a pointer into the board's column slice, or nil.
func (b *Board) FindColumn(columnID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i]
		}
	}
	return nil
}

// FindCard returns the column holding the card and the card itself, or nils.
func (b *Board) FindCard(cardID string) (*Column, *Card) {
	for i := range b.Columns {
		for j := range b.Columns[i].Cards {
			if b.Columns[i].Cards[j].ID == cardID {
				return &b.Columns[i], &b.Columns[i].Cards[j]
			}
		}
	}
	return nil, nil
}

// Clone deep-copies the aggregate. Store snapshots and optimistic patches
// always operate on clones so callers never alias store-owned memory.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := *b
	out.OwnerIDs = append([]string(nil), b.OwnerIDs...)
	out.MemberIDs = append([]string(nil), b.MemberIDs...)
	out.ColumnOrderIDs = append([]string(nil), b.ColumnOrderIDs...)
	if b.Permissions != nil {
		out.Permissions = make(PermissionMap, len(b.Permissions))
		for k, v := range b.Permissions {
			out.Permissions[k] = v
		}
	}
	out.Columns = make([]Column, len(b.Columns))
	for i := range b.Columns {
		out.Columns[i] = *b.Columns[i].Clone()
	}
	return &out
}
