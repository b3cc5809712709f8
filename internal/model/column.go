package model

// Column mirrors the column resource: an ordered container of cards
// belonging to exactly one board.
type Column struct {
	ID           string   `json:"_id"`
	BoardID      string   `json:"boardId"`
	Title        string   `json:"title"`
	CardOrderIDs []string `json:"cardOrderIds"`
	Cards        []Card   `json:"cards"`
}

// RealCards returns the column's cards with any placeholder filtered out.
// Card-count statistics must be derived from this, never from len(Cards).
func (c *Column) RealCards() []Card {
	out := make([]Card, 0, len(c.Cards))
	for _, card := range c.Cards {
		if !card.Placeholder {
			out = append(out, card)
		}
	}
	return out
}

// HasOnlyPlaceholder reports whether the column is empty apart from the
// front-end placeholder sentinel.
func (c *Column) HasOnlyPlaceholder() bool {
	return len(c.Cards) == 1 && c.Cards[0].Placeholder
}

// Clone deep-copies the column and its cards.
func (c *Column) Clone() *Column {
	out := *c
	out.CardOrderIDs = append([]string(nil), c.CardOrderIDs...)
	out.Cards = make([]Card, len(c.Cards))
	for i := range c.Cards {
		out.Cards[i] = *c.Cards[i].Clone()
	}
	return &out
}
