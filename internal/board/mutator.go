// Package board implements the optimistic mutation flow for the active
// board: every operation awaits the authoritative server response, applies
// the result to the store, then rebroadcasts the updated aggregate so other
// clients in the board room converge. The store is never touched before the
// server has answered.
package board

import (
	"context"
	"sort"

	"boardsync/internal/client"
	"boardsync/internal/model"
	"boardsync/internal/realtime"
	"boardsync/internal/store"
)

// API is the slice of the REST client the mutation flow needs.
type API interface {
	UpdateBoardDetails(ctx context.Context, boardID string, req client.UpdateBoardRequest) (*model.Board, error)
	CreateColumn(ctx context.Context, req client.CreateColumnRequest) (*model.Column, error)
	UpdateColumnDetails(ctx context.Context, columnID string, req client.UpdateColumnRequest) (*model.Column, error)
	DeleteColumnDetails(ctx context.Context, columnID string) error
	CreateCard(ctx context.Context, req client.CreateCardRequest) (*model.Card, error)
	UpdateCardDetails(ctx context.Context, cardID string, patch client.CardPatch) (*model.Card, error)
	DeleteCardDetails(ctx context.Context, cardID string) error
	MoveCardToDifferentColumn(ctx context.Context, req client.MoveCardRequest) error
}

// Emitter broadcasts an event to the push channel. Fire-and-forget.
type Emitter interface {
	Emit(ctx context.Context, ev realtime.Event) error
}

type Mutator struct {
	store   *store.Store
	api     API
	emitter Emitter
}

func New(s *store.Store, api API, emitter Emitter) *Mutator {
	return &Mutator{store: s, api: api, emitter: emitter}
}

// broadcastBoard rebroadcasts the full active-board aggregate to the board
// room. Errors are dropped: the channel has no ack, and a client that
// missed the event refetches on next navigation.
func (m *Mutator) broadcastBoard(ctx context.Context) {
	board := m.store.ActiveBoard()
	if board == nil || m.emitter == nil {
		return
	}
	ev, err := realtime.NewEvent(realtime.EventBoardChanged, realtime.BoardRoom(board.ID), board)
	if err != nil {
		return
	}
	_ = m.emitter.Emit(ctx, ev)
}

func (m *Mutator) broadcastCard(ctx context.Context, card *model.Card) {
	if m.emitter == nil {
		return
	}
	ev, err := realtime.NewEvent(realtime.EventCardChanged, realtime.CardRoom(card.ID), card)
	if err != nil {
		return
	}
	_ = m.emitter.Emit(ctx, ev)
}

// MoveColumns persists a new column order after drag-and-drop, then applies
// it locally and broadcasts.
func (m *Mutator) MoveColumns(ctx context.Context, orderedColumnIDs []string) error {
	board := m.store.ActiveBoard()
	if board == nil {
		return ErrNoActiveBoard
	}

	_, err := m.api.UpdateBoardDetails(ctx, board.ID, client.UpdateBoardRequest{
		ColumnOrderIDs: orderedColumnIDs,
	})
	if err != nil {
		return err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		b.ColumnOrderIDs = append([]string(nil), orderedColumnIDs...)
		reorderColumns(b)
	})
	m.broadcastBoard(ctx)
	return nil
}

// MoveCardInColumn persists a new card order within one column, then
// applies it locally and broadcasts.
func (m *Mutator) MoveCardInColumn(ctx context.Context, columnID string, orderedCardIDs []string) error {
	board := m.store.ActiveBoard()
	if board == nil {
		return ErrNoActiveBoard
	}
	if board.FindColumn(columnID) == nil {
		return ErrColumnNotFound
	}

	_, err := m.api.UpdateColumnDetails(ctx, columnID, client.UpdateColumnRequest{
		CardOrderIDs: orderedCardIDs,
	})
	if err != nil {
		return err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		if col := b.FindColumn(columnID); col != nil {
			col.CardOrderIDs = append([]string(nil), orderedCardIDs...)
			reorderCards(col)
		}
	})
	m.broadcastBoard(ctx)
	return nil
}

// CardMove describes a cross-column drag: the card, both columns and both
// resulting orders. The API applies it transactionally server-side.
type CardMove struct {
	CardID            string
	SourceColumnID    string
	SourceColumnOrder []string
	DestColumnID      string
	DestColumnOrder   []string
}

// MoveCardBetweenColumns persists a cross-column move, then applies both
// column updates locally and broadcasts. Placeholder ids are stripped from
// the orders before they leave the client.
func (m *Mutator) MoveCardBetweenColumns(ctx context.Context, move CardMove) error {
	board := m.store.ActiveBoard()
	if board == nil {
		return ErrNoActiveBoard
	}
	if board.FindColumn(move.SourceColumnID) == nil || board.FindColumn(move.DestColumnID) == nil {
		return ErrColumnNotFound
	}
	_, card := board.FindCard(move.CardID)
	if card == nil {
		return ErrCardNotFound
	}

	err := m.api.MoveCardToDifferentColumn(ctx, client.MoveCardRequest{
		CardID:            move.CardID,
		SourceColumnID:    move.SourceColumnID,
		SourceColumnOrder: stripPlaceholderIDs(move.SourceColumnOrder),
		DestColumnID:      move.DestColumnID,
		DestColumnOrder:   stripPlaceholderIDs(move.DestColumnOrder),
	})
	if err != nil {
		return err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		src := b.FindColumn(move.SourceColumnID)
		dst := b.FindColumn(move.DestColumnID)
		if src == nil || dst == nil {
			return
		}

		var moved *model.Card
		kept := src.Cards[:0]
		for i := range src.Cards {
			if src.Cards[i].ID == move.CardID {
				moved = src.Cards[i].Clone()
				continue
			}
			kept = append(kept, src.Cards[i])
		}
		src.Cards = kept
		src.CardOrderIDs = stripPlaceholderIDs(move.SourceColumnOrder)
		ensurePlaceholder(src)

		if moved != nil {
			moved.ColumnID = dst.ID
			if dst.HasOnlyPlaceholder() {
				dst.Cards = nil
			}
			dst.Cards = append(dst.Cards, *moved)
			dst.CardOrderIDs = stripPlaceholderIDs(move.DestColumnOrder)
			reorderCards(dst)
		}
	})
	m.broadcastBoard(ctx)
	return nil
}

// UpdateCard sends a partial update to the generic card endpoint, merges
// the returned full card into the active board by id, and broadcasts.
func (m *Mutator) UpdateCard(ctx context.Context, cardID string, patch client.CardPatch) (*model.Card, error) {
	board := m.store.ActiveBoard()
	if board == nil {
		return nil, ErrNoActiveBoard
	}
	if _, card := board.FindCard(cardID); card == nil {
		return nil, ErrCardNotFound
	}

	updated, err := m.api.UpdateCardDetails(ctx, cardID, patch)
	if err != nil {
		return nil, err
	}

	m.store.MergeCardIntoBoard(updated)
	m.broadcastBoard(ctx)
	m.broadcastCard(ctx, updated)
	return updated, nil
}

// CreateCard persists a new card, inserts it locally (replacing the
// column's placeholder if present) and broadcasts.
func (m *Mutator) CreateCard(ctx context.Context, columnID, title string) (*model.Card, error) {
	board := m.store.ActiveBoard()
	if board == nil {
		return nil, ErrNoActiveBoard
	}
	if board.FindColumn(columnID) == nil {
		return nil, ErrColumnNotFound
	}

	created, err := m.api.CreateCard(ctx, client.CreateCardRequest{
		BoardID:  board.ID,
		ColumnID: columnID,
		Title:    title,
	})
	if err != nil {
		return nil, err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		col := b.FindColumn(columnID)
		if col == nil {
			return
		}
		if col.HasOnlyPlaceholder() {
			col.Cards = []model.Card{*created.Clone()}
			col.CardOrderIDs = []string{created.ID}
			return
		}
		col.Cards = append(col.Cards, *created.Clone())
		col.CardOrderIDs = append(col.CardOrderIDs, created.ID)
	})
	m.broadcastBoard(ctx)
	return created, nil
}

// DeleteCard removes a card server-side, takes it out of the local column
// (synthesizing the placeholder when the column empties) and broadcasts.
func (m *Mutator) DeleteCard(ctx context.Context, cardID string) error {
	board := m.store.ActiveBoard()
	if board == nil {
		return ErrNoActiveBoard
	}
	col, card := board.FindCard(cardID)
	if card == nil {
		return ErrCardNotFound
	}
	if card.Placeholder {
		// The sentinel only exists client-side; nothing to delete.
		return nil
	}

	if err := m.api.DeleteCardDetails(ctx, cardID); err != nil {
		return err
	}

	columnID := col.ID
	m.store.PatchActiveBoard(func(b *model.Board) {
		col := b.FindColumn(columnID)
		if col == nil {
			return
		}
		kept := col.Cards[:0]
		for i := range col.Cards {
			if col.Cards[i].ID != cardID {
				kept = append(kept, col.Cards[i])
			}
		}
		col.Cards = kept
		col.CardOrderIDs = removeID(col.CardOrderIDs, cardID)
		ensurePlaceholder(col)
	})
	m.broadcastBoard(ctx)
	return nil
}

// CreateColumn persists a new column, appends it locally with its
// placeholder card and broadcasts.
func (m *Mutator) CreateColumn(ctx context.Context, title string) (*model.Column, error) {
	board := m.store.ActiveBoard()
	if board == nil {
		return nil, ErrNoActiveBoard
	}

	created, err := m.api.CreateColumn(ctx, client.CreateColumnRequest{
		BoardID: board.ID,
		Title:   title,
	})
	if err != nil {
		return nil, err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		col := *created.Clone()
		ensurePlaceholder(&col)
		b.Columns = append(b.Columns, col)
		b.ColumnOrderIDs = append(b.ColumnOrderIDs, col.ID)
	})
	m.broadcastBoard(ctx)
	return created, nil
}

// DeleteColumn removes a column server-side, drops it locally and
// broadcasts.
func (m *Mutator) DeleteColumn(ctx context.Context, columnID string) error {
	board := m.store.ActiveBoard()
	if board == nil {
		return ErrNoActiveBoard
	}
	if board.FindColumn(columnID) == nil {
		return ErrColumnNotFound
	}

	if err := m.api.DeleteColumnDetails(ctx, columnID); err != nil {
		return err
	}

	m.store.PatchActiveBoard(func(b *model.Board) {
		kept := b.Columns[:0]
		for i := range b.Columns {
			if b.Columns[i].ID != columnID {
				kept = append(kept, b.Columns[i])
			}
		}
		b.Columns = kept
		b.ColumnOrderIDs = removeID(b.ColumnOrderIDs, columnID)
	})
	m.broadcastBoard(ctx)
	return nil
}

// ApplyRemoteBoard consumes a board-changed broadcast from another client.
// Returns whether the store accepted it (stale copies are rejected).
func (m *Mutator) ApplyRemoteBoard(b *model.Board) bool {
	active := m.store.ActiveBoard()
	if active == nil || active.ID != b.ID {
		return false
	}
	return m.store.ReplaceActiveBoard(b)
}

// ApplyRemoteCard consumes a card-changed broadcast from another client.
func (m *Mutator) ApplyRemoteCard(card *model.Card) {
	m.store.MergeCardIntoBoard(card)
}

// ensurePlaceholder gives an emptied column its sentinel card back.
func ensurePlaceholder(col *model.Column) {
	if len(col.Cards) > 0 {
		return
	}
	placeholder := model.NewPlaceholderCard(col)
	col.Cards = []model.Card{placeholder}
	col.CardOrderIDs = []string{placeholder.ID}
}

func stripPlaceholderIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !isPlaceholderID(id) {
			out = append(out, id)
		}
	}
	return out
}

func isPlaceholderID(id string) bool {
	n := len(model.PlaceholderCardSuffix)
	return len(id) > n && id[len(id)-n:] == model.PlaceholderCardSuffix
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func reorderColumns(b *model.Board) {
	rank := make(map[string]int, len(b.ColumnOrderIDs))
	for i, id := range b.ColumnOrderIDs {
		rank[id] = i
	}
	sort.SliceStable(b.Columns, func(i, j int) bool {
		return rank[b.Columns[i].ID] < rank[b.Columns[j].ID]
	})
}

func reorderCards(col *model.Column) {
	rank := make(map[string]int, len(col.CardOrderIDs))
	for i, id := range col.CardOrderIDs {
		rank[id] = i
	}
	sort.SliceStable(col.Cards, func(i, j int) bool {
		return rank[col.Cards[i].ID] < rank[col.Cards[j].ID]
	})
}
