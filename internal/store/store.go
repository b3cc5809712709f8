// Package store owns the client's shared mutable state: the current user,
// the active board and the active card. All mutation goes through the named
// actions below; reads hand out deep clones. A mutex serializes dispatches,
// which is all the coordination the single-page flow needs.
package store

import (
	"sort"
	"sync"

	"boardsync/internal/model"
)

type Store struct {
	mu          sync.RWMutex
	currentUser *model.User
	activeBoard *model.Board
	activeCard  *model.Card
}

func New() *Store {
	return &Store{}
}

// SetCurrentUser replaces the current-user slot.
func (s *Store) SetCurrentUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.currentUser = nil
		return
	}
	copied := *u
	s.currentUser = &copied
}

// ClearCurrentUser empties the current-user slot (logout).
func (s *Store) ClearCurrentUser() {
	s.SetCurrentUser(nil)
}

// CurrentUser returns a copy of the current user, or nil.
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	copied := *s.currentUser
	return &copied
}

// InitActiveBoard installs a freshly fetched board aggregate: the board is
// deep-cloned, columns and cards are sorted into their order arrays, and
// empty columns get a placeholder card so drop targets stay renderable.
func (s *Store) InitActiveBoard(b *model.Board) {
	board := b.Clone()
	sortColumnsByOrder(board)
	for i := range board.Columns {
		col := &board.Columns[i]
		if len(col.Cards) == 0 {
			placeholder := model.NewPlaceholderCard(col)
			col.Cards = []model.Card{placeholder}
			col.CardOrderIDs = []string{placeholder.ID}
		} else {
			sortCardsByOrder(col)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBoard = board
}

// ReplaceActiveBoard overwrites the active board with a remote copy, unless
// the remote copy is staler than what we already hold. Returns whether the
// replacement was applied.
func (s *Store) ReplaceActiveBoard(b *model.Board) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeBoard != nil && b != nil &&
		s.activeBoard.UpdatedAt != 0 && b.UpdatedAt != 0 &&
		b.UpdatedAt < s.activeBoard.UpdatedAt {
		return false
	}
	s.activeBoard = b.Clone()
	return true
}

// PatchActiveBoard applies fn to the held board in place. No-op when no
// board is active.
func (s *Store) PatchActiveBoard(fn func(*model.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeBoard == nil {
		return
	}
	fn(s.activeBoard)
}

// ActiveBoard returns a deep clone of the active board, or nil.
func (s *Store) ActiveBoard() *model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeBoard.Clone()
}

// TeardownActiveBoard discards the active board and card on navigation away.
func (s *Store) TeardownActiveBoard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBoard = nil
	s.activeCard = nil
}

// SetActiveCard installs the card open in the detail view.
func (s *Store) SetActiveCard(c *model.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.activeCard = nil
		return
	}
	s.activeCard = c.Clone()
}

// ActiveCard returns a deep clone of the active card, or nil.
func (s *Store) ActiveCard() *model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeCard == nil {
		return nil
	}
	return s.activeCard.Clone()
}

// MergeCardIntoBoard merges a server-returned card into the active board's
// matching column by identifier, and refreshes the active card if it is the
// same card. Applying the same merge twice is idempotent.
func (s *Store) MergeCardIntoBoard(card *model.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeBoard == nil || card == nil {
		return
	}
	col := s.activeBoard.FindColumn(card.ColumnID)
	if col != nil {
		for i := range col.Cards {
			if col.Cards[i].ID == card.ID {
				col.Cards[i] = *card.Clone()
				break
			}
		}
	}
	if s.activeCard != nil && s.activeCard.ID == card.ID {
		s.activeCard = card.Clone()
	}
}

func sortColumnsByOrder(b *model.Board) {
	rank := indexByID(b.ColumnOrderIDs)
	sort.SliceStable(b.Columns, func(i, j int) bool {
		return rank[b.Columns[i].ID] < rank[b.Columns[j].ID]
	})
}

func sortCardsByOrder(col *model.Column) {
	rank := indexByID(col.CardOrderIDs)
	sort.SliceStable(col.Cards, func(i, j int) bool {
		return rank[col.Cards[i].ID] < rank[col.Cards[j].ID]
	})
}

func indexByID(ids []string) map[string]int {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	return rank
}
