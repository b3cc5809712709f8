package store_test

import (
	"testing"

	"boardsync/internal/model"
	"boardsync/internal/store"

	"github.com/stretchr/testify/assert"
)

func boardFixture() *model.Board {
	return &model.Board{
		ID:             "b1",
		Title:          "Project",
		OwnerIDs:       []string{"u1"},
		MemberIDs:      []string{"u2"},
		ColumnOrderIDs: []string{"c2", "c1"},
		Columns: []model.Column{
			{
				ID:           "c1",
				BoardID:      "b1",
				Title:        "Done",
				CardOrderIDs: []string{"card2", "card1"},
				Cards: []model.Card{
					{ID: "card1", BoardID: "b1", ColumnID: "c1", Title: "One"},
					{ID: "card2", BoardID: "b1", ColumnID: "c1", Title: "Two"},
				},
			},
			{
				ID:      "c2",
				BoardID: "b1",
				Title:   "Todo",
			},
		},
	}
}

func TestInitActiveBoard_SortsAndInjectsPlaceholder(t *testing.T) {
	// Arrange
	s := store.New()

	// Act
	s.InitActiveBoard(boardFixture())
	board := s.ActiveBoard()

	// Assert: колонки отсортированы по columnOrderIds
	assert.Equal(t, "c2", board.Columns[0].ID)
	assert.Equal(t, "c1", board.Columns[1].ID)

	// Пустая колонка получила карточку-заглушку
	empty := board.FindColumn("c2")
	assert.True(t, empty.HasOnlyPlaceholder())
	assert.Equal(t, "c2-placeholder-card", empty.Cards[0].ID)
	assert.Equal(t, []string{"c2-placeholder-card"}, empty.CardOrderIDs)
	assert.Empty(t, empty.RealCards())

	// Карточки отсортированы по cardOrderIds
	done := board.FindColumn("c1")
	assert.Equal(t, "card2", done.Cards[0].ID)
	assert.Equal(t, "card1", done.Cards[1].ID)
	assert.Len(t, done.RealCards(), 2)
}

func TestActiveBoard_ReturnsClone(t *testing.T) {
	s := store.New()
	s.InitActiveBoard(boardFixture())

	// Мутация снапшота не должна затрагивать состояние стора
	snapshot := s.ActiveBoard()
	snapshot.Title = "changed"
	snapshot.Columns[0].Title = "changed"

	assert.Equal(t, "Project", s.ActiveBoard().Title)
	assert.NotEqual(t, "changed", s.ActiveBoard().Columns[0].Title)
}

func TestReplaceActiveBoard_RejectsStaleRemote(t *testing.T) {
	// Arrange
	s := store.New()
	local := boardFixture()
	local.UpdatedAt = 200
	s.InitActiveBoard(local)

	// Act: запоздавшая рассылка со старой версией доски
	stale := boardFixture()
	stale.Title = "stale"
	stale.UpdatedAt = 100
	applied := s.ReplaceActiveBoard(stale)

	// Assert
	assert.False(t, applied)
	assert.Equal(t, "Project", s.ActiveBoard().Title)

	// Более свежая копия применяется
	fresh := boardFixture()
	fresh.Title = "fresh"
	fresh.UpdatedAt = 300
	assert.True(t, s.ReplaceActiveBoard(fresh))
	assert.Equal(t, "fresh", s.ActiveBoard().Title)
}

func TestReplaceActiveBoard_ZeroTimestampAlwaysApplies(t *testing.T) {
	s := store.New()
	s.InitActiveBoard(boardFixture())

	// Сервер без updatedAt, проверка давности пропускается
	remote := boardFixture()
	remote.Title = "no timestamp"
	assert.True(t, s.ReplaceActiveBoard(remote))
	assert.Equal(t, "no timestamp", s.ActiveBoard().Title)
}

func TestMergeCardIntoBoard_Idempotent(t *testing.T) {
	// Arrange
	s := store.New()
	s.InitActiveBoard(boardFixture())

	updated := &model.Card{
		ID:          "card1",
		BoardID:     "b1",
		ColumnID:    "c1",
		Title:       "One (edited)",
		Description: "now with a description",
	}

	// Act: применяем один и тот же merge дважды
	s.MergeCardIntoBoard(updated)
	once := s.ActiveBoard()
	s.MergeCardIntoBoard(updated)
	twice := s.ActiveBoard()

	// Assert
	assert.Equal(t, once, twice)
	_, card := once.FindCard("card1")
	assert.Equal(t, "One (edited)", card.Title)
	assert.Equal(t, "now with a description", card.Description)
}

func TestMergeCardIntoBoard_RefreshesActiveCard(t *testing.T) {
	s := store.New()
	s.InitActiveBoard(boardFixture())
	s.SetActiveCard(&model.Card{ID: "card1", ColumnID: "c1", Title: "One"})

	s.MergeCardIntoBoard(&model.Card{ID: "card1", ColumnID: "c1", Title: "One (edited)"})

	assert.Equal(t, "One (edited)", s.ActiveCard().Title)
}

func TestTeardownActiveBoard(t *testing.T) {
	s := store.New()
	s.InitActiveBoard(boardFixture())
	s.SetActiveCard(&model.Card{ID: "card1", ColumnID: "c1"})

	s.TeardownActiveBoard()

	assert.Nil(t, s.ActiveBoard())
	assert.Nil(t, s.ActiveCard())
}

func TestCurrentUserLifecycle(t *testing.T) {
	s := store.New()
	assert.Nil(t, s.CurrentUser())

	s.SetCurrentUser(&model.User{ID: "u1", Email: "u1@example.com"})
	assert.Equal(t, "u1", s.CurrentUser().ID)

	s.ClearCurrentUser()
	assert.Nil(t, s.CurrentUser())
}
