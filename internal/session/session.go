// Package session ties the client core together per view lifecycle: opening
// a board view fetches the aggregate, installs it in the store and joins
// the board room; closing the view tears the slot down and leaves the room.
// Join and leave are strictly paired through the subscription handle, so
// room membership never leaks across navigations.
package session

import (
	"context"
	"encoding/json"

	"boardsync/internal/board"
	"boardsync/internal/client"
	"boardsync/internal/model"
	"boardsync/internal/permission"
	"boardsync/internal/realtime"
	"boardsync/internal/store"
)

// API is the REST surface a session needs: the mutation endpoints plus the
// wholesale board fetch. *client.Client satisfies it.
type API interface {
	board.API
	FetchBoardDetails(ctx context.Context, boardID string) (*model.Board, error)
}

// Channel is the push-channel surface a session needs. *realtime.Bridge
// satisfies it.
type Channel interface {
	Join(ctx context.Context, room string) (*realtime.Subscription, error)
	Emit(ctx context.Context, ev realtime.Event) error
}

type Session struct {
	store   *store.Store
	api     API
	channel Channel
}

func New(s *store.Store, api API, channel Channel) *Session {
	return &Session{store: s, api: api, channel: channel}
}

// Store exposes the shared state slots.
func (s *Session) Store() *store.Store { return s.store }

// Permissions builds a fresh evaluator over the current snapshot. No
// caching: permissions may change server-side and arrive via the board
// room, so every gating decision re-reads the slots.
func (s *Session) Permissions() *permission.Evaluator {
	return permission.New(s.store.CurrentUser(), s.store.ActiveBoard())
}

// BoardView is a mounted board view: the active-board slot plus the board
// room subscription. Close is idempotent.
type BoardView struct {
	session *Session
	mutator *board.Mutator
	sub     *realtime.Subscription
}

// OpenBoard mounts a board view: fetch the aggregate, install it, join the
// board room and start consuming remote broadcasts.
func (s *Session) OpenBoard(ctx context.Context, boardID string) (*BoardView, error) {
	fetched, err := s.api.FetchBoardDetails(ctx, boardID)
	if err != nil {
		return nil, err
	}
	s.store.InitActiveBoard(fetched)

	mutator := board.New(s.store, s.api, s.channel)

	sub, err := s.channel.Join(ctx, realtime.BoardRoom(boardID))
	if err != nil {
		s.store.TeardownActiveBoard()
		return nil, err
	}

	sub.On(realtime.EventBoardChanged, func(ev realtime.Event) {
		var remote model.Board
		if err := json.Unmarshal(ev.Payload, &remote); err == nil {
			mutator.ApplyRemoteBoard(&remote)
		}
	})
	sub.On(realtime.EventCardChanged, func(ev realtime.Event) {
		var remote model.Card
		if err := json.Unmarshal(ev.Payload, &remote); err == nil {
			mutator.ApplyRemoteCard(&remote)
		}
	})

	return &BoardView{session: s, mutator: mutator, sub: sub}, nil
}

// Mutator exposes the optimistic mutation flow for this view.
func (v *BoardView) Mutator() *board.Mutator { return v.mutator }

// Close unmounts the view: leave the room, then discard the slot.
func (v *BoardView) Close() {
	v.sub.Close()
	v.session.store.TeardownActiveBoard()
}

// CardView is a mounted card detail view within a board view.
type CardView struct {
	session *Session
	sub     *realtime.Subscription
}

// OpenCard mounts the card detail view: install the active card and join
// the card room so edits by others land live.
func (s *Session) OpenCard(ctx context.Context, cardID string) (*CardView, error) {
	active := s.store.ActiveBoard()
	if active == nil {
		return nil, board.ErrNoActiveBoard
	}
	_, card := active.FindCard(cardID)
	if card == nil {
		return nil, board.ErrCardNotFound
	}
	s.store.SetActiveCard(card)

	sub, err := s.channel.Join(ctx, realtime.CardRoom(cardID))
	if err != nil {
		s.store.SetActiveCard(nil)
		return nil, err
	}

	sub.On(realtime.EventCardChanged, func(ev realtime.Event) {
		var remote model.Card
		if err := json.Unmarshal(ev.Payload, &remote); err == nil {
			s.store.MergeCardIntoBoard(&remote)
		}
	})

	return &CardView{session: s, sub: sub}, nil
}

// Close unmounts the card detail view.
func (v *CardView) Close() {
	v.sub.Close()
	v.session.store.SetActiveCard(nil)
}

// NotificationFeed is the user's live notification stream.
type NotificationFeed struct {
	sub *realtime.Subscription
}

// OpenNotifications joins the current user's room and invokes onInvitation
// for every invitation pushed by the gateway.
func (s *Session) OpenNotifications(ctx context.Context, onInvitation func(model.Notification)) (*NotificationFeed, error) {
	user := s.store.CurrentUser()
	if user == nil {
		return nil, client.ErrSessionExpired
	}

	sub, err := s.channel.Join(ctx, realtime.UserRoom(user.ID))
	if err != nil {
		return nil, err
	}

	sub.On(realtime.EventInvitation, func(ev realtime.Event) {
		var n model.Notification
		if err := json.Unmarshal(ev.Payload, &n); err == nil {
			onInvitation(n)
		}
	})

	return &NotificationFeed{sub: sub}, nil
}

// Close leaves the user room.
func (f *NotificationFeed) Close() {
	f.sub.Close()
}
