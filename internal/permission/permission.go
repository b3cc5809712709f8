// Package permission decides whether a user may perform an action on a
// board. Decisions are pure functions of the (user, board) snapshot passed
// to New; callers must build a fresh evaluator whenever either changes,
// since permissions can be edited server-side and arrive via realtime sync.
package permission

import "boardsync/internal/model"

// Evaluator answers permission questions for one (user, board) snapshot.
type Evaluator struct {
	user  *model.User
	board *model.Board
}

// Gate is the composable gating contract: exactly one of Action, AnyOf or
// Predicate decides. Action wins over AnyOf, AnyOf over Predicate.
type Gate struct {
	Action    model.Action
	AnyOf     []model.Action
	Predicate func() bool
}

// New builds an evaluator. Either argument may be nil, in which case every
// check is denied.
func New(user *model.User, board *model.Board) *Evaluator {
	return &Evaluator{user: user, board: board}
}

// IsOwner reports whether the user is in the board's owner list.
func (e *Evaluator) IsOwner() bool {
	if e.user == nil || e.board == nil {
		return false
	}
	return contains(e.board.OwnerIDs, e.user.ID)
}

// IsMember reports whether the user is in the board's member list.
// Owners are not automatically members; the two lists are disjoint roles.
func (e *Evaluator) IsMember() bool {
	if e.user == nil || e.board == nil {
		return false
	}
	return contains(e.board.MemberIDs, e.user.ID)
}

// Can reports whether the user may perform the action. Owners may do
// everything; members only what the board's permission map grants; anyone
// else nothing.
func (e *Evaluator) Can(action model.Action) bool {
	if e.user == nil || e.board == nil {
		return false
	}
	if e.IsOwner() {
		return true
	}
	if !e.IsMember() {
		return false
	}
	return e.board.Permissions[action]
}

// CanAny reports whether at least one of the actions is permitted.
func (e *Evaluator) CanAny(actions ...model.Action) bool {
	for _, a := range actions {
		if e.Can(a) {
			return true
		}
	}
	return false
}

// Decide evaluates a Gate.
func (e *Evaluator) Decide(g Gate) bool {
	switch {
	case g.Action != "":
		return e.Can(g.Action)
	case len(g.AnyOf) > 0:
		return e.CanAny(g.AnyOf...)
	case g.Predicate != nil:
		return g.Predicate()
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
