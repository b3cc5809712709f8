package model

// Action is a board action name as used in the board's permission map.
// The set is closed: the server only understands these names, and the
// permission evaluator treats anything else as denied for non-owners.
type Action string

const (
	ActionEditBoardTitle Action = "editBoardTitle"
	ActionDeleteBoard    Action = "deleteBoard"
	ActionInviteMember   Action = "inviteMember"

	ActionAddColumn       Action = "addColumn"
	ActionEditColumnTitle Action = "editColumnTitle"
	ActionMoveColumn      Action = "moveColumn"
	ActionDeleteColumn    Action = "deleteColumn"

	ActionAddCard             Action = "addCard"
	ActionMoveCard            Action = "moveCard"
	ActionDeleteCard          Action = "deleteCard"
	ActionEditCardTitle       Action = "editCardTitle"
	ActionEditCardDescription Action = "editCardDescription"
	ActionEditCardCover       Action = "editCardCover"
	ActionEditCardDates       Action = "editCardDates"
	ActionEditCardMembers     Action = "editCardMembers"
	ActionAddCardAttachment   Action = "addCardAttachment"
	ActionAddCardComment      Action = "addCardComment"
)

// KnownActions returns the closed enumeration of board actions.
func KnownActions() []Action {
	return []Action{
		ActionEditBoardTitle,
		ActionDeleteBoard,
		ActionInviteMember,
		ActionAddColumn,
		ActionEditColumnTitle,
		ActionMoveColumn,
		ActionDeleteColumn,
		ActionAddCard,
		ActionMoveCard,
		ActionDeleteCard,
		ActionEditCardTitle,
		ActionEditCardDescription,
		ActionEditCardCover,
		ActionEditCardDates,
		ActionEditCardMembers,
		ActionAddCardAttachment,
		ActionAddCardComment,
	}
}

// PermissionMap maps an action name to whether non-owner members may
// perform it. Owners are implicitly permitted regardless of this map.
type PermissionMap map[Action]bool
