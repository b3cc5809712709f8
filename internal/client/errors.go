package client

import (
	"errors"
	"fmt"
)

// ErrForbidden marks an authorization denial. Callers suppress it silently:
// a member who lost access gets no toast, the view simply stops rendering
// the gated controls.
var ErrForbidden = errors.New("forbidden")

// ErrSessionExpired is returned after the shared refresh attempt failed and
// the forced-logout handler has run.
var ErrSessionExpired = errors.New("session expired")

// APIError is the server's error envelope: a status code and a message
// string. Message has already been passed through the known-message
// catalog, so it is safe to show to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// knownMessages is the fixed catalog of server error messages the client
// recognizes, mapped to user-facing text. Anything not in the catalog is
// shown verbatim.
var knownMessages = map[string]string{
	"Your email or password is incorrect!":           "Incorrect email or password.",
	"Your email has not been verified!":              "Please verify your email before signing in.",
	"Your account has been locked!":                  "This account is locked. Contact support to restore access.",
	"Board not found!":                               "This board no longer exists.",
	"Column not found!":                              "This column no longer exists.",
	"Card not found!":                                "This card no longer exists.",
	"The invitee is already a member of this board!": "That user is already on the board.",
	"Invitee not found in the system!":               "No account exists for that email.",
}

// localizeMessage maps a known server message to user-facing text, or
// returns the message verbatim.
func localizeMessage(msg string) string {
	if localized, ok := knownMessages[msg]; ok {
		return localized
	}
	return msg
}
