package model

// User mirrors the user resource issued by the auth API. The client never
// creates users locally; this is always a server-authored snapshot.
type User struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	Avatar       string `json:"avatar,omitempty"`
	IsActive     bool   `json:"isActive"`
	RequireTwoFA bool   `json:"require_2fa"`
}
