// Package client wraps the board REST API: typed request/response
// wrappers over a cookie-based JSON session. The API itself is an external
// collaborator; nothing here interprets business state beyond decoding it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"boardsync/internal/model"

	"golang.org/x/sync/singleflight"
)

type Client struct {
	baseURL string
	httpc   *http.Client

	// refresh shares one in-flight token refresh across concurrent 401s.
	refresh singleflight.Group

	// onForcedLogout runs after a failed refresh; the app clears the
	// current-user slot and navigates to login.
	onForcedLogout func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithForcedLogoutHandler registers the callback run when the session
// cannot be refreshed.
func WithForcedLogoutHandler(fn func()) Option {
	return func(c *Client) { c.onForcedLogout = fn }
}

// New builds a client with a cookie jar for the session cookie.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Jar: jar},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPClient exposes the underlying client so the realtime bridge can share
// the session cookie.
func (c *Client) HTTPClient() *http.Client { return c.httpc }

// do performs one API call. On 401 it attempts a single shared session
// refresh and retries the request once; a second 401 forces logout.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doOnce(ctx, method, path, body, out, true)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any, allowRefresh bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if !allowRefresh {
			if c.onForcedLogout != nil {
				c.onForcedLogout()
			}
			return ErrSessionExpired
		}
		if err := c.refreshSession(ctx); err != nil {
			if c.onForcedLogout != nil {
				c.onForcedLogout()
			}
			return ErrSessionExpired
		}
		return c.doOnce(ctx, method, path, body, out, false)
	case http.StatusForbidden:
		return ErrForbidden
	}

	return decodeAPIError(resp)
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Message == "" {
		envelope.Message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: localizeMessage(envelope.Message)}
}

// refreshSession refreshes the session cookie. Concurrent failed requests
// share a single in-flight refresh.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		return nil, c.doOnce(ctx, http.MethodGet, "/users/refresh_token", nil, nil, false)
	})
	return err
}

// ---- Boards ----

// BoardsPage is the paginated boards listing.
type BoardsPage struct {
	Boards []model.Board `json:"boards"`
	Total  int           `json:"totalBoards"`
}

type CreateBoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// UpdateBoardRequest is a partial update; zero fields are omitted.
type UpdateBoardRequest struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Type           string   `json:"type,omitempty"`
	ColumnOrderIDs []string `json:"columnOrderIds,omitempty"`
}

// MoveCardRequest is the cross-column move, applied transactionally
// server-side.
type MoveCardRequest struct {
	CardID            string   `json:"currentCardId"`
	SourceColumnID    string   `json:"prevColumnId"`
	SourceColumnOrder []string `json:"prevCardOrderIds"`
	DestColumnID      string   `json:"nextColumnId"`
	DestColumnOrder   []string `json:"nextCardOrderIds"`
}

func (c *Client) FetchBoards(ctx context.Context, page int) (*BoardsPage, error) {
	var out BoardsPage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards?page=%d", page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchBoardDetails(ctx context.Context, boardID string) (*model.Board, error) {
	var out model.Board
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*model.Board, error) {
	var out model.Board
	if err := c.do(ctx, http.MethodPost, "/boards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBoardDetails(ctx context.Context, boardID string, req UpdateBoardRequest) (*model.Board, error) {
	var out model.Board
	if err := c.do(ctx, http.MethodPut, "/boards/"+boardID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MoveCardToDifferentColumn(ctx context.Context, req MoveCardRequest) error {
	return c.do(ctx, http.MethodPut, "/boards/supports/moving_card", req, nil)
}

// ---- Columns ----

type CreateColumnRequest struct {
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
}

type UpdateColumnRequest struct {
	Title        string   `json:"title,omitempty"`
	CardOrderIDs []string `json:"cardOrderIds,omitempty"`
}

func (c *Client) CreateColumn(ctx context.Context, req CreateColumnRequest) (*model.Column, error) {
	var out model.Column
	if err := c.do(ctx, http.MethodPost, "/columns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateColumnDetails(ctx context.Context, columnID string, req UpdateColumnRequest) (*model.Column, error) {
	var out model.Column
	if err := c.do(ctx, http.MethodPut, "/columns/"+columnID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteColumnDetails(ctx context.Context, columnID string) error {
	return c.do(ctx, http.MethodDelete, "/columns/"+columnID, nil, nil)
}

// ---- Cards ----

type CreateCardRequest struct {
	BoardID  string `json:"boardId"`
	ColumnID string `json:"columnId"`
	Title    string `json:"title"`
}

// CardPatch is the generic partial-update payload for the single update
// endpoint; every card field edit goes through it.
type CardPatch struct {
	Title       *string             `json:"title,omitempty"`
	Completed   *bool               `json:"completed,omitempty"`
	Description *string             `json:"description,omitempty"`
	Cover       *string             `json:"cover,omitempty"`
	MemberIDs   []string            `json:"memberIds,omitempty"`
	Dates       *model.CardDates    `json:"dates,omitempty"`
	Attachments []model.Attachment  `json:"attachments,omitempty"`
	CommentAdd  *model.Comment      `json:"commentToAdd,omitempty"`
}

func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*model.Card, error) {
	var out model.Card
	if err := c.do(ctx, http.MethodPost, "/cards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCardDetails(ctx context.Context, cardID string, patch CardPatch) (*model.Card, error) {
	var out model.Card
	if err := c.do(ctx, http.MethodPut, "/cards/"+cardID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCardDetails(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+cardID, nil, nil)
}

// ---- Users & invitations ----

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type Verify2FARequest struct {
	OTPToken string `json:"otpToken"`
}

type UpdateAccountRequest struct {
	DisplayName     string `json:"displayName,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

type InviteUserRequest struct {
	InviteeEmail string `json:"inviteeEmail"`
	BoardID      string `json:"boardId"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/logout", nil, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPut, "/users/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verify2FA(ctx context.Context, req Verify2FARequest) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/users/verify_2fa", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, req UpdateAccountRequest) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPut, "/users/update", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InviteUserToBoard(ctx context.Context, req InviteUserRequest) (*model.Invitation, error) {
	var out model.Invitation
	if err := c.do(ctx, http.MethodPost, "/invitations/board", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
