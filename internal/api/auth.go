// ABOUTME: Account and authentication calls against the JamboSec backend
// ABOUTME: Maps the backend user representation into the client Account shape

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/jambosec/jambosec-cli/internal/authstore"
)

// apiUser is the backend user representation.
type apiUser struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}

// Account is the client-side view of a user. DisplayName is derived locally
// and never sent back to the backend.
type Account struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	JoinedAt    string `json:"joined_at"`
}

func mapAPIUser(u apiUser) Account {
	displayName := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if displayName == "" {
		displayName = u.Username
	}
	if displayName == "" {
		displayName = u.Email
	}

	return Account{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: displayName,
		JoinedAt:    u.DateJoined,
	}
}

type authResponse struct {
	User    apiUser `json:"user"`
	Access  string  `json:"access"`
	Refresh string  `json:"refresh"`
}

// AuthResult is the outcome of a successful login or signup.
type AuthResult struct {
	Account Account
	Tokens  authstore.TokenPair
}

// LoginPayload identifies the user by username or email.
type LoginPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SignupPayload registers a new account.
type SignupPayload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Login authenticates against the backend. The call itself is
// unauthenticated; persisting the returned tokens is the caller's job.
func (c *Client) Login(ctx context.Context, payload LoginPayload) (*AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, endpointAuthLogin, requestOptions{body: payload, skipAuth: true}, &resp)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Account: mapAPIUser(resp.User),
		Tokens:  authstore.TokenPair{Access: resp.Access, Refresh: resp.Refresh},
	}, nil
}

// Signup registers a new account and returns its initial token pair.
func (c *Client) Signup(ctx context.Context, payload SignupPayload) (*AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, endpointAuthSignup, requestOptions{body: payload, skipAuth: true}, &resp)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Account: mapAPIUser(resp.User),
		Tokens:  authstore.TokenPair{Access: resp.Access, Refresh: resp.Refresh},
	}, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh": refreshToken}
	return c.do(ctx, http.MethodPost, endpointAuthLogout, requestOptions{body: body}, nil)
}

// CurrentAccount fetches the profile of the authenticated user. Returns a 401
// Error when the access token is invalid or expired and cannot be refreshed.
func (c *Client) CurrentAccount(ctx context.Context) (*Account, error) {
	var user apiUser
	if err := c.do(ctx, http.MethodGet, endpointAuthMe, requestOptions{}, &user); err != nil {
		return nil, err
	}

	account := mapAPIUser(user)
	return &account, nil
}

// UpdateProfilePayload carries the optional profile fields to change.
type UpdateProfilePayload struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UpdateProfile patches the user profile and returns the updated account.
func (c *Client) UpdateProfile(ctx context.Context, payload UpdateProfilePayload) (*Account, error) {
	var user apiUser
	if err := c.do(ctx, http.MethodPatch, endpointAuthMeUpdate, requestOptions{body: payload}, &user); err != nil {
		return nil, err
	}

	account := mapAPIUser(user)
	return &account, nil
}

// UserStats aggregates per-user usage counters.
type UserStats struct {
	Chat struct {
		TotalSessions int `json:"total_sessions"`
		TotalMessages int `json:"total_messages"`
	} `json:"chat"`
	Feedback struct {
		Total   int `json:"total"`
		Helpful int `json:"helpful"`
	} `json:"feedback"`
}

// Stats fetches usage statistics for the authenticated user.
func (c *Client) Stats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.do(ctx, http.MethodGet, endpointAuthMeStats, requestOptions{}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, http.MethodPost, endpointPasswordChange, requestOptions{body: body}, nil)
}

// DeleteAccount permanently removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, endpointAuthMeDelete, requestOptions{}, nil)
}
