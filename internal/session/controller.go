// ABOUTME: Session lifecycle controller for login, signup, logout, and hydration
// ABOUTME: Exposes a finite-state view of authentication status to the UI

package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/authstore"
)

// Status is the authentication state visible to the UI.
type Status int

const (
	StatusChecking Status = iota
	StatusAuthenticated
	StatusUnauthenticated
	StatusError
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Controller owns the client-side authentication lifecycle. Account, token,
// and remember fields always reflect the last settled transition; they are
// never left populated while the status is unauthenticated or error.
type Controller struct {
	mu sync.Mutex

	client *api.Client
	store  *authstore.Store

	status   Status
	account  *api.Account
	tokens   *authstore.TokenPair
	remember bool
	err      error
}

// New creates a Controller seeded from the token store: stored credentials
// populate the token and remember fields before the first hydration runs.
func New(client *api.Client, store *authstore.Store) *Controller {
	c := &Controller{
		client: client,
		store:  store,
		status: StatusChecking,
	}

	if snapshot := store.Get(); snapshot != nil {
		tokens := snapshot.Tokens
		c.tokens = &tokens
		c.remember = snapshot.Remember
	}

	return c
}

// Status returns the current authentication status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Account returns the authenticated account, or nil.
func (c *Controller) Account() *api.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

// Tokens returns the in-memory token mirror, or nil.
func (c *Controller) Tokens() *authstore.TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// Remember reports the persisted remember choice.
func (c *Controller) Remember() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remember
}

// Err returns the error captured by a failed hydration, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// IsAuthenticated reports whether the controller settled on authenticated.
func (c *Controller) IsAuthenticated() bool {
	return c.Status() == StatusAuthenticated
}

func (c *Controller) reset() {
	c.account = nil
	c.tokens = nil
	c.remember = false
}

// Hydrate restores the session from stored credentials. No credentials means
// unauthenticated; a 401 from the profile fetch is the normal "not logged in"
// outcome and is not recorded as an error; any other failure parks the
// controller in the error state for a manual retry.
func (c *Controller) Hydrate(ctx context.Context) {
	c.mu.Lock()
	c.status = StatusChecking
	snapshot := c.store.Get()
	if snapshot == nil {
		c.reset()
		c.err = nil
		c.status = StatusUnauthenticated
		c.mu.Unlock()
		return
	}

	tokens := snapshot.Tokens
	c.tokens = &tokens
	c.remember = snapshot.Remember
	c.mu.Unlock()

	account, err := c.client.CurrentAccount(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.store.Clear()
			c.reset()
			c.err = nil
			c.status = StatusUnauthenticated
			return
		}

		c.reset()
		c.err = err
		c.status = StatusError
		return
	}

	c.account = account
	c.err = nil
	c.status = StatusAuthenticated
}

// LoginParams carries the login form fields.
type LoginParams struct {
	Login    string
	Password string
	Remember bool
}

// Login authenticates and persists the returned tokens. On failure the store
// and local state are cleared but the error is re-raised so the UI can show
// a message.
func (c *Controller) Login(ctx context.Context, params LoginParams) error {
	result, err := c.client.Login(ctx, api.LoginPayload{Login: params.Login, Password: params.Password})
	return c.settleAuth(result, err, params.Remember)
}

// SignupParams carries the signup form fields.
type SignupParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Remember  bool
}

// Signup registers a new account with the same settlement contract as Login.
func (c *Controller) Signup(ctx context.Context, params SignupParams) error {
	result, err := c.client.Signup(ctx, api.SignupPayload{
		Username:  params.Username,
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	return c.settleAuth(result, err, params.Remember)
}

func (c *Controller) settleAuth(result *api.AuthResult, err error, remember bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.store.Clear()
		c.reset()
		c.err = err
		c.status = StatusUnauthenticated
		return err
	}

	if err := c.store.Set(result.Tokens, remember); err != nil {
		c.store.Clear()
		c.reset()
		c.err = err
		c.status = StatusUnauthenticated
		return err
	}

	tokens := result.Tokens
	account := result.Account
	c.tokens = &tokens
	c.remember = remember
	c.account = &account
	c.err = nil
	c.status = StatusAuthenticated
	return nil
}

// Logout best-effort revokes the refresh token server-side; failures from
// that call are ignored. Local state and the store always end up empty.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	var refresh string
	if c.tokens != nil {
		refresh = c.tokens.Refresh
	}
	c.mu.Unlock()

	if refresh != "" {
		// Logout always succeeds locally
		_ = c.client.Logout(ctx, refresh)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
	c.reset()
	c.err = nil
	c.status = StatusUnauthenticated
}

// RefreshAccount re-runs hydration. Callable at any time, including as the
// manual retry from the error state.
func (c *Controller) RefreshAccount(ctx context.Context) {
	c.Hydrate(ctx)
}
