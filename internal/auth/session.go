// Package auth stores the API bearer token in the system keyring.
package auth

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "reverb"
	keyringUser    = "api-token"
)

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// Session holds the API token for the running program, backed by the
// system keyring. It implements api.TokenSource.
type Session struct {
	mu    sync.RWMutex
	token string
}

// Load reads the stored token from the keyring. A missing token is not an
// error; the session simply starts unauthenticated.
func Load() (*Session, error) {
	s := &Session{}
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return s, nil
		}
		return nil, err
	}
	s.token = token
	return s, nil
}

// Token returns the current token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Login stores the token in the keyring and activates it for this session.
func (s *Session) Login(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout removes the stored token. Logging out while already logged out
// returns ErrNotLoggedIn.
func (s *Session) Logout() error {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.mu.Unlock()
	if !had {
		return ErrNotLoggedIn
	}
	if err := keyring.Delete(keyringService, keyringUser); err != nil &&
		!errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// StaticToken adapts a fixed token string, used when the token comes from
// configuration or the environment instead of the keyring.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token() string { return string(t) }
