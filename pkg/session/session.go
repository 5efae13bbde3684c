// Package session holds the authenticated identity for the lifetime of the
// process and publishes every change to it.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/pubsub"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	ErrNotInitialized = errors.New("session not initialized")
	ErrClosed         = errors.New("session torn down")
)

// State is the published view of the session.
type State struct {
	User  *v1.User
	Token *oauth2.Token
}

// IsAuthenticated reports whether there is a known user with a usable token.
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Token.Valid()
}

// Roles returns the user's roles in priority order.
func (s State) Roles() []v1.Role {
	if s.User == nil {
		return nil
	}
	return v1.SortRoles(s.User.Roles)
}

// Authenticator is the part of the API the session calls.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Profile(ctx context.Context) (*v1.User, error)
}

// Persister keeps the token between runs.
type Persister interface {
	Load() (*oauth2.Token, error)
	Save(*oauth2.Token) error
	Clear() error
}

type lifecycle int

const (
	created lifecycle = iota
	running
	closed
)

// Store is the single publish point for session state. Create it with New,
// call Init once the API client exists and Teardown on exit.
type Store struct {
	persist Persister
	logger  *zap.Logger
	broker  *pubsub.Broker[State]

	mu    sync.RWMutex
	auth  Authenticator
	state State
	phase lifecycle
}

func New(persist Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		persist: persist,
		logger:  logger,
		broker:  pubsub.New[State](logger),
	}
}

// Token implements oauth2.TokenSource for the authorization interceptor.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.Token.Valid() {
		return nil, api.ErrNotAuthenticated
	}
	return s.state.Token, nil
}

func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn for every later state change.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.broker.Subscribe(fn)
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.broker.Publish(st)
}

func (s *Store) authenticator() (Authenticator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.phase {
	case created:
		return nil, ErrNotInitialized
	case closed:
		return nil, ErrClosed
	}
	return s.auth, nil
}

// Init attaches the authenticator and restores a persisted token. A token the
// backend no longer accepts is discarded; other failures leave it in place so
// a later RefreshProfile can retry.
func (s *Store) Init(ctx context.Context, auth Authenticator) error {
	s.mu.Lock()
	if s.phase != created {
		s.mu.Unlock()
		return fmt.Errorf("session already initialized")
	}
	s.auth = auth
	s.phase = running
	s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	tok, err := s.persist.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("ignoring unreadable session token", zap.Error(err))
		}
		return nil
	}
	if !tok.Valid() {
		return s.persist.Clear()
	}

	s.mu.Lock()
	s.state = State{Token: tok}
	s.mu.Unlock()

	return s.RefreshProfile(ctx)
}

// Login exchanges credentials for a token and publishes the new identity.
func (s *Store) Login(ctx context.Context, username, password string) error {
	auth, err := s.authenticator()
	if err != nil {
		return err
	}
	res, err := auth.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	tok := &oauth2.Token{AccessToken: res.Token, TokenType: "Bearer"}
	user := res.User
	s.set(State{User: &user, Token: tok})
	s.logger.Info("logged in", zap.String("username", user.Username))

	if s.persist != nil {
		if err := s.persist.Save(tok); err != nil {
			return fmt.Errorf("logged in but unable to remember session: %w", err)
		}
	}
	return nil
}

// RefreshProfile refetches the current user. A rejected token ends the session.
func (s *Store) RefreshProfile(ctx context.Context) error {
	auth, err := s.authenticator()
	if err != nil {
		return err
	}
	cur := s.Current()
	if !cur.Token.Valid() {
		return api.ErrNotAuthenticated
	}
	user, err := auth.Profile(ctx)
	if errors.Is(err, api.ErrNotAuthenticated) {
		s.logger.Info("session token rejected")
		if lerr := s.Logout(); lerr != nil {
			return lerr
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("unable to fetch profile: %w", err)
	}
	s.set(State{User: user, Token: cur.Token})
	return nil
}

// Logout forgets the identity and the persisted token.
func (s *Store) Logout() error {
	if _, err := s.authenticator(); err != nil {
		return err
	}
	s.set(State{})
	s.logger.Info("logged out")
	if s.persist != nil {
		return s.persist.Clear()
	}
	return nil
}

// Teardown publishes an empty state and drops every subscriber. The persisted
// token is kept so the next run resumes the session.
func (s *Store) Teardown() {
	s.mu.Lock()
	if s.phase == closed {
		s.mu.Unlock()
		return
	}
	s.phase = closed
	s.state = State{}
	s.mu.Unlock()

	s.broker.Publish(State{})
	s.broker.Close()
}
