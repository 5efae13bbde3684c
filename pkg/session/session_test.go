package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/byxorna/wrench/pkg/api"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type memPersister struct {
	tok     *oauth2.Token
	cleared bool
}

func (m *memPersister) Load() (*oauth2.Token, error) {
	if m.tok == nil {
		return nil, os.ErrNotExist
	}
	return m.tok, nil
}
func (m *memPersister) Save(t *oauth2.Token) error { m.tok = t; return nil }
func (m *memPersister) Clear() error               { m.tok = nil; m.cleared = true; return nil }

type fakeAuth struct {
	user       v1.User
	profileErr error
	loginErr   error
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.LoginResponse{Token: "jwt-" + username, User: f.user}, nil
}

func (f *fakeAuth) Profile(ctx context.Context) (*v1.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	u := f.user
	return &u, nil
}

var admin = v1.User{ID: 1, Username: "admin", Roles: []v1.Role{v1.RoleClient, v1.RoleAdmin}}

func TestLoginPublishesAuthenticatedState(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)
	require.NoError(t, s.Init(context.Background(), &fakeAuth{user: admin}))

	var published []State
	s.Subscribe(func(st State) { published = append(published, st) })

	require.NoError(t, s.Login(context.Background(), "admin", "pw"))
	require.Len(t, published, 1)
	assert.True(t, published[0].IsAuthenticated())
	assert.Equal(t, []v1.Role{v1.RoleAdmin, v1.RoleClient}, published[0].Roles())
	assert.Equal(t, "jwt-admin", p.tok.AccessToken)

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-admin", tok.AccessToken)

	require.NoError(t, s.Logout())
	require.Len(t, published, 2)
	assert.False(t, published[1].IsAuthenticated())
	assert.True(t, p.cleared)
	_, err = s.Token()
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
}

func TestLoginFailureLeavesStateAlone(t *testing.T) {
	s := New(nil, nil)
	require.NoError(t, s.Init(context.Background(), &fakeAuth{loginErr: errors.New("bad credentials")}))
	assert.Error(t, s.Login(context.Background(), "admin", "nope"))
	assert.False(t, s.Current().IsAuthenticated())
}

func TestOperationsBeforeInit(t *testing.T) {
	s := New(nil, nil)
	assert.ErrorIs(t, s.Login(context.Background(), "a", "b"), ErrNotInitialized)
	assert.ErrorIs(t, s.Logout(), ErrNotInitialized)
}

func TestInitRestoresPersistedToken(t *testing.T) {
	p := &memPersister{tok: &oauth2.Token{AccessToken: "saved"}}
	s := New(p, nil)
	require.NoError(t, s.Init(context.Background(), &fakeAuth{user: admin}))

	st := s.Current()
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, "admin", st.User.Username)
	assert.Equal(t, "saved", st.Token.AccessToken)
}

func TestInitDropsRejectedToken(t *testing.T) {
	p := &memPersister{tok: &oauth2.Token{AccessToken: "stale"}}
	s := New(p, nil)
	rejected := &api.APIError{Method: "GET", Path: "/api/auth/profile", StatusCode: http.StatusUnauthorized}

	err := s.Init(context.Background(), &fakeAuth{profileErr: rejected})
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
	assert.False(t, s.Current().IsAuthenticated())
	assert.True(t, p.cleared)
}

func TestInitWithoutPersistedToken(t *testing.T) {
	s := New(&memPersister{}, nil)
	require.NoError(t, s.Init(context.Background(), &fakeAuth{}))
	assert.False(t, s.Current().IsAuthenticated())
	assert.Error(t, s.Init(context.Background(), &fakeAuth{}))
}

func TestTeardown(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)
	require.NoError(t, s.Init(context.Background(), &fakeAuth{user: admin}))
	require.NoError(t, s.Login(context.Background(), "admin", "pw"))

	var last *State
	s.Subscribe(func(st State) { last = &st })
	s.Teardown()
	s.Teardown()

	require.NotNil(t, last)
	assert.False(t, last.IsAuthenticated())
	assert.NotNil(t, p.tok, "teardown keeps the persisted token")
	assert.ErrorIs(t, s.Logout(), ErrClosed)
}
