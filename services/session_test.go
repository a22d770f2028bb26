package services

import (
	"testing"
	"time"

	"passkey_auth_ms/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(ttl time.Duration) (ISessionService, *memStore) {
	store := newMemStore()
	jwt := NewJWTService([]byte("test-secret"), "passkey_auth_ms")
	return NewSessionService(nil, &memUserRepo{store: store}, jwt, ttl), store
}

func TestSessionRoundTrip(t *testing.T) {
	session, store := newSessionFixture(time.Hour)
	store.users["u1"] = &domain.User{Id: "u1", Email: "alice@example.com"}

	token, err := session.Issue(&domain.User{Id: "u1", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := session.CurrentUser(token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.Id)
}

func TestSessionAbsentToken(t *testing.T) {
	session, _ := newSessionFixture(time.Hour)

	user, err := session.CurrentUser("")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionGarbageToken(t *testing.T) {
	session, _ := newSessionFixture(time.Hour)

	user, err := session.CurrentUser("not.a.token")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionExpiredToken(t *testing.T) {
	session, store := newSessionFixture(-time.Minute)
	store.users["u1"] = &domain.User{Id: "u1", Email: "alice@example.com"}

	token, err := session.Issue(&domain.User{Id: "u1"})
	require.NoError(t, err)

	user, err := session.CurrentUser(token)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionDeletedUser(t *testing.T) {
	session, _ := newSessionFixture(time.Hour)

	token, err := session.Issue(&domain.User{Id: "gone"})
	require.NoError(t, err)

	user, err := session.CurrentUser(token)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionForgedToken(t *testing.T) {
	session, store := newSessionFixture(time.Hour)
	store.users["u1"] = &domain.User{Id: "u1"}

	forger := NewJWTService([]byte("other-secret"), "passkey_auth_ms")
	token, err := forger.GenerateToken("u1", time.Hour)
	require.NoError(t, err)

	user, err := session.CurrentUser(token)
	assert.NoError(t, err)
	assert.Nil(t, user)
}
