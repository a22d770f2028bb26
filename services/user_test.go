package services

import (
	"testing"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture() (IUserService, *memStore, *recordedEvents) {
	store := newMemStore()
	events := &recordedEvents{}
	svc := NewUserService(nil, &memUserRepo{store: store}, &memAuthenticatorRepo{store: store}, events, zap.NewNop())
	return svc, store, events
}

func TestRegisterWithPassword(t *testing.T) {
	svc, store, events := newUserFixture()

	user, err := svc.RegisterWithPassword(&request.RegisterPasswordRequest{
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)
	assert.True(t, user.HasPassword())
	assert.NotEqual(t, "Sup3r$ecret", user.Password)
	assert.Len(t, store.users, 1)
	assert.Equal(t, 1, events.registered)

	_, err = svc.RegisterWithPassword(&request.RegisterPasswordRequest{
		Email:    "alice@example.com",
		Password: "An0ther$ecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginWithPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	registered, err := svc.RegisterWithPassword(&request.RegisterPasswordRequest{
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)

	user, err := svc.LoginWithPassword(&request.LoginPasswordRequest{
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.Id, user.Id)

	_, err = svc.LoginWithPassword(&request.LoginPasswordRequest{
		Email:    "alice@example.com",
		Password: "WrongPass1$",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown accounts fail exactly like a wrong password.
	_, err = svc.LoginWithPassword(&request.LoginPasswordRequest{
		Email:    "ghost@example.com",
		Password: "Sup3r$ecret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginPasskeyOnlyAccount(t *testing.T) {
	svc, store, _ := newUserFixture()
	store.users["u1"] = &domain.User{Id: "u1", Email: "alice@example.com"}

	// A passkey-only account fails password login the same way a wrong
	// password does.
	_, err := svc.LoginWithPassword(&request.LoginPasswordRequest{
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, store, _ := newUserFixture()
	hash, _ := util.HashPassword("Sup3r$ecret")
	store.users["u1"] = &domain.User{Id: "u1", Email: "alice@example.com", Password: hash}
	store.creds = append(store.creds, &domain.Authenticator{
		ID:           1,
		UserID:       "u1",
		CredentialID: "cred-1",
		DeviceType:   domain.DeviceTypeMultiDevice,
		BackedUp:     true,
	})

	profile, err := svc.Profile("u1")
	require.NoError(t, err)
	assert.True(t, profile.HasPassword)
	assert.True(t, profile.HasPasskey)
	require.Len(t, profile.Authenticators, 1)
	assert.Equal(t, "cred-1", profile.Authenticators[0].CredentialId)
}

func TestDeleteAuthenticator(t *testing.T) {
	svc, store, _ := newUserFixture()
	store.users["u1"] = &domain.User{Id: "u1"}
	store.users["u2"] = &domain.User{Id: "u2"}
	store.creds = append(store.creds, &domain.Authenticator{ID: 1, UserID: "u1", CredentialID: "cred-1"})

	err := svc.DeleteAuthenticator("u2", "cred-1")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.DeleteAuthenticator("u1", "missing")
	assert.ErrorIs(t, err, domain.ErrAuthenticatorNotFound)

	err = svc.DeleteAuthenticator("u1", "cred-1")
	assert.NoError(t, err)
	assert.Empty(t, store.creds)
}
