package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	user *domain.User
}

func (s *stubSession) Issue(*domain.User) (string, error) { return "token-123", nil }

func (s *stubSession) CurrentUser(token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.user, nil
}

func (s *stubSession) TTL() time.Duration { return time.Hour }

type stubUsers struct {
	loginErr error
}

func (s *stubUsers) RegisterWithPassword(req *request.RegisterPasswordRequest) (*domain.User, error) {
	return &domain.User{Id: "u1", Email: req.Email}, nil
}

func (s *stubUsers) LoginWithPassword(req *request.LoginPasswordRequest) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &domain.User{Id: "u1", Email: req.Email}, nil
}

func (s *stubUsers) Profile(userID string) (*response.Profile, error) {
	return &response.Profile{Id: userID, Email: "alice@example.com"}, nil
}

func (s *stubUsers) DeleteAuthenticator(string, string) error { return nil }

func newAuthApp(users *stubUsers, session *stubSession) *fiber.App {
	middleware.InitValidator()
	ac := NewAuthController(users, session)

	app := fiber.New()
	app.Post("/auth/login-password", middleware.ValidateBody[request.LoginPasswordRequest](), ac.LoginPassword)
	app.Post("/auth/logout", ac.Logout)
	app.Get("/auth/me", ac.Me)
	return app
}

func TestLoginPasswordSetsSessionCookie(t *testing.T) {
	app := newAuthApp(&stubUsers{}, &stubSession{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login-password",
		strings.NewReader(`{"email":"alice@example.com","password":"Sup3r$ecret"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "session=token-123")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Strict")
}

func TestLoginPasswordInvalidCredentials(t *testing.T) {
	app := newAuthApp(&stubUsers{loginErr: domain.ErrInvalidCredentials}, &stubSession{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login-password",
		strings.NewReader(`{"email":"alice@example.com","password":"WrongPass1$"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Set-Cookie"))
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	app := newAuthApp(&stubUsers{}, &stubSession{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, "session=")
	assert.Contains(t, cookie, "expires=")
}

func TestMeWithoutSession(t *testing.T) {
	app := newAuthApp(&stubUsers{}, &stubSession{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":null}`, string(body))
}

func TestMeWithSession(t *testing.T) {
	app := newAuthApp(&stubUsers{}, &stubSession{user: &domain.User{Id: "u1", Email: "alice@example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "token-123"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"email":"alice@example.com"`)
}
