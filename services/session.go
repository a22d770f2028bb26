package services

import (
	"errors"
	"time"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/repository"

	"gorm.io/gorm"
)

// ISessionService mints and resolves the authenticated session token carried
// by the session cookie.
type ISessionService interface {
	Issue(user *domain.User) (string, error)
	// CurrentUser resolves a token to its user. An absent, expired or
	// unresolvable token yields a nil user without an error; only
	// infrastructure failures are errors.
	CurrentUser(token string) (*domain.User, error)
	TTL() time.Duration
}

type SessionService struct {
	db    *gorm.DB
	users repository.IUserRepository
	jwt   IJWTService
	ttl   time.Duration
}

func NewSessionService(db *gorm.DB, users repository.IUserRepository, jwt IJWTService, ttl time.Duration) ISessionService {
	return &SessionService{db: db, users: users, jwt: jwt, ttl: ttl}
}

func (s *SessionService) Issue(user *domain.User) (string, error) {
	return s.jwt.GenerateToken(user.Id, s.ttl)
}

func (s *SessionService) CurrentUser(token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	parsed, err := s.jwt.ParseJWT(token)
	if err != nil {
		return nil, nil
	}
	claims, err := s.jwt.GetClaims(parsed)
	if err != nil {
		return nil, nil
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, nil
	}

	user, err := s.users.GetByIDWithAuthenticators(s.db, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
