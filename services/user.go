package services

import (
	"errors"
	"time"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository"
	"passkey_auth_ms/util"

	"github.com/hashicorp/go-uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IUserService interface {
	RegisterWithPassword(req *request.RegisterPasswordRequest) (*domain.User, error)
	LoginWithPassword(req *request.LoginPasswordRequest) (*domain.User, error)
	Profile(userID string) (*response.Profile, error)
	DeleteAuthenticator(userID string, credentialID string) error
}

type UserService struct {
	db             *gorm.DB
	users          repository.IUserRepository
	authenticators repository.IAuthenticatorRepository
	events         IEventService
	logger         *zap.Logger
}

func NewUserService(db *gorm.DB, users repository.IUserRepository, authenticators repository.IAuthenticatorRepository, events IEventService, logger *zap.Logger) IUserService {
	return &UserService{db: db, users: users, authenticators: authenticators, events: events, logger: logger}
}

func (u *UserService) RegisterWithPassword(req *request.RegisterPasswordRequest) (*domain.User, error) {
	_, err := u.users.GetByEmail(u.db, req.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	id, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(u.db, &domain.User{Id: id, Email: req.Email, Password: hash})
	if err != nil {
		return nil, err
	}

	if u.events != nil {
		if err := u.events.PublishUserRegistered(&request.UserRegisteredEvent{
			UserId: user.Id,
			Email:  user.Email,
			Method: "password",
			At:     time.Now(),
		}); err != nil {
			u.logger.Warn("audit event publish failed", zap.Error(err))
		}
	}
	return user, nil
}

// LoginWithPassword reports the same failure for an unknown email and a wrong
// password so responses do not reveal which accounts exist.
func (u *UserService) LoginWithPassword(req *request.LoginPasswordRequest) (*domain.User, error) {
	user, err := u.users.GetByEmail(u.db, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() || !util.VerifyPassword(req.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (u *UserService) Profile(userID string) (*response.Profile, error) {
	user, err := u.users.GetByID(u.db, userID)
	if err != nil {
		return nil, err
	}
	creds, err := u.authenticators.ListForUser(u.db, userID)
	if err != nil {
		return nil, err
	}

	authenticators := make([]response.AuthenticatorSummary, 0, len(creds))
	for _, a := range creds {
		authenticators = append(authenticators, response.AuthenticatorSummary{
			CredentialId: a.CredentialID,
			DeviceType:   a.DeviceType,
			BackedUp:     a.BackedUp,
			CreatedAt:    a.CreatedAt,
		})
	}
	return &response.Profile{
		Id:             user.Id,
		Email:          user.Email,
		HasPassword:    user.HasPassword(),
		HasPasskey:     len(creds) > 0,
		Authenticators: authenticators,
	}, nil
}

// DeleteAuthenticator removes a credential after proving the caller owns it.
func (u *UserService) DeleteAuthenticator(userID string, credentialID string) error {
	stored, err := u.authenticators.FindByCredentialID(u.db, credentialID)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return domain.ErrNotOwner
	}
	return u.authenticators.Delete(u.db, credentialID, userID)
}
