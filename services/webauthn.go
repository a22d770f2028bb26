package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/hashicorp/go-uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IWebAuthnService runs the two WebAuthn ceremonies. Begin issues options
// plus an opaque ceremony id the transport round-trips in a cookie; Finish
// consumes the server-held challenge and verifies the browser response.
type IWebAuthnService interface {
	BeginRegistration(email string) (*protocol.CredentialCreation, string, error)
	FinishRegistration(ceremonyID string, r *http.Request) (*domain.User, error)
	BeginLogin(email string) (*protocol.CredentialAssertion, string, string, error)
	FinishLogin(ceremonyID string, r *http.Request) (*domain.User, error)
}

type WebAuthnService struct {
	wa             *webauthn.WebAuthn
	db             *gorm.DB
	users          repository.IUserRepository
	authenticators repository.IAuthenticatorRepository
	challenges     IChallengeService
	events         IEventService
	logger         *zap.Logger
	// strictCounter fails authentication on a sign counter regression
	// instead of just logging it.
	strictCounter bool
	now           func() time.Time
}

func NewWebAuthnService(
	wa *webauthn.WebAuthn,
	db *gorm.DB,
	users repository.IUserRepository,
	authenticators repository.IAuthenticatorRepository,
	challenges IChallengeService,
	events IEventService,
	logger *zap.Logger,
	strictCounter bool,
) *WebAuthnService {
	return &WebAuthnService{
		wa:             wa,
		db:             db,
		users:          users,
		authenticators: authenticators,
		challenges:     challenges,
		events:         events,
		logger:         logger,
		strictCounter:  strictCounter,
		now:            time.Now,
	}
}

// BeginRegistration resolves or creates the user, excludes already registered
// credentials and stores a fresh registration challenge under a new ceremony
// id.
func (s *WebAuthnService) BeginRegistration(email string) (*protocol.CredentialCreation, string, error) {
	user, err := s.users.GetByEmailWithAuthenticators(s.db, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.createUser(email)
	}
	if err != nil {
		return nil, "", err
	}

	options, session, err := s.wa.BeginRegistration(user,
		webauthn.WithExclusions(user.CredentialDescriptors()),
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			AuthenticatorAttachment: protocol.Platform,
			ResidentKey:             protocol.ResidentKeyRequirementPreferred,
			UserVerification:        protocol.VerificationPreferred,
		}),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	)
	if err != nil {
		return nil, "", fmt.Errorf("begin registration: %w", err)
	}

	ceremonyID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, "", err
	}
	if err := s.challenges.Store(domain.CeremonyRegistration, ceremonyID, session); err != nil {
		return nil, "", err
	}
	return options, ceremonyID, nil
}

// FinishRegistration verifies the attestation response and persists the new
// authenticator. The challenge is consumed up front, so any retry with the
// same ceremony id fails regardless of this call's outcome. The user is the
// one the stored session was started for.
func (s *WebAuthnService) FinishRegistration(ceremonyID string, r *http.Request) (*domain.User, error) {
	session, err := s.challenges.Consume(domain.CeremonyRegistration, ceremonyID)
	if err != nil {
		return nil, err
	}
	if s.expired(session) {
		return nil, domain.ErrChallengeExpired
	}

	user, err := s.users.GetByID(s.db, string(session.UserID))
	if err != nil {
		return nil, err
	}

	cred, err := s.wa.FinishRegistration(user, *session, r)
	if err != nil {
		s.logger.Warn("registration verification failed",
			zap.String("user_id", user.Id),
			zap.Error(err))
		return nil, domain.ErrVerificationFailed
	}
	if len(cred.ID) == 0 || len(cred.PublicKey) == 0 {
		return nil, domain.ErrInvalidCredentialData
	}

	authenticator := &domain.Authenticator{
		UserID:          user.Id,
		CredentialID:    domain.EncodeCredentialID(cred.ID),
		PublicKey:       cred.PublicKey,
		SignCount:       cred.Authenticator.SignCount,
		DeviceType:      deviceType(cred),
		BackedUp:        cred.Flags.BackupState,
		Transports:      domain.JoinTransports(cred.Transport),
		AAGUID:          cred.Authenticator.AAGUID,
		AttestationType: cred.AttestationType,
	}
	if err := s.authenticators.Create(s.db, authenticator); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishPasskeyRegistered(&request.PasskeyRegisteredEvent{
			UserId:       user.Id,
			CredentialId: authenticator.CredentialID,
			DeviceType:   authenticator.DeviceType,
			At:           s.now(),
		}); err != nil {
			s.logger.Warn("audit event publish failed", zap.Error(err))
		}
	}
	return user, nil
}

// BeginLogin issues an authentication challenge. With an email hint it
// returns that user's credentials as the allow list and mediation
// "optional"; without one it starts a discoverable ceremony with mediation
// "conditional". An unknown email behaves exactly like a missing allow list
// so the response does not reveal whether the account exists.
func (s *WebAuthnService) BeginLogin(email string) (*protocol.CredentialAssertion, string, string, error) {
	mediation := response.MediationConditional
	if email != "" {
		mediation = response.MediationOptional
	}

	var user *domain.User
	if email != "" {
		found, err := s.users.GetByEmailWithAuthenticators(s.db, email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", "", err
		}
		user = found
	}

	var (
		options *protocol.CredentialAssertion
		session *webauthn.SessionData
		err     error
	)
	if user != nil && len(user.Authenticators) > 0 {
		options, session, err = s.wa.BeginLogin(user,
			webauthn.WithUserVerification(protocol.VerificationPreferred))
	} else {
		options, session, err = s.wa.BeginDiscoverableLogin(
			webauthn.WithUserVerification(protocol.VerificationPreferred))
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("begin login: %w", err)
	}

	ceremonyID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, "", "", err
	}
	if err := s.challenges.Store(domain.CeremonyAuthentication, ceremonyID, session); err != nil {
		return nil, "", "", err
	}
	return options, ceremonyID, mediation, nil
}

// FinishLogin verifies the assertion with the stored public key, enforces
// the sign counter invariant and persists the new counter value.
func (s *WebAuthnService) FinishLogin(ceremonyID string, r *http.Request) (*domain.User, error) {
	parsed, err := protocol.ParseCredentialRequestResponse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	if len(parsed.RawID) == 0 {
		return nil, domain.ErrMissingCredentialID
	}

	credentialID := domain.EncodeCredentialID(parsed.RawID)
	stored, err := s.authenticators.FindByCredentialID(s.db, credentialID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByIDWithAuthenticators(s.db, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticatorNotFound
		}
		return nil, err
	}

	session, err := s.challenges.Consume(domain.CeremonyAuthentication, ceremonyID)
	if err != nil {
		return nil, err
	}
	if s.expired(session) {
		return nil, domain.ErrChallengeExpired
	}

	var cred *webauthn.Credential
	if len(session.UserID) == 0 {
		cred, err = s.wa.ValidateDiscoverableLogin(func(rawID, userHandle []byte) (webauthn.User, error) {
			return user, nil
		}, *session, parsed)
	} else {
		cred, err = s.wa.ValidateLogin(user, *session, parsed)
	}
	if err != nil {
		s.logger.Warn("login verification failed",
			zap.String("credential_id", credentialID),
			zap.Error(err))
		return nil, domain.ErrVerificationFailed
	}

	if cred.Authenticator.CloneWarning {
		if s.strictCounter {
			s.logger.Error("sign counter regression",
				zap.String("credential_id", credentialID),
				zap.Uint32("stored_count", stored.SignCount))
			return nil, domain.ErrReplayDetected
		}
		s.logger.Warn("sign counter regression ignored",
			zap.String("credential_id", credentialID))
	} else if cred.Authenticator.SignCount != stored.SignCount {
		if err := s.authenticators.UpdateCounter(s.db, credentialID, stored.SignCount, cred.Authenticator.SignCount); err != nil {
			// A cryptographically valid login stands even when the
			// counter write fails; the regression is still caught on
			// the next attempt against the stored value.
			s.logger.Warn("counter update failed",
				zap.String("credential_id", credentialID),
				zap.Error(err))
		}
	}

	if s.events != nil {
		if err := s.events.PublishPasskeyLogin(&request.PasskeyLoginEvent{
			UserId:       user.Id,
			CredentialId: credentialID,
			SignCount:    cred.Authenticator.SignCount,
			At:           s.now(),
		}); err != nil {
			s.logger.Warn("audit event publish failed", zap.Error(err))
		}
	}
	return user, nil
}

func (s *WebAuthnService) createUser(email string) (*domain.User, error) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}
	return s.users.Create(s.db, &domain.User{Id: id, Email: email})
}

func (s *WebAuthnService) expired(session *webauthn.SessionData) bool {
	return !session.Expires.IsZero() && s.now().After(session.Expires)
}

func deviceType(cred *webauthn.Credential) string {
	if cred.Flags.BackupEligible {
		return domain.DeviceTypeMultiDevice
	}
	return domain.DeviceTypeSingleDevice
}
