package repository

import (
	"errors"
	"fmt"
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IAuthenticatorRepository interface {
	FindByCredentialID(db *gorm.DB, credentialID string) (*domain.Authenticator, error)
	ListForUser(db *gorm.DB, userID string) ([]domain.Authenticator, error)
	Create(db *gorm.DB, entity *domain.Authenticator) error
	UpdateCounter(db *gorm.DB, credentialID string, oldCount, newCount uint32) error
	Delete(db *gorm.DB, credentialID string, ownerID string) error
}

type AuthenticatorRepository struct {
}

func NewAuthenticatorRepository() IAuthenticatorRepository {
	return &AuthenticatorRepository{}
}

func (r *AuthenticatorRepository) FindByCredentialID(db *gorm.DB, credentialID string) (*domain.Authenticator, error) {
	var authenticator domain.Authenticator
	err := db.Where("credential_id = ?", credentialID).First(&authenticator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthenticatorNotFound
		}
		return nil, fmt.Errorf("%w: find authenticator: %v", domain.ErrStorage, err)
	}
	return &authenticator, nil
}

func (r *AuthenticatorRepository) ListForUser(db *gorm.DB, userID string) ([]domain.Authenticator, error) {
	var authenticators []domain.Authenticator
	if err := db.Where("user_id = ?", userID).Order("id").Find(&authenticators).Error; err != nil {
		return nil, fmt.Errorf("%w: list authenticators: %v", domain.ErrStorage, err)
	}
	return authenticators, nil
}

func (r *AuthenticatorRepository) Create(db *gorm.DB, entity *domain.Authenticator) error {
	if err := db.Create(entity).Error; err != nil {
		return fmt.Errorf("%w: create authenticator: %v", domain.ErrStorage, err)
	}
	return nil
}

// UpdateCounter applies the replay counter as a compare-and-swap against the
// previously observed value, so two racing logins cannot both win.
func (r *AuthenticatorRepository) UpdateCounter(db *gorm.DB, credentialID string, oldCount, newCount uint32) error {
	result := db.Model(&domain.Authenticator{}).
		Where("credential_id = ? AND sign_count = ?", credentialID, oldCount).
		Update("sign_count", newCount)
	if result.Error != nil {
		return fmt.Errorf("%w: update counter: %v", domain.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: counter moved concurrently for %s", domain.ErrStorage, credentialID)
	}
	return nil
}

// Delete removes a credential only when the owner matches; a mismatched owner
// affects zero rows and reports ErrNotOwner.
func (r *AuthenticatorRepository) Delete(db *gorm.DB, credentialID string, ownerID string) error {
	result := db.Where("credential_id = ? AND user_id = ?", credentialID, ownerID).
		Delete(&domain.Authenticator{})
	if result.Error != nil {
		return fmt.Errorf("%w: delete authenticator: %v", domain.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotOwner
	}
	return nil
}
