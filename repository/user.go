package repository

import (
	"errors"
	"fmt"
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IUserRepository interface {
	GetByID(db *gorm.DB, id string) (*domain.User, error)
	GetByIDWithAuthenticators(db *gorm.DB, id string) (*domain.User, error)
	GetByEmail(db *gorm.DB, email string) (*domain.User, error)
	GetByEmailWithAuthenticators(db *gorm.DB, email string) (*domain.User, error)
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
}

type UserRepository struct {
}

func NewUserRepository() IUserRepository {
	return &UserRepository{}
}

func (u *UserRepository) GetByID(db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

func (u *UserRepository) GetByIDWithAuthenticators(db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	if err := db.Preload("Authenticators").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

func (u *UserRepository) GetByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

func (u *UserRepository) GetByEmailWithAuthenticators(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Preload("Authenticators").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

func (u *UserRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	if err := db.Create(entity).Error; err != nil {
		return nil, fmt.Errorf("%w: create user: %v", domain.ErrStorage, err)
	}
	return entity, nil
}

func translateUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
