package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store is the persistence boundary for credential records. Lookups
// return (nil, nil) when no record matches; a non-nil error always means
// the store itself failed. Token lookups filter on expiry so an expired
// token behaves exactly like an absent one.
type Store interface {
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByVerificationToken(token string, now time.Time) (*User, error)
	FindByResetToken(token string, now time.Time) (*User, error)
	// Insert persists a new record and returns ErrEmailInUse when the
	// email unique constraint rejects it. Uniqueness is enforced by the
	// store, not by a prior read, so concurrent registrations for the
	// same email cannot both succeed.
	Insert(user *User) error
	Update(id string, fields map[string]any) error
	RecordLogin(activity *LoginActivity) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(id string) (*User, error) {
	var user User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by id: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindByEmail(email string) (*User, error) {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindByVerificationToken(token string, now time.Time) (*User, error) {
	var user User
	err := s.db.Where("verification_token = ? AND verification_expiry > ?", token, now).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by verification token: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindByResetToken(token string, now time.Time) (*User, error) {
	var user User
	err := s.db.Where("reset_token = ? AND reset_expiry > ?", token, now).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by reset token: %w", err)
	}
	return &user, nil
}

func (s *GormStore) Insert(user *User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailInUse
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *GormStore) Update(id string, fields map[string]any) error {
	result := s.db.Model(&User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user with id %s", id)
	}
	return nil
}

func (s *GormStore) RecordLogin(activity *LoginActivity) error {
	if err := s.db.Create(activity).Error; err != nil {
		return fmt.Errorf("failed to record login activity: %w", err)
	}
	return nil
}
