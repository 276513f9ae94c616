package auth

import (
	"time"
)

// User is the credential record for one registered identity. Token fields
// are pointers so "absent" is distinguishable from an empty value; an
// expired token is treated as absent for matching but is not auto-cleared.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`

	Verified           bool       `json:"verified" gorm:"default:false"`
	VerificationToken  *string    `json:"-" gorm:"index"`
	VerificationExpiry *time.Time `json:"-"`

	ResetToken  *string    `json:"-" gorm:"index"`
	ResetExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the profile shape safe to return to callers.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Verified  bool   `json:"verified"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Verified:  u.Verified,
	}
}

// LoginActivity is an append-only record of successful logins.
type LoginActivity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	IP        string    `json:"ip"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
}

func (LoginActivity) TableName() string {
	return "login_activities"
}
