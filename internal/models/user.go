package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an identity record. Users are created by the auth provider on
// signup and never hard-deleted.
type User struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	Email         string `gorm:"uniqueIndex"`
	EmailVerified bool
	Image         *string
	Settings      *string // serialized JSON blob, see controllers/v1.Settings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	return nil
}

// Account holds the credentials the auth provider manages for a user.
// Password is only set for accounts using the local credential provider.
type Account struct {
	ID                    string `gorm:"primaryKey"`
	AccountID             string
	ProviderID            string
	UserID                string
	User                  User `json:"-"`
	AccessToken           *string
	RefreshToken          *string
	IDToken               *string
	AccessTokenExpiresAt  *time.Time
	RefreshTokenExpiresAt *time.Time
	Scope                 *string
	Password              *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Session is an authenticated session issued by the auth provider. The
// backend only ever reads sessions, it does not create them.
type Session struct {
	ID        string `gorm:"primaryKey"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	UserID    string
	User      User `json:"-"`
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionUserID resolves a session token to the ID of the user it belongs
// to. Expired sessions resolve to ErrResourceNotFound, indistinguishable
// from sessions that never existed.
func SessionUserID(db *gorm.DB, token string, now time.Time) (string, error) {
	var session Session
	err := db.Where(&Session{Token: token}).First(&session).Error
	if err != nil {
		return "", err
	}

	if session.ExpiresAt.Before(now) {
		return "", gorm.ErrRecordNotFound
	}

	return session.UserID, nil
}
