package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a sales rep account in the system
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:text;not null"` // Never expose in JSON

	// Profile
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	Company    string `json:"company" gorm:"type:varchar(255);not null"`
	Department string `json:"department" gorm:"type:varchar(255)"`
	Position   string `json:"position" gorm:"type:varchar(255)"`
	Phone      string `json:"phone" gorm:"type:varchar(32);not null"`

	// Two-factor state: one outstanding code at a time, reissue overwrites
	TwoFactorCode     *string    `json:"-" gorm:"column:two_factor_code;type:varchar(6)"`
	TwoFactorExpiry   *time.Time `json:"-" gorm:"column:two_factor_expiry;type:timestamp"`
	TwoFactorVerified bool       `json:"two_factor_verified" gorm:"default:false;not null"`

	// Google Calendar connection
	CalendarEnabled    bool       `json:"calendar_enabled" gorm:"default:false;not null"`
	GoogleAccessToken  *string    `json:"-" gorm:"column:google_access_token;type:text"`
	GoogleRefreshToken *string    `json:"-" gorm:"column:google_refresh_token;type:text"`
	GoogleTokenExpiry  *time.Time `json:"-" gorm:"column:google_token_expiry;type:timestamp"`

	// Status
	IsActive    bool       `json:"is_active" gorm:"default:true;not null"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewUser creates a new user with default values
func NewUser(email, passwordHash, name, company, department, position, phone string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Company:      company,
		Department:   department,
		Position:     position,
		Phone:        phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SetTwoFactorCode stores a freshly issued code, invalidating any prior one.
func (u *User) SetTwoFactorCode(code string, expiry time.Time) {
	u.TwoFactorCode = &code
	u.TwoFactorExpiry = &expiry
	u.TwoFactorVerified = false
}

// ConsumeTwoFactorCode checks the submitted code against the stored one.
// On success the code is cleared and the user marked verified.
func (u *User) ConsumeTwoFactorCode(code string, now time.Time) error {
	if u.TwoFactorCode == nil || u.TwoFactorExpiry == nil {
		return ErrTwoFactorCodeMissing
	}
	if now.After(*u.TwoFactorExpiry) {
		return ErrTwoFactorCodeExpired
	}
	if *u.TwoFactorCode != code {
		return ErrTwoFactorCodeMismatch
	}
	u.TwoFactorCode = nil
	u.TwoFactorExpiry = nil
	u.TwoFactorVerified = true
	return nil
}

// ConnectGoogleCalendar stores freshly exchanged OAuth tokens.
func (u *User) ConnectGoogleCalendar(accessToken, refreshToken string, expiry *time.Time) {
	if accessToken != "" {
		u.GoogleAccessToken = &accessToken
	}
	if refreshToken != "" {
		u.GoogleRefreshToken = &refreshToken
	}
	u.GoogleTokenExpiry = expiry
	u.CalendarEnabled = true
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Department      string    `json:"department"`
	Position        string    `json:"position"`
	Phone           string    `json:"phone"`
	CalendarEnabled bool      `json:"calendar_enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Company:         u.Company,
		Department:      u.Department,
		Position:        u.Position,
		Phone:           u.Phone,
		CalendarEnabled: u.CalendarEnabled,
		CreatedAt:       u.CreatedAt,
	}
}
