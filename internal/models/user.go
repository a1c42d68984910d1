package models

import (
	"strings"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. Canonical values are lower-case;
// anything read from storage or a token must pass through NormalizeRole.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// NormalizeRole maps an arbitrary role string to its canonical value.
// Unknown values collapse to RoleUser.
func NormalizeRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents an account of the shop.
type User struct {
	ID               string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email            string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username         string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password         string  `gorm:"type:varchar(255)"` // bcrypt hash; no json tag for security
	Role             Role    `json:"role" gorm:"type:varchar(16)"`
	IsVerified       bool    `json:"isVerified"`
	VerificationCode *string `json:"-" gorm:"type:varchar(6)"` // nil once verified
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AfterFind normalizes the role on every read so a row written with a
// different casing cannot leak past the data boundary.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Role = NormalizeRole(string(u.Role))
	return nil
}

// Profile is the public projection of a user, safe to return to clients.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// PublicProfile returns the user's public projection. The password hash and
// verification code never leave the service boundary.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     NormalizeRole(string(u.Role)),
	}
}
