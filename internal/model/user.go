package model

import (
	"fmt"
	"time"

	"podcasts/internal/password"
)

// Role is the kind of account a user holds.
type Role string

const (
	RoleHost     Role = "Host"
	RoleListener Role = "Listener"
)

// User represents an account in the catalog.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'Listener'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SetPassword stores the digest of plaintext produced by h. The plaintext itself
// is never kept on the user.
func (u *User) SetPassword(h password.Hasher, plaintext string) error {
	digest, err := h.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash user password: %w", err)
	}
	u.PasswordHash = digest
	return nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func (u *User) CheckPassword(h password.Hasher, plaintext string) bool {
	return h.Verify(plaintext, u.PasswordHash)
}

// HasRole reports whether the user holds one of roles. An empty list matches any user.
func (u *User) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
