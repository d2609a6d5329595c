package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names, ordered by privilege. Promotion never moves a user down this
// ladder (see PaymentService).
const (
	RoleGuest    = "guest"
	RoleUser     = "user"
	RoleSurveyor = "surveyor"
	RoleProUser  = "pro-user"
	RoleAdmin    = "admin"
)

var roleRank = map[string]int{
	RoleGuest:    0,
	RoleUser:     1,
	RoleSurveyor: 2,
	RoleProUser:  3,
	RoleAdmin:    4,
}

// RoleAtLeast reports whether role holds at least the privilege of want.
// Unknown roles rank below guest.
func RoleAtLeast(role, want string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	w, ok := roleRank[want]
	if !ok {
		return false
	}
	return r >= w
}

// RolesBelow returns every defined role ranked strictly below want. Used to
// build conditional promotion updates.
func RolesBelow(want string) []string {
	w, ok := roleRank[want]
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(roleRank))
	for role, rank := range roleRank {
		if rank < w {
			roles = append(roles, role)
		}
	}
	return roles
}

// User is keyed by email; the row is created on first registration and never
// hard-deleted.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string         `gorm:"size:255" json:"name"`
	PhotoURL     string         `gorm:"size:500" json:"photoURL,omitempty"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
