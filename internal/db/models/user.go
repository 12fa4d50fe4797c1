package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is the closed set of access levels attached to a User.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleGuest   Role = "guest"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleGuest:
		return true
	}
	return false
}

// User represents a human principal. Managers own businesses; guests author
// reviews, complaints and quotes.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string     `bun:"id,pk,type:uuid" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         Role       `bun:"role,notnull,default:'guest'" json:"role"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	DisabledAt   *time.Time `bun:"disabled_at" json:"disabledAt,omitempty"`
}

// IsDisabled reports whether the account has been deactivated.
func (u *User) IsDisabled() bool {
	return u != nil && u.DisabledAt != nil
}
