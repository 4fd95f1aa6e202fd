package models

import "time"

// Role determines a user's read/write scope over records.
type Role string

const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	PasswordDigest string    `db:"password_digest" json:"-"` // don’t expose hash
	Role           Role      `db:"role" json:"role"`
	FullName       string    `db:"full_name" json:"full_name,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DisplayName prefers the full name over the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
