// Package authz computes what a caller may read and write. It performs no I/O.
package authz

import (
	"prtracker/internal/apperr"
	"prtracker/internal/models"
)

// Session is the explicit identity of the caller, passed to every service call.
type Session struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
}

// Access is the breadth of a read or write permission.
type Access int

const (
	None Access = iota
	Own
	All
)

func (a Access) String() string {
	switch a {
	case Own:
		return "OWN"
	case All:
		return "ALL"
	default:
		return "NONE"
	}
}

// Scope is the visible and mutable record set of one caller.
type Scope struct {
	Read   Access
	Write  Access
	UserID int64
}

// ScopeFor maps a session to its scope. Unknown roles get read:OWN, write:NONE.
func ScopeFor(s Session) Scope {
	sc := Scope{UserID: s.UserID}
	switch s.Role {
	case models.RoleUser:
		sc.Read, sc.Write = Own, Own
	case models.RoleCoach:
		sc.Read, sc.Write = All, None
	case models.RoleAdmin:
		sc.Read, sc.Write = All, All
	default:
		sc.Read, sc.Write = Own, None
	}
	return sc
}

func (s Scope) CanRead(ownerID int64) bool {
	return allows(s.Read, s.UserID, ownerID)
}

func (s Scope) CanWrite(ownerID int64) bool {
	return allows(s.Write, s.UserID, ownerID)
}

// RequireWrite returns PermissionDenied unless the scope may mutate records of ownerID.
func (s Scope) RequireWrite(ownerID int64) error {
	if !s.CanWrite(ownerID) {
		return apperr.PermissionDenied()
	}
	return nil
}

// RequireAnyWrite rejects read-only scopes before any record is looked up.
func (s Scope) RequireAnyWrite() error {
	if s.Write == None {
		return apperr.PermissionDenied()
	}
	return nil
}

// ResolveReadTarget narrows a requested owner filter to what the scope may see.
// OWN scopes always resolve to the caller, whatever was requested.
func (s Scope) ResolveReadTarget(requested *int64) *int64 {
	if s.Read != All {
		id := s.UserID
		return &id
	}
	return requested
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Role == models.RoleAdmin }

// RequireAdmin returns PermissionDenied for any non-admin session.
func (s Session) RequireAdmin() error {
	if !s.IsAdmin() {
		return apperr.PermissionDenied()
	}
	return nil
}

func allows(a Access, caller, owner int64) bool {
	switch a {
	case All:
		return true
	case Own:
		return caller == owner
	default:
		return false
	}
}
