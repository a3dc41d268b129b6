package service

import (
	"slices"
	"strings"

	"github.com/forgo/agenda/internal/model"
)

// Role is a coarse permission group carried by the identity token
type Role string

const (
	RoleTeacher   Role = "teacher"
	RoleAdmin     Role = "admin"
	RoleDirection Role = "direction"
	RoleStudent   Role = "student"
)

// ParseRole accepts "admin", "ADMIN" and "ROLE_ADMIN" alike.
// ok is false for names outside the known set.
func ParseRole(s string) (Role, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "role_")

	switch r := Role(name); r {
	case RoleTeacher, RoleAdmin, RoleDirection, RoleStudent:
		return r, true
	}
	return "", false
}

// ParseRoles converts token role names, dropping unknown ones
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		if r, ok := ParseRole(n); ok && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// Identity is the verified caller of a request
type Identity struct {
	Email string
	Name  string
	Roles []Role
}

// HasRole reports whether the identity carries role
func (i *Identity) HasRole(role Role) bool {
	return i != nil && slices.Contains(i.Roles, role)
}

// HasAnyRole reports whether the identity carries at least one of roles
func (i *Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}

// CanAccessEvent reports whether identity may read event. Admins and
// direction read any event, everyone else only their own.
func CanAccessEvent(identity *Identity, event *model.Event) bool {
	if identity == nil || event == nil {
		return false
	}
	if identity.HasAnyRole(RoleAdmin, RoleDirection) {
		return true
	}
	return identity.Email == event.OwnerEmail
}

// CanDeleteEvent reports whether identity may delete or replace event
func CanDeleteEvent(identity *Identity, event *model.Event) bool {
	if identity == nil || event == nil {
		return false
	}
	return identity.HasRole(RoleAdmin) || identity.Email == event.OwnerEmail
}
