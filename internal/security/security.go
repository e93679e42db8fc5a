package security

import (
	"forum-permission-service/internal/repository/model"
	"github.com/google/uuid"
)

// Role is a role as carried by the identity subsystem's claims.
type Role struct {
	Id   string
	Name string
}

// Identity is the authenticated (or anonymous) caller before it has been
// matched to a forum member.
type Identity struct {
	UserId        string
	Authenticated bool
	Roles         []Role
}

// Principal is the caller the permission checks are evaluated for.
type Principal struct {
	MemberId      uuid.UUID
	Authenticated bool
	RoleIds       []string

	// IsAdmin bypasses every permission entry.
	IsAdmin     bool
	IsSuspended bool
}

// Guest is an unauthenticated caller. It only matches the implicit all role.
func Guest() Principal {
	return Principal{}
}

func (p Principal) HasRole(roleId string) bool {
	switch roleId {
	case model.RoleIdAll:
		return true
	case model.RoleIdRegistered:
		return p.Authenticated
	}

	for _, r := range p.RoleIds {
		if r == roleId {
			return true
		}
	}
	return false
}

// HasPermission reports whether the principal may perform permissionType
// given the entries of a resolved permission set. A missing entry is a
// denial.
func HasPermission(p Principal, permissionType model.PermissionType, entries []model.PermissionEntry) bool {
	if p.IsAdmin {
		return true
	}

	for _, e := range entries {
		if e.Type == permissionType && p.HasRole(e.RoleId) {
			return true
		}
	}
	return false
}
