package security

import (
	"forum-permission-service/internal/repository/model"
	"github.com/google/uuid"
)

func CanRead(p Principal, entries []model.PermissionEntry) bool {
	return HasPermission(p, model.PermissionTypeRead, entries)
}

func CanStart(p Principal, entries []model.PermissionEntry) bool {
	return HasPermission(p, model.PermissionTypeStart, entries) && !p.IsSuspended
}

func CanReply(p Principal, entries []model.PermissionEntry) bool {
	return HasPermission(p, model.PermissionTypeReply, entries) && !p.IsSuspended
}

// CanEdit allows owners to edit their unlocked content while not suspended.
// Moderate overrides ownership, lock and suspension.
func CanEdit(p Principal, entries []model.PermissionEntry, content model.ContentInfo) bool {
	if HasPermission(p, model.PermissionTypeModerate, entries) {
		return true
	}
	return HasPermission(p, model.PermissionTypeEdit, entries) &&
		isOwner(p, content) &&
		!content.Locked &&
		!p.IsSuspended
}

// CanDelete allows owners to delete their own content. Moderate overrides
// ownership.
func CanDelete(p Principal, entries []model.PermissionEntry, content model.ContentInfo) bool {
	if HasPermission(p, model.PermissionTypeModerate, entries) {
		return true
	}
	return HasPermission(p, model.PermissionTypeDelete, entries) && isOwner(p, content)
}

// CanModerate gates pinning and locking. Unlike edit and delete, suspension
// still applies.
func CanModerate(p Principal, entries []model.PermissionEntry) bool {
	return HasPermission(p, model.PermissionTypeModerate, entries) && !p.IsSuspended
}

func isOwner(p Principal, content model.ContentInfo) bool {
	return p.Authenticated && p.MemberId != uuid.Nil && p.MemberId == content.MemberId
}

// Capabilities are the forum-wide flags shown alongside a topic page, before
// any particular post's ownership is known.
type Capabilities struct {
	CanRead     bool
	CanStart    bool
	CanReply    bool
	CanEdit     bool
	CanDelete   bool
	CanModerate bool
}

func ForumCapabilities(p Principal, entries []model.PermissionEntry) Capabilities {
	return Capabilities{
		CanRead:     CanRead(p, entries),
		CanStart:    CanStart(p, entries),
		CanReply:    CanReply(p, entries),
		CanEdit:     HasPermission(p, model.PermissionTypeEdit, entries) && !p.IsSuspended,
		CanDelete:   HasPermission(p, model.PermissionTypeDelete, entries) && !p.IsSuspended,
		CanModerate: CanModerate(p, entries),
	}
}
