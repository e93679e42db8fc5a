package security

import (
	"forum-permission-service/internal/repository/model"
	"github.com/stretchr/testify/assert"
	"testing"
)

var (
	authorEntries = entries(memberRoleId,
		model.PermissionTypeRead, model.PermissionTypeStart, model.PermissionTypeReply,
		model.PermissionTypeEdit, model.PermissionTypeDelete)
	moderatorEntries = append(authorEntries, entries(moderatorRoleId, model.PermissionTypeModerate)...)

	ownTopic       = model.ContentInfo{MemberId: ownerId}
	ownLockedTopic = model.ContentInfo{MemberId: ownerId, Locked: true}
)

func TestCanRead(t *testing.T) {
	p := member(ownerId, memberRoleId)

	assert.True(t, CanRead(p, authorEntries))
	// Suspension never blocks reading
	assert.True(t, CanRead(suspended(p), authorEntries))
	assert.False(t, CanRead(Guest(), authorEntries))
}

func TestCanStartAndReply(t *testing.T) {
	p := member(ownerId, memberRoleId)
	mod := member(strangerId, memberRoleId, moderatorRoleId)

	assert.True(t, CanStart(p, authorEntries))
	assert.True(t, CanReply(p, authorEntries))

	assert.False(t, CanStart(suspended(p), authorEntries))
	assert.False(t, CanReply(suspended(p), authorEntries))

	// Moderate does not lift suspension for posting
	assert.False(t, CanStart(suspended(mod), moderatorEntries))
	assert.False(t, CanReply(suspended(mod), moderatorEntries))

	readOnly := entries(memberRoleId, model.PermissionTypeRead)
	assert.False(t, CanStart(p, readOnly))
	assert.False(t, CanReply(p, readOnly))
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		entries   []model.PermissionEntry
		content   model.ContentInfo
		want      bool
	}{
		{
			name:      "owner unlocked",
			principal: member(ownerId, memberRoleId),
			entries:   authorEntries,
			content:   ownTopic,
			want:      true,
		},
		{
			name:      "owner locked",
			principal: member(ownerId, memberRoleId),
			entries:   authorEntries,
			content:   ownLockedTopic,
			want:      false,
		},
		{
			name:      "moderator locked",
			principal: member(strangerId, memberRoleId, moderatorRoleId),
			entries:   moderatorEntries,
			content:   ownLockedTopic,
			want:      true,
		},
		{
			name:      "suspended owner",
			principal: suspended(member(ownerId, memberRoleId)),
			entries:   authorEntries,
			content:   ownTopic,
			want:      false,
		},
		{
			name:      "suspended moderator",
			principal: suspended(member(strangerId, moderatorRoleId)),
			entries:   moderatorEntries,
			content:   ownLockedTopic,
			want:      true,
		},
		{
			name:      "non owner",
			principal: member(strangerId, memberRoleId),
			entries:   authorEntries,
			content:   ownTopic,
			want:      false,
		},
		{
			name:      "owner without edit permission",
			principal: member(ownerId, memberRoleId),
			entries:   entries(memberRoleId, model.PermissionTypeRead),
			content:   ownTopic,
			want:      false,
		},
		{
			name:      "guest never owns",
			principal: Guest(),
			entries:   entries(model.RoleIdAll, model.PermissionTypeEdit),
			content:   model.ContentInfo{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(tt.principal, tt.entries, tt.content))
		})
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		entries   []model.PermissionEntry
		want      bool
	}{
		{
			name:      "owner",
			principal: member(ownerId, memberRoleId),
			entries:   authorEntries,
			want:      true,
		},
		{
			name:      "non owner without moderate",
			principal: member(strangerId, memberRoleId),
			entries:   authorEntries,
			want:      false,
		},
		{
			name:      "non owner with moderate",
			principal: member(strangerId, memberRoleId, moderatorRoleId),
			entries:   moderatorEntries,
			want:      true,
		},
		{
			name:      "suspended owner",
			principal: suspended(member(ownerId, memberRoleId)),
			entries:   authorEntries,
			want:      true,
		},
		{
			name:      "owner without delete permission",
			principal: member(ownerId, memberRoleId),
			entries:   entries(memberRoleId, model.PermissionTypeEdit),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.principal, tt.entries, ownTopic))
		})
	}
}

func TestCanModerate(t *testing.T) {
	mod := member(strangerId, moderatorRoleId)

	assert.True(t, CanModerate(mod, moderatorEntries))
	assert.False(t, CanModerate(suspended(mod), moderatorEntries))
	assert.False(t, CanModerate(member(ownerId, memberRoleId), moderatorEntries))
	assert.True(t, CanModerate(Principal{IsAdmin: true}, nil))
}

func TestForumCapabilities(t *testing.T) {
	caps := ForumCapabilities(member(ownerId, memberRoleId), authorEntries)
	assert.Equal(t, Capabilities{
		CanRead:   true,
		CanStart:  true,
		CanReply:  true,
		CanEdit:   true,
		CanDelete: true,
	}, caps)

	caps = ForumCapabilities(suspended(member(ownerId, memberRoleId, moderatorRoleId)), moderatorEntries)
	assert.Equal(t, Capabilities{CanRead: true}, caps)

	assert.Equal(t, Capabilities{}, ForumCapabilities(Guest(), authorEntries))
}
