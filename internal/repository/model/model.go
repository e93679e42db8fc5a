package model

import (
	"encoding/json"
	"github.com/google/uuid"
	"time"
)

const (
	// RoleIdAll is matched by every caller, including guests.
	RoleIdAll = "all"
	// RoleIdRegistered is matched by every authenticated caller.
	RoleIdRegistered = "registered"

	DefaultSiteName = "Default"
)

type PermissionType string

const (
	PermissionTypeRead     PermissionType = "Read"
	PermissionTypeStart    PermissionType = "Start"
	PermissionTypeReply    PermissionType = "Reply"
	PermissionTypeEdit     PermissionType = "Edit"
	PermissionTypeDelete   PermissionType = "Delete"
	PermissionTypeModerate PermissionType = "Moderate"
)

var PermissionTypes = []PermissionType{
	PermissionTypeRead,
	PermissionTypeStart,
	PermissionTypeReply,
	PermissionTypeEdit,
	PermissionTypeDelete,
	PermissionTypeModerate,
}

func (t PermissionType) IsValid() bool {
	for _, pt := range PermissionTypes {
		if pt == t {
			return true
		}
	}
	return false
}

type StatusType string

const (
	StatusPublished StatusType = "Published"
	StatusDeleted   StatusType = "Deleted"
	StatusActive    StatusType = "Active"
	StatusSuspended StatusType = "Suspended"
)

type Site struct {
	Id    uuid.UUID `bson:"_id" json:"id"`
	Name  string    `bson:"name" json:"name"`
	Title string    `bson:"title" json:"title"`
}

// Category is a forum group. Its permission set is the default for every
// forum it contains.
type Category struct {
	Id              uuid.UUID  `bson:"_id" json:"id"`
	SiteId          uuid.UUID  `bson:"siteId" json:"siteId"`
	Name            string     `bson:"name" json:"name"`
	PermissionSetId uuid.UUID  `bson:"permissionSetId" json:"permissionSetId"`
	Status          StatusType `bson:"status" json:"status"`
}

type Forum struct {
	Id         uuid.UUID `bson:"_id" json:"id"`
	CategoryId uuid.UUID `bson:"categoryId" json:"categoryId"`
	Name       string    `bson:"name" json:"name"`
	Slug       string    `bson:"slug" json:"slug"`
	// PermissionSetId overrides the category's permission set when present.
	PermissionSetId *uuid.UUID `bson:"permissionSetId,omitempty" json:"permissionSetId,omitempty"`
	Status          StatusType `bson:"status" json:"status"`
}

type PermissionSet struct {
	Id     uuid.UUID  `bson:"_id" json:"id"`
	SiteId uuid.UUID  `bson:"siteId" json:"siteId"`
	Name   string     `bson:"name" json:"name"`
	Status StatusType `bson:"status" json:"status"`
}

// Permission is a single grant. A row's presence means the role may perform
// the action; there are no deny rows.
type Permission struct {
	PermissionSetId uuid.UUID      `bson:"permissionSetId" json:"permissionSetId"`
	RoleId          string         `bson:"roleId" json:"roleId"`
	Type            PermissionType `bson:"type" json:"type"`
}

func (p Permission) Entry() PermissionEntry {
	return PermissionEntry{RoleId: p.RoleId, Type: p.Type}
}

// PermissionEntry is one (role, action) grant of a resolved permission set.
type PermissionEntry struct {
	RoleId string         `json:"roleId"`
	Type   PermissionType `json:"type"`
}

// ForumPermissionSet is the permission set assignment of a single forum: the
// optional override set on the forum itself and the default inherited from
// its category.
type ForumPermissionSet struct {
	ForumId  uuid.UUID     `json:"forumId"`
	Override uuid.NullUUID `json:"override"`
	Default  uuid.NullUUID `json:"default"`
}

// Effective returns the permission set governing the forum. The override wins
// over the category default; false means neither is assigned.
func (f ForumPermissionSet) Effective() (uuid.UUID, bool) {
	if f.Override.Valid {
		return f.Override.UUID, true
	}
	if f.Default.Valid {
		return f.Default.UUID, true
	}
	return uuid.Nil, false
}

type Member struct {
	Id          uuid.UUID  `bson:"_id" json:"id"`
	UserId      string     `bson:"userId" json:"userId"`
	Email       string     `bson:"email" json:"email"`
	DisplayName string     `bson:"displayName" json:"displayName"`
	Status      StatusType `bson:"status" json:"status"`
}

func (m *Member) IsSuspended() bool {
	return m.Status == StatusSuspended
}

type Topic struct {
	Id       uuid.UUID  `bson:"_id" json:"id"`
	ForumId  uuid.UUID  `bson:"forumId" json:"forumId"`
	MemberId uuid.UUID  `bson:"memberId" json:"memberId"`
	Title    string     `bson:"title" json:"title"`
	Status   StatusType `bson:"status" json:"status"`
	Locked   bool       `bson:"locked" json:"locked"`
	Pinned   bool       `bson:"pinned" json:"pinned"`
}

type Reply struct {
	Id       uuid.UUID  `bson:"_id" json:"id"`
	TopicId  uuid.UUID  `bson:"topicId" json:"topicId"`
	ForumId  uuid.UUID  `bson:"forumId" json:"forumId"`
	MemberId uuid.UUID  `bson:"memberId" json:"memberId"`
	Status   StatusType `bson:"status" json:"status"`
}

// ContentInfo is the ownership and lock state of a topic or reply, the only
// content fields the permission policies look at.
type ContentInfo struct {
	MemberId uuid.UUID
	Locked   bool
}

type EventType string

const (
	EventTypeCreated EventType = "Created"
	EventTypeUpdated EventType = "Updated"
	EventTypeDeleted EventType = "Deleted"
)

// Event is an audit record of an administrative change.
type Event struct {
	Id         uuid.UUID  `bson:"_id" json:"id"`
	TimeStamp  time.Time  `bson:"timeStamp" json:"timeStamp"`
	TargetId   uuid.UUID  `bson:"targetId" json:"targetId"`
	TargetType string     `bson:"targetType" json:"targetType"`
	Type       EventType  `bson:"type" json:"type"`
	Data       string     `bson:"data,omitempty" json:"data,omitempty"`
	MemberId   *uuid.UUID `bson:"memberId,omitempty" json:"memberId,omitempty"`
}

func NewEvent(targetType string, eventType EventType, targetId uuid.UUID, memberId *uuid.UUID, data any) (*Event, error) {
	e := &Event{
		Id:         uuid.New(),
		TimeStamp:  time.Now().UTC(),
		TargetId:   targetId,
		TargetType: targetType,
		Type:       eventType,
		MemberId:   memberId,
	}

	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		e.Data = string(bytes)
	}

	return e, nil
}
