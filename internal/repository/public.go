package repository

import (
	"context"
	"errors"
	"forum-permission-service/internal/repository/model"
	"github.com/google/uuid"
)

//go:generate mockgen -source=public.go -destination=mock_repository.go -package=repository

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Repository interface {
	GetSiteByName(ctx context.Context, name string) (*model.Site, error)

	// GetForumPermissionSets returns the permission set assignment of every
	// published forum in the site.
	GetForumPermissionSets(ctx context.Context, siteId uuid.UUID) ([]model.ForumPermissionSet, error)
	GetPermissions(ctx context.Context, permissionSetId uuid.UUID) ([]model.Permission, error)

	GetMemberByUserId(ctx context.Context, userId string) (*model.Member, error)
	GetTopicInfo(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID) (*model.ContentInfo, error)
	GetReplyInfo(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, replyId uuid.UUID) (*model.ContentInfo, error)

	GetPermissionSet(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.PermissionSet, error)
	CreatePermissionSet(ctx context.Context, set *model.PermissionSet, permissions []model.Permission) error
	UpdatePermissionSet(ctx context.Context, set *model.PermissionSet, permissions []model.Permission) error
	DeletePermissionSet(ctx context.Context, siteId uuid.UUID, id uuid.UUID) error
	IsPermissionSetInUse(ctx context.Context, id uuid.UUID) (bool, error)

	GetCategory(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error

	GetForum(ctx context.Context, siteId uuid.UUID, id uuid.UUID) (*model.Forum, error)
	UpdateForum(ctx context.Context, forum *model.Forum) error

	CreateEvent(ctx context.Context, event *model.Event) error
}
