package service

import (
	"context"
	"errors"
	"fmt"
	"forum-permission-service/internal/cache"
	"forum-permission-service/internal/kafka/notifier"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"strings"
)

const (
	targetTypePermissionSet = "PermissionSet"
	targetTypeCategory      = "Category"
	targetTypeForum         = "Forum"
)

var (
	ErrInvalidPermissionSet = errors.New("invalid permission set")
	ErrPermissionSetInUse   = errors.New("permission set is in use")
)

// AdminService applies administrative changes to permission data. Every
// change that reaches the store evicts the affected cache keys before it
// returns, whether the write succeeded or not.
type AdminService struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	cache  *cache.Cache
	notif  notifier.Notifier
}

func NewAdminService(logger *zap.SugaredLogger, repo repository.Repository, c *cache.Cache, notif notifier.Notifier) *AdminService {
	return &AdminService{
		logger: logger,
		repo:   repo,
		cache:  c,
		notif:  notif,
	}
}

func (s *AdminService) CreatePermissionSet(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, name string,
	grants []model.PermissionEntry) (*model.PermissionSet, error) {

	set := &model.PermissionSet{
		Id:     uuid.New(),
		SiteId: siteId,
		Name:   strings.TrimSpace(name),
		Status: model.StatusPublished,
	}

	permissions, err := toPermissions(set, grants)
	if err != nil {
		return nil, err
	}

	keys := []string{cache.PermissionSet(set.Id)}
	if err := s.repo.CreatePermissionSet(ctx, set, permissions); err != nil {
		s.invalidate(ctx, keys)
		return nil, fmt.Errorf("failed to create permission set: %w", err)
	}

	s.commit(ctx, keys,
		targetTypePermissionSet, model.EventTypeCreated, set.Id, actorId,
		map[string]any{"name": set.Name, "permissions": grants})

	return set, nil
}

// UpdatePermissionSet renames the set and replaces all of its grants.
func (s *AdminService) UpdatePermissionSet(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, id uuid.UUID, name string,
	grants []model.PermissionEntry) (*model.PermissionSet, error) {

	set, err := s.repo.GetPermissionSet(ctx, siteId, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission set: %w", err)
	}
	set.Name = strings.TrimSpace(name)

	permissions, err := toPermissions(set, grants)
	if err != nil {
		return nil, err
	}

	keys := []string{cache.PermissionSet(set.Id)}
	if err := s.repo.UpdatePermissionSet(ctx, set, permissions); err != nil {
		s.invalidate(ctx, keys)
		return nil, fmt.Errorf("failed to update permission set: %w", err)
	}

	s.commit(ctx, keys,
		targetTypePermissionSet, model.EventTypeUpdated, set.Id, actorId,
		map[string]any{"name": set.Name, "permissions": grants})

	return set, nil
}

// DeletePermissionSet refuses to delete a set still assigned to a category or
// forum.
func (s *AdminService) DeletePermissionSet(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, id uuid.UUID) error {
	if _, err := s.repo.GetPermissionSet(ctx, siteId, id); err != nil {
		return fmt.Errorf("failed to get permission set: %w", err)
	}

	inUse, err := s.repo.IsPermissionSetInUse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check permission set usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("permission set %s: %w", id, ErrPermissionSetInUse)
	}

	keys := []string{cache.PermissionSet(id)}
	if err := s.repo.DeletePermissionSet(ctx, siteId, id); err != nil {
		s.invalidate(ctx, keys)
		return fmt.Errorf("failed to delete permission set: %w", err)
	}

	s.commit(ctx, keys,
		targetTypePermissionSet, model.EventTypeDeleted, id, actorId, nil)

	return nil
}

// UpdateCategory renames the category and changes the default permission set
// of its forums.
func (s *AdminService) UpdateCategory(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, id uuid.UUID, name string,
	permissionSetId uuid.UUID) (*model.Category, error) {

	if permissionSetId == uuid.Nil {
		return nil, fmt.Errorf("%w: category requires a permission set", ErrInvalidPermissionSet)
	}

	category, err := s.repo.GetCategory(ctx, siteId, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if _, err := s.repo.GetPermissionSet(ctx, siteId, permissionSetId); err != nil {
		return nil, fmt.Errorf("failed to get permission set: %w", err)
	}

	category.Name = strings.TrimSpace(name)
	category.PermissionSetId = permissionSetId

	keys := []string{cache.CurrentForums(siteId)}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		s.invalidate(ctx, keys)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.commit(ctx, keys,
		targetTypeCategory, model.EventTypeUpdated, category.Id, actorId,
		map[string]any{"name": category.Name, "permissionSetId": permissionSetId})

	return category, nil
}

// UpdateForumPermissionSet sets the forum's override permission set. A nil
// id clears the override so the forum inherits from its category again.
func (s *AdminService) UpdateForumPermissionSet(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, forumId uuid.UUID,
	permissionSetId *uuid.UUID) (*model.Forum, error) {

	forum, err := s.repo.GetForum(ctx, siteId, forumId)
	if err != nil {
		return nil, fmt.Errorf("failed to get forum: %w", err)
	}

	if permissionSetId != nil && *permissionSetId == uuid.Nil {
		permissionSetId = nil
	}
	if permissionSetId != nil {
		if _, err := s.repo.GetPermissionSet(ctx, siteId, *permissionSetId); err != nil {
			return nil, fmt.Errorf("failed to get permission set: %w", err)
		}
	}

	forum.PermissionSetId = permissionSetId

	keys := []string{cache.CurrentForums(siteId)}
	if err := s.repo.UpdateForum(ctx, forum); err != nil {
		s.invalidate(ctx, keys)
		return nil, fmt.Errorf("failed to update forum: %w", err)
	}

	s.commit(ctx, keys,
		targetTypeForum, model.EventTypeUpdated, forum.Id, actorId,
		map[string]any{"permissionSetId": permissionSetId})

	return forum, nil
}

// MoveForum moves the forum to another category of the same site, changing
// the permission set it inherits.
func (s *AdminService) MoveForum(ctx context.Context, siteId uuid.UUID, actorId uuid.UUID, forumId uuid.UUID,
	categoryId uuid.UUID) (*model.Forum, error) {

	if _, err := s.repo.GetCategory(ctx, siteId, categoryId); err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	forum, err := s.repo.GetForum(ctx, siteId, forumId)
	if err != nil {
		return nil, fmt.Errorf("failed to get forum: %w", err)
	}

	forum.CategoryId = categoryId

	keys := []string{cache.CurrentForums(siteId)}
	if err := s.repo.UpdateForum(ctx, forum); err != nil {
		s.invalidate(ctx, keys)
		return nil, fmt.Errorf("failed to update forum: %w", err)
	}

	s.commit(ctx, keys,
		targetTypeForum, model.EventTypeUpdated, forum.Id, actorId,
		map[string]any{"categoryId": categoryId})

	return forum, nil
}

// commit runs after a successful store write. The local eviction happens
// first and unconditionally; audit and fan-out failures are only logged.
func (s *AdminService) commit(ctx context.Context, keys []string, targetType string, eventType model.EventType,
	targetId uuid.UUID, actorId uuid.UUID, data any) {

	s.cache.Remove(keys...)

	var memberId *uuid.UUID
	if actorId != uuid.Nil {
		memberId = &actorId
	}

	event, err := model.NewEvent(targetType, eventType, targetId, memberId, data)
	if err != nil {
		s.logger.Errorw("error creating event", "targetType", targetType, "targetId", targetId, "error", err)
	} else if err := s.repo.CreateEvent(ctx, event); err != nil {
		s.logger.Errorw("error saving event", "targetType", targetType, "targetId", targetId, "error", err)
	}

	s.publish(ctx, keys)
}

// invalidate runs after a failed store write. The write may have partially
// applied, so every instance must drop what it cached.
func (s *AdminService) invalidate(ctx context.Context, keys []string) {
	s.cache.Remove(keys...)
	s.publish(ctx, keys)
}

func (s *AdminService) publish(ctx context.Context, keys []string) {
	if err := s.notif.CacheInvalidated(ctx, keys); err != nil {
		s.logger.Errorw("error sending cache invalidation", "keys", keys, "error", err)
	}
}

func toPermissions(set *model.PermissionSet, grants []model.PermissionEntry) ([]model.Permission, error) {
	if set.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPermissionSet)
	}

	seen := make(map[model.PermissionEntry]struct{}, len(grants))
	permissions := make([]model.Permission, 0, len(grants))
	for _, g := range grants {
		if g.RoleId == "" {
			return nil, fmt.Errorf("%w: grant of %s has no role", ErrInvalidPermissionSet, g.Type)
		}
		if !g.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown permission type %q", ErrInvalidPermissionSet, g.Type)
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}

		permissions = append(permissions, model.Permission{
			PermissionSetId: set.Id,
			RoleId:          g.RoleId,
			Type:            g.Type,
		})
	}

	return permissions, nil
}
