package permission

import (
	"context"
	"fmt"
	"forum-permission-service/internal/cache"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"sort"
)

type ModelBuilder struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	cache  *cache.Cache
}

func NewModelBuilder(logger *zap.SugaredLogger, repo repository.Repository, c *cache.Cache) *ModelBuilder {
	return &ModelBuilder{
		logger: logger,
		repo:   repo,
		cache:  c,
	}
}

// BuildPermissionModelsByForumId returns the grants of the permission set
// governing the forum. A forum without a resolvable permission set yields an
// empty slice; a forum that is not a published forum of the site yields
// repository.ErrNotFound.
func (b *ModelBuilder) BuildPermissionModelsByForumId(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID) ([]model.PermissionEntry, error) {
	forums, err := b.CurrentForums(ctx, siteId)
	if err != nil {
		return nil, err
	}

	var assignment *model.ForumPermissionSet
	for i := range forums {
		if forums[i].ForumId == forumId {
			assignment = &forums[i]
			break
		}
	}
	if assignment == nil {
		return nil, fmt.Errorf("forum %s in site %s: %w", forumId, siteId, repository.ErrNotFound)
	}

	permissionSetId, ok := assignment.Effective()
	if !ok {
		b.logger.Warnw("forum has no permission set", "siteId", siteId, "forumId", forumId)
		return []model.PermissionEntry{}, nil
	}

	return b.PermissionSetEntries(ctx, permissionSetId)
}

// CurrentForums returns the permission set assignment of every published
// forum of the site.
func (b *ModelBuilder) CurrentForums(ctx context.Context, siteId uuid.UUID) ([]model.ForumPermissionSet, error) {
	return cache.GetOrSetAs(ctx, b.cache, cache.CurrentForums(siteId), func(ctx context.Context) ([]model.ForumPermissionSet, error) {
		forums, err := b.repo.GetForumPermissionSets(ctx, siteId)
		if err != nil {
			return nil, fmt.Errorf("failed to get forum permission sets: %w", err)
		}
		return forums, nil
	})
}

// PermissionSetEntries returns the grants of a permission set sorted by role
// then type. The returned slice is a copy and may be modified by the caller.
func (b *ModelBuilder) PermissionSetEntries(ctx context.Context, permissionSetId uuid.UUID) ([]model.PermissionEntry, error) {
	cached, err := cache.GetOrSetAs(ctx, b.cache, cache.PermissionSet(permissionSetId), func(ctx context.Context) ([]model.PermissionEntry, error) {
		permissions, err := b.repo.GetPermissions(ctx, permissionSetId)
		if err != nil {
			return nil, fmt.Errorf("failed to get permissions: %w", err)
		}
		return toEntries(permissions), nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.PermissionEntry, len(cached))
	copy(result, cached)
	return result, nil
}

func toEntries(permissions []model.Permission) []model.PermissionEntry {
	seen := make(map[model.PermissionEntry]struct{}, len(permissions))
	result := make([]model.PermissionEntry, 0, len(permissions))
	for _, p := range permissions {
		e := p.Entry()
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].RoleId != result[j].RoleId {
			return result[i].RoleId < result[j].RoleId
		}
		return result[i].Type < result[j].Type
	})
	return result
}
