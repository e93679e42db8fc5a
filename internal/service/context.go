package service

import (
	"context"
	"errors"
	"fmt"
	"forum-permission-service/internal/cache"
	"forum-permission-service/internal/permission"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"forum-permission-service/internal/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextService resolves the site, member and forums a request runs against.
type ContextService struct {
	logger  *zap.SugaredLogger
	repo    repository.Repository
	cache   *cache.Cache
	builder *permission.ModelBuilder

	adminRoleName string
}

func NewContextService(logger *zap.SugaredLogger, repo repository.Repository, c *cache.Cache,
	builder *permission.ModelBuilder, adminRoleName string) *ContextService {

	return &ContextService{
		logger:        logger,
		repo:          repo,
		cache:         c,
		builder:       builder,
		adminRoleName: adminRoleName,
	}
}

func (s *ContextService) CurrentSite(ctx context.Context, name string) (*model.Site, error) {
	return cache.GetOrSetAs(ctx, s.cache, cache.CurrentSite(name), func(ctx context.Context) (*model.Site, error) {
		site, err := s.repo.GetSiteByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get site: %w", err)
		}
		return site, nil
	})
}

func (s *ContextService) CurrentForums(ctx context.Context, siteId uuid.UUID) ([]model.ForumPermissionSet, error) {
	return s.builder.CurrentForums(ctx, siteId)
}

// CurrentMember matches the identity to a forum member. Anonymous callers get
// the guest principal. An authenticated identity without a member record
// keeps its roles but owns no content. Members are never cached so that a
// suspension applies to the next request.
func (s *ContextService) CurrentMember(ctx context.Context, identity security.Identity) (security.Principal, error) {
	if !identity.Authenticated || identity.UserId == "" {
		return security.Guest(), nil
	}

	p := security.Principal{
		Authenticated: true,
		RoleIds:       make([]string, 0, len(identity.Roles)),
	}
	for _, role := range identity.Roles {
		p.RoleIds = append(p.RoleIds, role.Id)
		if role.Name == s.adminRoleName {
			p.IsAdmin = true
		}
	}

	member, err := s.repo.GetMemberByUserId(ctx, identity.UserId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debugw("no member for authenticated user", "userId", identity.UserId)
			return p, nil
		}
		return security.Principal{}, fmt.Errorf("failed to get member: %w", err)
	}

	p.MemberId = member.Id
	p.IsSuspended = member.IsSuspended()
	return p, nil
}
