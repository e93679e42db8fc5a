package service

import (
	"context"
	"fmt"
	"forum-permission-service/internal/permission"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"forum-permission-service/internal/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthorizationService answers the permission questions asked by the forum's
// request handlers. A denial is a false result, never an error; errors are
// either repository.ErrNotFound or store failures.
type AuthorizationService struct {
	logger  *zap.SugaredLogger
	repo    repository.Repository
	builder *permission.ModelBuilder
}

func NewAuthorizationService(logger *zap.SugaredLogger, repo repository.Repository, builder *permission.ModelBuilder) *AuthorizationService {
	return &AuthorizationService{
		logger:  logger,
		repo:    repo,
		builder: builder,
	}
}

func (s *AuthorizationService) Capabilities(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (security.Capabilities, error) {
	entries, err := s.builder.BuildPermissionModelsByForumId(ctx, siteId, forumId)
	if err != nil {
		return security.Capabilities{}, err
	}
	return security.ForumCapabilities(p, entries), nil
}

func (s *AuthorizationService) CanRead(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error) {
	return s.decide(ctx, "read", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanRead(p, entries)
	})
}

func (s *AuthorizationService) CanStartTopic(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error) {
	return s.decide(ctx, "start topic", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanStart(p, entries)
	})
}

func (s *AuthorizationService) CanReply(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error) {
	return s.decide(ctx, "reply", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanReply(p, entries)
	})
}

// CanModerate gates pinning and locking topics.
func (s *AuthorizationService) CanModerate(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error) {
	return s.decide(ctx, "moderate", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanModerate(p, entries)
	})
}

func (s *AuthorizationService) CanEditTopic(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, p security.Principal) (bool, error) {
	info, err := s.repo.GetTopicInfo(ctx, siteId, forumId, topicId)
	if err != nil {
		return false, fmt.Errorf("failed to get topic: %w", err)
	}

	return s.decide(ctx, "edit topic", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanEdit(p, entries, *info)
	})
}

func (s *AuthorizationService) CanDeleteTopic(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, p security.Principal) (bool, error) {
	info, err := s.repo.GetTopicInfo(ctx, siteId, forumId, topicId)
	if err != nil {
		return false, fmt.Errorf("failed to get topic: %w", err)
	}

	return s.decide(ctx, "delete topic", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanDelete(p, entries, *info)
	})
}

func (s *AuthorizationService) CanEditReply(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, replyId uuid.UUID, p security.Principal) (bool, error) {
	info, err := s.repo.GetReplyInfo(ctx, siteId, forumId, topicId, replyId)
	if err != nil {
		return false, fmt.Errorf("failed to get reply: %w", err)
	}

	return s.decide(ctx, "edit reply", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanEdit(p, entries, *info)
	})
}

func (s *AuthorizationService) CanDeleteReply(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, replyId uuid.UUID, p security.Principal) (bool, error) {
	info, err := s.repo.GetReplyInfo(ctx, siteId, forumId, topicId, replyId)
	if err != nil {
		return false, fmt.Errorf("failed to get reply: %w", err)
	}

	return s.decide(ctx, "delete reply", siteId, forumId, p, func(entries []model.PermissionEntry) bool {
		return security.CanDelete(p, entries, *info)
	})
}

func (s *AuthorizationService) decide(ctx context.Context, action string, siteId uuid.UUID, forumId uuid.UUID,
	p security.Principal, policy func(entries []model.PermissionEntry) bool) (bool, error) {

	entries, err := s.builder.BuildPermissionModelsByForumId(ctx, siteId, forumId)
	if err != nil {
		return false, err
	}

	allowed := policy(entries)
	if !allowed {
		s.logger.Debugw("permission denied", "action", action, "siteId", siteId, "forumId", forumId,
			"memberId", p.MemberId, "suspended", p.IsSuspended)
	}
	return allowed, nil
}
