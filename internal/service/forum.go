package service

import (
	"context"
	"errors"
	"fmt"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"forum-permission-service/internal/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var errInvalidRequest = errors.New("invalid request")

// Services is the permission core as served over gRPC.
type Services struct {
	Context       *ContextService
	Authorization *AuthorizationService
	Admin         *AdminService
}

type forumPermissionService struct {
	logger   *zap.SugaredLogger
	services *Services
}

func newForumPermissionService(logger *zap.SugaredLogger, services *Services) ForumPermissionServer {
	return &forumPermissionService{
		logger:   logger,
		services: services,
	}
}

func (s *forumPermissionService) GetCapabilities(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, p, err := s.caller(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	forumId, err := r.id("forumId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	caps, err := s.services.Authorization.Capabilities(ctx, siteId, forumId, p)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"canRead":     caps.CanRead,
		"canStart":    caps.CanStart,
		"canReply":    caps.CanReply,
		"canEdit":     caps.CanEdit,
		"canDelete":   caps.CanDelete,
		"canModerate": caps.CanModerate,
	})
}

func (s *forumPermissionService) CanRead(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.forumCheck(ctx, in, s.services.Authorization.CanRead)
}

func (s *forumPermissionService) CanStartTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.forumCheck(ctx, in, s.services.Authorization.CanStartTopic)
}

func (s *forumPermissionService) CanReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.forumCheck(ctx, in, s.services.Authorization.CanReply)
}

func (s *forumPermissionService) CanModerate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.forumCheck(ctx, in, s.services.Authorization.CanModerate)
}

func (s *forumPermissionService) CanEditTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.topicCheck(ctx, in, s.services.Authorization.CanEditTopic)
}

func (s *forumPermissionService) CanDeleteTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.topicCheck(ctx, in, s.services.Authorization.CanDeleteTopic)
}

func (s *forumPermissionService) CanEditReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.replyCheck(ctx, in, s.services.Authorization.CanEditReply)
}

func (s *forumPermissionService) CanDeleteReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.replyCheck(ctx, in, s.services.Authorization.CanDeleteReply)
}

func (s *forumPermissionService) CreatePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	grants, err := r.grants()
	if err != nil {
		return nil, s.toStatus(err)
	}

	set, err := s.services.Admin.CreatePermissionSet(ctx, siteId, actorId, r.field("name"), grants)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return permissionSetResponse(set)
}

func (s *forumPermissionService) UpdatePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	id, err := r.id("permissionSetId")
	if err != nil {
		return nil, s.toStatus(err)
	}
	grants, err := r.grants()
	if err != nil {
		return nil, s.toStatus(err)
	}

	set, err := s.services.Admin.UpdatePermissionSet(ctx, siteId, actorId, id, r.field("name"), grants)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return permissionSetResponse(set)
}

func (s *forumPermissionService) DeletePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	id, err := r.id("permissionSetId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	if err := s.services.Admin.DeletePermissionSet(ctx, siteId, actorId, id); err != nil {
		return nil, s.toStatus(err)
	}

	return &structpb.Struct{}, nil
}

func (s *forumPermissionService) UpdateCategory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	id, err := r.id("categoryId")
	if err != nil {
		return nil, s.toStatus(err)
	}
	setId, err := r.id("permissionSetId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	category, err := s.services.Admin.UpdateCategory(ctx, siteId, actorId, id, r.field("name"), setId)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"id":              category.Id.String(),
		"name":            category.Name,
		"permissionSetId": category.PermissionSetId.String(),
	})
}

// UpdateForumPermissionSet clears the override when permissionSetId is
// missing, null or empty.
func (s *forumPermissionService) UpdateForumPermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	forumId, err := r.id("forumId")
	if err != nil {
		return nil, s.toStatus(err)
	}
	setId, err := r.optionalId("permissionSetId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	forum, err := s.services.Admin.UpdateForumPermissionSet(ctx, siteId, actorId, forumId, setId)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return forumResponse(forum)
}

func (s *forumPermissionService) MoveForum(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r := request{in}
	siteId, actorId, err := s.admin(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	forumId, err := r.id("forumId")
	if err != nil {
		return nil, s.toStatus(err)
	}
	categoryId, err := r.id("categoryId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	forum, err := s.services.Admin.MoveForum(ctx, siteId, actorId, forumId, categoryId)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return forumResponse(forum)
}

type forumDecision func(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error)

type topicDecision func(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, p security.Principal) (bool, error)

type replyDecision func(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, replyId uuid.UUID, p security.Principal) (bool, error)

func (s *forumPermissionService) forumCheck(ctx context.Context, in *structpb.Struct, decide forumDecision) (*structpb.Struct, error) {
	r := request{in}
	siteId, p, err := s.caller(ctx, r)
	if err != nil {
		return nil, s.toStatus(err)
	}
	forumId, err := r.id("forumId")
	if err != nil {
		return nil, s.toStatus(err)
	}

	allowed, err := decide(ctx, siteId, forumId, p)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return allowedResponse(allowed), nil
}

func (s *forumPermissionService) topicCheck(ctx context.Context, in *structpb.Struct, decide topicDecision) (*structpb.Struct, error) {
	return s.forumCheck(ctx, in, func(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, p security.Principal) (bool, error) {
		topicId, err := request{in}.id("topicId")
		if err != nil {
			return false, err
		}
		return decide(ctx, siteId, forumId, topicId, p)
	})
}

func (s *forumPermissionService) replyCheck(ctx context.Context, in *structpb.Struct, decide replyDecision) (*structpb.Struct, error) {
	return s.topicCheck(ctx, in, func(ctx context.Context, siteId uuid.UUID, forumId uuid.UUID, topicId uuid.UUID, p security.Principal) (bool, error) {
		replyId, err := request{in}.id("replyId")
		if err != nil {
			return false, err
		}
		return decide(ctx, siteId, forumId, topicId, replyId, p)
	})
}

// caller resolves the request's site (Default when omitted) and principal.
func (s *forumPermissionService) caller(ctx context.Context, r request) (uuid.UUID, security.Principal, error) {
	name := r.field("site")
	if name == "" {
		name = model.DefaultSiteName
	}

	site, err := s.services.Context.CurrentSite(ctx, name)
	if err != nil {
		return uuid.Nil, security.Principal{}, err
	}

	p, err := s.services.Context.CurrentMember(ctx, r.identity())
	if err != nil {
		return uuid.Nil, security.Principal{}, err
	}

	return site.Id, p, nil
}

// admin resolves the caller and refuses anyone without the Admin role. The
// returned actor id is uuid.Nil for an admin without a member record.
func (s *forumPermissionService) admin(ctx context.Context, r request) (uuid.UUID, uuid.UUID, error) {
	siteId, p, err := s.caller(ctx, r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !p.IsAdmin {
		return uuid.Nil, uuid.Nil, status.Error(codes.PermissionDenied, "admin role required")
	}
	return siteId, p.MemberId, nil
}

func (s *forumPermissionService) toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, errInvalidRequest), errors.Is(err, ErrInvalidPermissionSet):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, repository.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, ErrPermissionSetInUse):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}

	s.logger.Errorw("failed to handle request", "error", err)
	return status.Error(codes.Internal, "internal error")
}

// request reads the fields of a structpb request.
type request struct {
	in *structpb.Struct
}

func (r request) field(name string) string {
	return r.in.GetFields()[name].GetStringValue()
}

func (r request) id(name string) (uuid.UUID, error) {
	v := r.field(name)
	if v == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", errInvalidRequest, name)
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a uuid", errInvalidRequest, name)
	}
	return id, nil
}

func (r request) optionalId(name string) (*uuid.UUID, error) {
	if r.field(name) == "" {
		return nil, nil
	}

	id, err := r.id(name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// identity is {userId, authenticated, roles: [{id, name}]} as asserted by
// the upstream identity subsystem.
func (r request) identity() security.Identity {
	in := r.in.GetFields()["identity"].GetStructValue()

	identity := security.Identity{
		UserId:        in.GetFields()["userId"].GetStringValue(),
		Authenticated: in.GetFields()["authenticated"].GetBoolValue(),
	}
	for _, v := range in.GetFields()["roles"].GetListValue().GetValues() {
		role := v.GetStructValue()
		identity.Roles = append(identity.Roles, security.Role{
			Id:   role.GetFields()["id"].GetStringValue(),
			Name: role.GetFields()["name"].GetStringValue(),
		})
	}
	return identity
}

func (r request) grants() ([]model.PermissionEntry, error) {
	values := r.in.GetFields()["grants"].GetListValue().GetValues()

	grants := make([]model.PermissionEntry, 0, len(values))
	for _, v := range values {
		g := v.GetStructValue()
		if g == nil {
			return nil, fmt.Errorf("%w: grants must be objects", errInvalidRequest)
		}
		grants = append(grants, model.PermissionEntry{
			RoleId: g.GetFields()["roleId"].GetStringValue(),
			Type:   model.PermissionType(g.GetFields()["type"].GetStringValue()),
		})
	}
	return grants, nil
}

func allowedResponse(allowed bool) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"allowed": structpb.NewBoolValue(allowed),
	}}
}

func permissionSetResponse(set *model.PermissionSet) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":   set.Id.String(),
		"name": set.Name,
	})
}

func forumResponse(forum *model.Forum) (*structpb.Struct, error) {
	fields := map[string]any{
		"id":              forum.Id.String(),
		"categoryId":      forum.CategoryId.String(),
		"permissionSetId": nil,
	}
	if forum.PermissionSetId != nil {
		fields["permissionSetId"] = forum.PermissionSetId.String()
	}
	return structpb.NewStruct(fields)
}
