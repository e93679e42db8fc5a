package service

import (
	"context"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ForumPermissionServiceName is served with google.protobuf.Struct requests
// and responses, the same encoding the cache invalidation messages use.
const ForumPermissionServiceName = "forum.permission.v1.ForumPermissionService"

type ForumPermissionServer interface {
	GetCapabilities(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanRead(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanStartTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanModerate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanEditTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanDeleteTopic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanEditReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CanDeleteReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

	CreatePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdatePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeletePermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateCategory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateForumPermissionSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	MoveForum(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv ForumPermissionServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

var forumPermissionServiceDesc = grpc.ServiceDesc{
	ServiceName: ForumPermissionServiceName,
	HandlerType: (*ForumPermissionServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetCapabilities", ForumPermissionServer.GetCapabilities),
		unary("CanRead", ForumPermissionServer.CanRead),
		unary("CanStartTopic", ForumPermissionServer.CanStartTopic),
		unary("CanReply", ForumPermissionServer.CanReply),
		unary("CanModerate", ForumPermissionServer.CanModerate),
		unary("CanEditTopic", ForumPermissionServer.CanEditTopic),
		unary("CanDeleteTopic", ForumPermissionServer.CanDeleteTopic),
		unary("CanEditReply", ForumPermissionServer.CanEditReply),
		unary("CanDeleteReply", ForumPermissionServer.CanDeleteReply),
		unary("CreatePermissionSet", ForumPermissionServer.CreatePermissionSet),
		unary("UpdatePermissionSet", ForumPermissionServer.UpdatePermissionSet),
		unary("DeletePermissionSet", ForumPermissionServer.DeletePermissionSet),
		unary("UpdateCategory", ForumPermissionServer.UpdateCategory),
		unary("UpdateForumPermissionSet", ForumPermissionServer.UpdateForumPermissionSet),
		unary("MoveForum", ForumPermissionServer.MoveForum),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "forum/permission/v1/service.proto",
}

func RegisterForumPermissionServer(s grpc.ServiceRegistrar, srv ForumPermissionServer) {
	s.RegisterService(&forumPermissionServiceDesc, srv)
}

func unary(name string, method unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + ForumPermissionServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return method(srv.(ForumPermissionServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return method(srv.(ForumPermissionServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
