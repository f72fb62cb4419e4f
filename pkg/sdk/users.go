package sdk

import (
	"context"

	"google.golang.org/grpc"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

const (
	UserServiceName = "celerix.user.v1.UserService"

	userCreateMethod = "/" + UserServiceName + "/CreateUser"
	userGetMethod    = "/" + UserServiceName + "/GetUser"
	userListMethod   = "/" + UserServiceName + "/ListUsers"
	userUpdateMethod = "/" + UserServiceName + "/UpdateUser"
	userDeleteMethod = "/" + UserServiceName + "/DeleteUser"
)

// UserServer is the server API for the user registry.
type UserServer interface {
	CreateUser(context.Context, *schema.CreateUserRequest) (*schema.User, error)
	GetUser(context.Context, *schema.GetUserRequest) (*schema.User, error)
	ListUsers(context.Context, *schema.ListUsersRequest) (*schema.ListUsersResponse, error)
	UpdateUser(context.Context, *schema.UpdateUserRequest) (*schema.User, error)
	DeleteUser(context.Context, *schema.DeleteUserRequest) (*schema.DeleteUserResponse, error)
}

// UserServiceDesc describes the user registry for grpc registration.
var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: unaryHandler(userCreateMethod, func(s UserServer, ctx context.Context, in *schema.CreateUserRequest) (any, error) {
				return s.CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "GetUser",
			Handler: unaryHandler(userGetMethod, func(s UserServer, ctx context.Context, in *schema.GetUserRequest) (any, error) {
				return s.GetUser(ctx, in)
			}),
		},
		{
			MethodName: "ListUsers",
			Handler: unaryHandler(userListMethod, func(s UserServer, ctx context.Context, in *schema.ListUsersRequest) (any, error) {
				return s.ListUsers(ctx, in)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: unaryHandler(userUpdateMethod, func(s UserServer, ctx context.Context, in *schema.UpdateUserRequest) (any, error) {
				return s.UpdateUser(ctx, in)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: unaryHandler(userDeleteMethod, func(s UserServer, ctx context.Context, in *schema.DeleteUserRequest) (any, error) {
				return s.DeleteUser(ctx, in)
			}),
		},
	},
	Metadata: "celerix/user/v1/user.proto",
}

// RegisterUserServer attaches srv to s.
func RegisterUserServer(s grpc.ServiceRegistrar, srv UserServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

// UserClient is a remote client for the user registry.
// It implements UserDirectory.
type UserClient struct {
	cc       grpc.ClientConnInterface
	timeouts Timeouts
}

// NewUserClient wraps an established connection.
func NewUserClient(cc grpc.ClientConnInterface, t Timeouts) *UserClient {
	return &UserClient{cc: cc, timeouts: t}
}

func (c *UserClient) CreateUser(ctx context.Context, name, email string) (schema.User, error) {
	var out schema.User
	err := invoke(ctx, c.cc, c.timeouts.WriteUser, userCreateMethod, &schema.CreateUserRequest{Name: name, Email: email}, &out)
	return out, err
}

func (c *UserClient) GetUser(ctx context.Context, id string) (schema.User, error) {
	var out schema.User
	err := invoke(ctx, c.cc, c.timeouts.GetUser, userGetMethod, &schema.GetUserRequest{ID: id}, &out)
	return out, err
}

func (c *UserClient) ListUsers(ctx context.Context) ([]schema.User, error) {
	var out schema.ListUsersResponse
	if err := invoke(ctx, c.cc, c.timeouts.ListUsers, userListMethod, &schema.ListUsersRequest{}, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *UserClient) UpdateUser(ctx context.Context, id, name, email string) (schema.User, error) {
	var out schema.User
	err := invoke(ctx, c.cc, c.timeouts.WriteUser, userUpdateMethod, &schema.UpdateUserRequest{ID: id, Name: name, Email: email}, &out)
	return out, err
}

func (c *UserClient) DeleteUser(ctx context.Context, id string) error {
	return invoke(ctx, c.cc, c.timeouts.WriteUser, userDeleteMethod, &schema.DeleteUserRequest{ID: id}, &schema.DeleteUserResponse{})
}
