package server

import (
	"context"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// The handlers unpack request envelopes and hand off to the domain services.

type userHandler struct{ svc sdk.UserDirectory }

func (h userHandler) CreateUser(ctx context.Context, in *schema.CreateUserRequest) (*schema.User, error) {
	u, err := h.svc.CreateUser(ctx, in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (h userHandler) GetUser(ctx context.Context, in *schema.GetUserRequest) (*schema.User, error) {
	u, err := h.svc.GetUser(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (h userHandler) ListUsers(ctx context.Context, _ *schema.ListUsersRequest) (*schema.ListUsersResponse, error) {
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &schema.ListUsersResponse{Users: users}, nil
}

func (h userHandler) UpdateUser(ctx context.Context, in *schema.UpdateUserRequest) (*schema.User, error) {
	u, err := h.svc.UpdateUser(ctx, in.ID, in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (h userHandler) DeleteUser(ctx context.Context, in *schema.DeleteUserRequest) (*schema.DeleteUserResponse, error) {
	if err := h.svc.DeleteUser(ctx, in.ID); err != nil {
		return nil, err
	}
	return &schema.DeleteUserResponse{}, nil
}

type orderHandler struct{ svc sdk.OrderLedger }

func (h orderHandler) CreateOrder(ctx context.Context, in *schema.CreateOrderRequest) (*schema.Order, error) {
	o, err := h.svc.CreateOrder(ctx, in.UserID, in.Items, in.Total)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (h orderHandler) GetOrder(ctx context.Context, in *schema.GetOrderRequest) (*schema.Order, error) {
	o, err := h.svc.GetOrder(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (h orderHandler) ListOrders(ctx context.Context, in *schema.ListOrdersRequest) (*schema.ListOrdersResponse, error) {
	orders, err := h.svc.ListOrders(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	return &schema.ListOrdersResponse{Orders: orders}, nil
}

type reportHandler struct{ svc sdk.ReportReader }

func (h reportHandler) GetUserOrdersReport(ctx context.Context, in *schema.UserOrdersReportRequest) (*schema.UserOrdersReport, error) {
	r, err := h.svc.GetUserOrdersReport(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (h reportHandler) GetTopUsersByOrders(ctx context.Context, in *schema.TopUsersByOrdersRequest) (*schema.TopUsersReport, error) {
	r, err := h.svc.GetTopUsersByOrders(ctx, in.TopN)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
