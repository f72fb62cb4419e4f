package sdk

import (
	"context"

	"google.golang.org/grpc"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

const (
	OrderServiceName = "celerix.order.v1.OrderService"

	orderCreateMethod = "/" + OrderServiceName + "/CreateOrder"
	orderGetMethod    = "/" + OrderServiceName + "/GetOrder"
	orderListMethod   = "/" + OrderServiceName + "/ListOrders"
)

// OrderServer is the server API for the order registry.
type OrderServer interface {
	CreateOrder(context.Context, *schema.CreateOrderRequest) (*schema.Order, error)
	GetOrder(context.Context, *schema.GetOrderRequest) (*schema.Order, error)
	ListOrders(context.Context, *schema.ListOrdersRequest) (*schema.ListOrdersResponse, error)
}

// OrderServiceDesc describes the order registry for grpc registration.
var OrderServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler: unaryHandler(orderCreateMethod, func(s OrderServer, ctx context.Context, in *schema.CreateOrderRequest) (any, error) {
				return s.CreateOrder(ctx, in)
			}),
		},
		{
			MethodName: "GetOrder",
			Handler: unaryHandler(orderGetMethod, func(s OrderServer, ctx context.Context, in *schema.GetOrderRequest) (any, error) {
				return s.GetOrder(ctx, in)
			}),
		},
		{
			MethodName: "ListOrders",
			Handler: unaryHandler(orderListMethod, func(s OrderServer, ctx context.Context, in *schema.ListOrdersRequest) (any, error) {
				return s.ListOrders(ctx, in)
			}),
		},
	},
	Metadata: "celerix/order/v1/order.proto",
}

// RegisterOrderServer attaches srv to s.
func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&OrderServiceDesc, srv)
}

// OrderClient is a remote client for the order registry.
// It implements OrderLedger.
type OrderClient struct {
	cc       grpc.ClientConnInterface
	timeouts Timeouts
}

func NewOrderClient(cc grpc.ClientConnInterface, t Timeouts) *OrderClient {
	return &OrderClient{cc: cc, timeouts: t}
}

func (c *OrderClient) CreateOrder(ctx context.Context, userID string, items []string, total float64) (schema.Order, error) {
	var out schema.Order
	in := &schema.CreateOrderRequest{UserID: userID, Items: items, Total: total}
	err := invoke(ctx, c.cc, c.timeouts.WriteOrder, orderCreateMethod, in, &out)
	return out, err
}

func (c *OrderClient) GetOrder(ctx context.Context, id string) (schema.Order, error) {
	var out schema.Order
	err := invoke(ctx, c.cc, c.timeouts.GetOrder, orderGetMethod, &schema.GetOrderRequest{ID: id}, &out)
	return out, err
}

func (c *OrderClient) ListOrders(ctx context.Context, userID string) ([]schema.Order, error) {
	var out schema.ListOrdersResponse
	if err := invoke(ctx, c.cc, c.timeouts.ListOrders, orderListMethod, &schema.ListOrdersRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}
