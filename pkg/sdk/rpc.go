package sdk

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// Timeouts bounds every outbound call by kind. A zero value disables the bound
// for that call and leaves only the caller's context in charge.
type Timeouts struct {
	GetUser    time.Duration `yaml:"get_user"`
	ListUsers  time.Duration `yaml:"list_users"`
	WriteUser  time.Duration `yaml:"write_user"`
	GetOrder   time.Duration `yaml:"get_order"`
	ListOrders time.Duration `yaml:"list_orders"`
	WriteOrder time.Duration `yaml:"write_order"`
	Report     time.Duration `yaml:"report"`
}

// DefaultTimeouts returns the per-call bounds used between services.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		GetUser:    2 * time.Second,
		ListUsers:  3 * time.Second,
		WriteUser:  3 * time.Second,
		GetOrder:   2 * time.Second,
		ListOrders: 3 * time.Second,
		WriteOrder: 3 * time.Second,
		Report:     5 * time.Second,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// invoke performs a unary call bounded by d and translates the outcome.
func invoke(ctx context.Context, cc grpc.ClientConnInterface, d time.Duration, method string, in, out any) error {
	ctx, cancel := withTimeout(ctx, d)
	defer cancel()
	return FromRPC(cc.Invoke(ctx, method, in, out, grpc.CallContentSubtype(CodecName)))
}

// unaryHandler adapts a typed server method to grpc's MethodHandler, the same
// shape protoc-gen-go-grpc emits.
func unaryHandler[S, Req any](fullMethod string, call func(S, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
