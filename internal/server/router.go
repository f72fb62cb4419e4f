package server

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

const healthPrefix = "/grpc.health.v1.Health/"

// Router hosts one or more Celerix services on a grpc server.
type Router struct {
	srv    *grpc.Server
	health *health.Server
	log    *logger.Logger
	slots  *semaphore.Weighted

	mu       sync.Mutex
	listener net.Listener
}

// NewRouter builds a server that runs at most maxWorkers handlers at once.
func NewRouter(log *logger.Logger, maxWorkers int, opts ...grpc.ServerOption) *Router {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	r := &Router{
		health: health.NewServer(),
		log:    log,
		slots:  semaphore.NewWeighted(int64(maxWorkers)),
	}
	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.NumStreamWorkers(uint32(maxWorkers)),
		grpc.ChainUnaryInterceptor(r.observe, r.limit),
	}
	r.srv = grpc.NewServer(append(base, opts...)...)
	healthpb.RegisterHealthServer(r.srv, r.health)
	return r
}

func (r *Router) RegisterUsers(svc sdk.UserDirectory) {
	sdk.RegisterUserServer(r.srv, userHandler{svc: svc})
	r.health.SetServingStatus(sdk.UserServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (r *Router) RegisterOrders(svc sdk.OrderLedger) {
	sdk.RegisterOrderServer(r.srv, orderHandler{svc: svc})
	r.health.SetServingStatus(sdk.OrderServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (r *Router) RegisterReports(svc sdk.ReportReader) {
	sdk.RegisterReportServer(r.srv, reportHandler{svc: svc})
	r.health.SetServingStatus(sdk.ReportServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Listen binds port on all interfaces and serves until Stop.
func (r *Router) Listen(port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}
	return r.Serve(lis)
}

// Serve accepts connections on lis until Stop.
func (r *Router) Serve(lis net.Listener) error {
	r.mu.Lock()
	r.listener = lis
	r.mu.Unlock()

	r.log.Info("grpc server listening", "addr", lis.Addr().String())
	if err := r.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Addr returns the bound address, or nil before Serve.
func (r *Router) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Stop marks every service NOT_SERVING and drains in-flight calls. Calls still
// running when ctx ends are cut off.
func (r *Router) Stop(ctx context.Context) {
	r.health.Shutdown()

	done := make(chan struct{})
	go func() {
		r.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		r.log.Warn("graceful stop timed out, forcing")
		r.srv.Stop()
		<-done
	}
}

// limit holds a worker slot for the duration of a handler. Health probes
// bypass it so readiness is reported even under load.
func (r *Router) limit(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if strings.HasPrefix(info.FullMethod, healthPrefix) {
		return handler(ctx, req)
	}
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	defer r.slots.Release(1)
	return handler(ctx, req)
}

// observe translates domain errors into grpc statuses and logs the call.
func (r *Router) observe(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	err = sdk.ToStatus(err)

	if strings.HasPrefix(info.FullMethod, healthPrefix) {
		return resp, err
	}
	code := status.Code(err)
	if err != nil {
		r.log.Warn("rpc failed", "method", info.FullMethod, "code", code.String(), "duration", time.Since(start), "error", err)
	} else {
		r.log.Debug("rpc", "method", info.FullMethod, "code", code.String(), "duration", time.Since(start))
	}
	return resp, err
}
