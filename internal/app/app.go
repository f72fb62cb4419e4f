// Package app wires one Celerix daemon: configuration, logging, tracing,
// events, upstream connections and the grpc and HTTP servers.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/celerix-dev/celerix-commerce/internal/api"
	"github.com/celerix-dev/celerix-commerce/internal/clock"
	"github.com/celerix-dev/celerix-commerce/internal/config"
	"github.com/celerix-dev/celerix-commerce/internal/engine"
	"github.com/celerix-dev/celerix-commerce/internal/events"
	"github.com/celerix-dev/celerix-commerce/internal/identity"
	"github.com/celerix-dev/celerix-commerce/internal/observability"
	"github.com/celerix-dev/celerix-commerce/internal/orders"
	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/internal/reports"
	"github.com/celerix-dev/celerix-commerce/internal/server"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

const shutdownTimeout = 10 * time.Second

var serviceNames = map[config.Role]string{
	config.RoleUser:   "celerix-userd",
	config.RoleOrder:  "celerix-orderd",
	config.RoleReport: "celerix-reportd",
}

type App struct {
	Log    *logger.Logger
	Config *config.Config

	name    string
	router  *server.Router
	handler *api.Handler
	closers []func(context.Context) error
}

// New loads configuration for role and builds the logger. It does no I/O
// beyond reading the config file.
func New(role config.Role) (*App, error) {
	cfg, err := config.Load(role)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	name := serviceNames[role]
	return &App{
		Log:     log.With("service", name),
		Config:  cfg,
		name:    name,
		router:  server.NewRouter(log.With("service", name), cfg.MaxWorkers),
		handler: &api.Handler{},
	}, nil
}

// Run connects upstreams, serves until ctx ends, then drains both servers.
// It returns an Unavailable error without serving if an upstream never
// passes the readiness gate.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	shutdownTracing := observability.InitTracing(ctx, a.Log, a.name, a.Config.OTelEnabled)
	a.closers = append(a.closers, shutdownTracing)

	if err := a.wire(ctx); err != nil {
		return err
	}

	var httpSrv *http.Server
	if a.Config.HTTPEnabled() {
		if a.Config.Env == "production" || a.Config.Env == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}
		httpSrv = &http.Server{
			Addr:              ":" + a.Config.Listen.HTTPPort,
			Handler:           api.NewEngine(a.name, a.handler),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.router.Listen(a.Config.Listen.GRPCPort)
	})
	if httpSrv != nil {
		g.Go(func() error {
			a.Log.Info("HTTP management API listening", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down")
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.router.Stop(stopCtx)
		if httpSrv != nil {
			_ = httpSrv.Shutdown(stopCtx)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) wire(ctx context.Context) error {
	pub := a.publisher(ctx)
	timeouts := a.Config.Timeouts

	switch a.Config.Role {
	case config.RoleUser:
		svc := identity.NewService(engine.NewUserMemStore(), pub, a.Log)
		a.router.RegisterUsers(svc)
		a.handler.Users = svc

	case config.RoleOrder:
		userConn, err := a.upstream(ctx, a.Config.UserAddr, sdk.UserServiceName)
		if err != nil {
			return err
		}
		users := sdk.NewUserClient(userConn, timeouts)
		svc := orders.NewService(engine.NewOrderMemStore(), users, clock.NewSystem(), pub, a.Log)
		a.router.RegisterOrders(svc)
		a.handler.Users = users
		a.handler.Orders = svc

	case config.RoleReport:
		userConn, err := a.upstream(ctx, a.Config.UserAddr, sdk.UserServiceName)
		if err != nil {
			return err
		}
		orderConn, err := a.upstream(ctx, a.Config.OrderAddr, sdk.OrderServiceName)
		if err != nil {
			return err
		}
		users := sdk.NewUserClient(userConn, timeouts)
		ords := sdk.NewOrderClient(orderConn, timeouts)
		svc := reports.NewService(users, ords, a.Log)
		a.router.RegisterReports(svc)
		a.handler.Users = users
		a.handler.Orders = ords
		a.handler.Reports = svc

	default:
		return fmt.Errorf("unknown role %q", a.Config.Role)
	}
	return nil
}

// upstream dials addr and blocks on the readiness gate for service.
func (a *App) upstream(ctx context.Context, addr, service string) (*grpc.ClientConn, error) {
	a.Log.Info("waiting for upstream", "upstream", service, "addr", addr, "attempts", a.Config.Ready.Attempts)
	cc, err := sdk.DialReady(ctx, addr, service, a.Config.Ready,
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return cc.Close() })
	a.Log.Info("upstream ready", "upstream", service, "addr", addr)
	return cc, nil
}

// publisher returns a JetStream publisher when NATS is configured. Events are
// best effort, so a broker that cannot be reached degrades to Noop.
func (a *App) publisher(ctx context.Context) events.Publisher {
	if a.Config.NATSURL == "" {
		return events.Noop{}
	}
	pub, err := events.Connect(ctx, a.Config.NATSURL, a.name)
	if err != nil {
		a.Log.Warn("nats unavailable, events disabled", "url", a.Config.NATSURL, "error", err)
		return events.Noop{}
	}
	a.closers = append(a.closers, func(context.Context) error { pub.Close(); return nil })
	a.Log.Info("publishing events to nats", "url", a.Config.NATSURL)
	return pub
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.Log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
	a.Log.Sync()
}
