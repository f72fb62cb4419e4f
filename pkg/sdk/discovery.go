package sdk

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Gate bounds the startup wait for an upstream service.
type Gate struct {
	Attempts     int           `yaml:"attempts"`
	Interval     time.Duration `yaml:"interval"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// DefaultGate waits roughly four seconds before giving up.
func DefaultGate() Gate {
	return Gate{
		Attempts:     20,
		Interval:     200 * time.Millisecond,
		ProbeTimeout: time.Second,
	}
}

// Dial creates a client connection to addr. No I/O happens until the first call.
//
// Calls on the returned connection are fail-fast: if the upstream is unreachable
// the call fails with Unavailable instead of queueing, while the connection keeps
// reconnecting in the background.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
	cc, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return cc, nil
}

// WaitReady probes the standard health service until service reports SERVING.
// It returns an Unavailable error once g.Attempts probes have failed.
func WaitReady(ctx context.Context, cc grpc.ClientConnInterface, service string, g Gate) error {
	if g.Attempts < 1 {
		g.Attempts = 1
	}
	hc := healthpb.NewHealthClient(cc)

	var lastErr error
	for attempt := 1; attempt <= g.Attempts; attempt++ {
		probeCtx, cancel := withTimeout(ctx, g.ProbeTimeout)
		resp, err := hc.Check(probeCtx, &healthpb.HealthCheckRequest{Service: service}, grpc.CallContentSubtype(CodecName))
		cancel()
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			return nil
		}
		if err == nil {
			err = fmt.Errorf("health status %s", resp.GetStatus())
		}
		lastErr = err

		if attempt == g.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return Wrap(KindUnavailable, ctx.Err(), fmt.Sprintf("waiting for %s: %v", service, ctx.Err()))
		case <-time.After(g.Interval):
		}
	}
	return Wrap(KindUnavailable, lastErr, fmt.Sprintf("%s not ready after %d attempts: %v", service, g.Attempts, lastErr))
}

// DialReady dials addr and blocks until service passes the readiness gate.
// The connection is closed if the gate fails.
func DialReady(ctx context.Context, addr, service string, g Gate, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	cc, err := Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	if err := WaitReady(ctx, cc, service, g); err != nil {
		cc.Close()
		return nil, err
	}
	return cc, nil
}
