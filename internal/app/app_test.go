package app

import (
	"context"
	"testing"
	"time"

	"github.com/celerix-dev/celerix-commerce/internal/config"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

func TestRun_UserDaemonStopsOnCancel(t *testing.T) {
	t.Setenv("CELERIX_GRPC_PORT", "0")
	t.Setenv("CELERIX_HTTP_PORT", "off")

	a, err := New(config.RoleUser)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	for i := 0; a.router.Addr() == nil; i++ {
		if i > 100 {
			t.Fatal("grpc server never started")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if a.handler.Users == nil {
		t.Error("user service not exposed on the management API")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_OrderDaemonRefusesToStartWithoutUpstream(t *testing.T) {
	t.Setenv("CELERIX_GRPC_PORT", "0")
	t.Setenv("CELERIX_HTTP_PORT", "off")
	t.Setenv("USERSVC_ADDR", "127.0.0.1:1")
	t.Setenv("CELERIX_READY_ATTEMPTS", "2")
	t.Setenv("CELERIX_READY_INTERVAL", "10ms")
	t.Setenv("CELERIX_READY_PROBE_TIMEOUT", "200ms")

	a, err := New(config.RoleOrder)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = a.Run(context.Background())
	if sdk.KindOf(err) != sdk.KindUnavailable {
		t.Fatalf("kind = %v, want unavailable (err=%v)", sdk.KindOf(err), err)
	}
	if a.router.Addr() != nil {
		t.Error("server started despite failed readiness gate")
	}
}
