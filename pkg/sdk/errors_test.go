package sdk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

func TestKindRoundTripsThroughStatus(t *testing.T) {
	kinds := []sdk.Kind{
		sdk.KindInternal,
		sdk.KindInvalidArgument,
		sdk.KindNotFound,
		sdk.KindUnavailable,
		sdk.KindDeadlineExceeded,
		sdk.KindCanceled,
	}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			st := sdk.ToStatus(sdk.Errorf(k, "boom"))
			if status.Code(st) != k.Code() {
				t.Errorf("code = %v, want %v", status.Code(st), k.Code())
			}
			back := sdk.FromRPC(st)
			if sdk.KindOf(back) != k {
				t.Errorf("kind = %v, want %v", sdk.KindOf(back), k)
			}
			if back.Error() != "boom" {
				t.Errorf("message = %q", back.Error())
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want sdk.Kind
	}{
		{"plain", errors.New("x"), sdk.KindInternal},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), sdk.KindDeadlineExceeded},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), sdk.KindCanceled},
		{"canceled status", status.Error(codes.Canceled, "client went away"), sdk.KindCanceled},
		{"status", status.Error(codes.NotFound, "gone"), sdk.KindNotFound},
		{"unmapped status", status.Error(codes.PermissionDenied, "no"), sdk.KindInternal},
		{"wrapped sdk error", fmt.Errorf("outer: %w", sdk.Errorf(sdk.KindUnavailable, "down")), sdk.KindUnavailable},
	}
	for _, c := range cases {
		if got := sdk.KindOf(c.err); got != c.want {
			t.Errorf("%s: KindOf = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	if sdk.Annotate(nil, "x") != nil {
		t.Error("Annotate(nil) should be nil")
	}

	base := sdk.Errorf(sdk.KindNotFound, "user not found")
	err := sdk.Annotate(base, "user lookup failed")
	if err.Error() != "user lookup failed: user not found" {
		t.Errorf("message = %q", err.Error())
	}
	if sdk.KindOf(err) != sdk.KindNotFound {
		t.Errorf("kind = %v", sdk.KindOf(err))
	}
	if !errors.Is(err, base) {
		t.Error("annotated error does not wrap the base error")
	}

	err = sdk.Annotate(context.DeadlineExceeded, "order listing failed")
	if sdk.KindOf(err) != sdk.KindDeadlineExceeded {
		t.Errorf("kind = %v, want deadline_exceeded", sdk.KindOf(err))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := sdk.Wrap(sdk.KindInternal, cause, "create user: disk on fire")
	if !errors.Is(err, cause) {
		t.Error("Wrap lost the cause")
	}
	if sdk.Wrap(sdk.KindInternal, nil, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestFromRPC_ContextDeadline(t *testing.T) {
	err := sdk.FromRPC(context.DeadlineExceeded)
	if sdk.KindOf(err) != sdk.KindDeadlineExceeded {
		t.Errorf("kind = %v", sdk.KindOf(err))
	}
	if sdk.FromRPC(nil) != nil {
		t.Error("FromRPC(nil) should be nil")
	}
}

func TestFromRPC_ContextCanceled(t *testing.T) {
	err := sdk.FromRPC(fmt.Errorf("dial: %w", context.Canceled))
	if sdk.KindOf(err) != sdk.KindCanceled {
		t.Errorf("kind = %v, want canceled", sdk.KindOf(err))
	}
	if status.Code(sdk.ToStatus(err)) != codes.Canceled {
		t.Errorf("code = %v, want Canceled", status.Code(sdk.ToStatus(err)))
	}
}

func TestToStatus_PassesStatusThrough(t *testing.T) {
	in := status.Error(codes.ResourceExhausted, "slow down")
	if out := sdk.ToStatus(in); status.Code(out) != codes.ResourceExhausted {
		t.Errorf("code = %v, want ResourceExhausted", status.Code(out))
	}
	if out := sdk.ToStatus(context.DeadlineExceeded); status.Code(out) != codes.DeadlineExceeded {
		t.Errorf("code = %v, want DeadlineExceeded", status.Code(out))
	}
}
