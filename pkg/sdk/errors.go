package sdk

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a failure so it can cross a service boundary unchanged.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindUnavailable
	KindDeadlineExceeded
	// KindCanceled means the caller gave up on the call before it finished.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindDeadlineExceeded:
		return "deadline_exceeded"
	case KindCanceled:
		return "canceled"
	default:
		return "internal"
	}
}

// Code returns the grpc status code for k.
func (k Kind) Code() codes.Code {
	switch k {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindUnavailable:
		return codes.Unavailable
	case KindDeadlineExceeded:
		return codes.DeadlineExceeded
	case KindCanceled:
		return codes.Canceled
	default:
		return codes.Internal
	}
}

func kindFromCode(c codes.Code) Kind {
	switch c {
	case codes.InvalidArgument:
		return KindInvalidArgument
	case codes.NotFound:
		return KindNotFound
	case codes.Unavailable:
		return KindUnavailable
	case codes.DeadlineExceeded:
		return KindDeadlineExceeded
	case codes.Canceled:
		return KindCanceled
	default:
		return KindInternal
	}
}

// Error is the outcome of a failed service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping it reachable through errors.Is/As.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}
	if st, ok := status.FromError(err); ok {
		return kindFromCode(st.Code())
	}
	return KindInternal
}

// Annotate prefixes the message of err with context about the failed call,
// preserving its kind.
func Annotate(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Message: prefix + ": " + e.Message, Err: e}
	}
	return &Error{Kind: KindOf(err), Message: prefix + ": " + err.Error(), Err: err}
}

// FromRPC converts an error returned by a grpc call into an *Error.
func FromRPC(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindDeadlineExceeded, Message: "deadline exceeded", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Message: "call canceled", Err: err}
	}
	st, ok := status.FromError(err)
	if !ok {
		return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	}
	return &Error{Kind: kindFromCode(st.Code()), Message: st.Message(), Err: err}
}

// ToStatus converts err into a grpc status error for the server edge.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		if _, ok := status.FromError(err); ok {
			return err
		}
	}
	return status.Error(KindOf(err).Code(), err.Error())
}
