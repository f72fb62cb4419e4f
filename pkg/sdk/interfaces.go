package sdk

import (
	"context"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

// --- Functional Interfaces (Interface Segregation) ---

// UserReader defines the read side of the user registry.
type UserReader interface {
	GetUser(ctx context.Context, id string) (schema.User, error)
	ListUsers(ctx context.Context) ([]schema.User, error)
}

// UserWriter defines the mutating side of the user registry.
type UserWriter interface {
	CreateUser(ctx context.Context, name, email string) (schema.User, error)
	// UpdateUser applies a partial update; empty values keep the current field.
	UpdateUser(ctx context.Context, id, name, email string) (schema.User, error)
	// DeleteUser is idempotent.
	DeleteUser(ctx context.Context, id string) error
}

// OrderReader defines the read side of the order registry.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (schema.Order, error)
	// ListOrders returns every order when userID is empty.
	ListOrders(ctx context.Context, userID string) ([]schema.Order, error)
}

// OrderWriter defines order creation.
type OrderWriter interface {
	CreateOrder(ctx context.Context, userID string, items []string, total float64) (schema.Order, error)
}

// ReportReader defines the aggregation queries.
type ReportReader interface {
	GetUserOrdersReport(ctx context.Context, userID string) (schema.UserOrdersReport, error)
	GetTopUsersByOrders(ctx context.Context, topN int) (schema.TopUsersReport, error)
}

// --- Composite Interfaces ---

// UserDirectory is the full user registry contract. Both the in-process
// service and the remote UserClient implement it.
type UserDirectory interface {
	UserReader
	UserWriter
}

// OrderLedger is the full order registry contract.
type OrderLedger interface {
	OrderReader
	OrderWriter
}
