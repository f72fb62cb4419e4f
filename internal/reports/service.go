// Package reports implements the aggregation service. It owns no data: every
// report is computed from the user and order registries at request time.
package reports

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/pkg/schema"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// OrderLister is the slice of the order registry the reports depend on.
type OrderLister interface {
	ListOrders(ctx context.Context, userID string) ([]schema.Order, error)
}

// Service implements sdk.ReportReader.
type Service struct {
	users  sdk.UserReader
	orders OrderLister
	log    *logger.Logger
	tracer trace.Tracer
}

var _ sdk.ReportReader = (*Service)(nil)

func NewService(users sdk.UserReader, orders OrderLister, log *logger.Logger) *Service {
	return &Service{
		users:  users,
		orders: orders,
		log:    log,
		tracer: otel.Tracer("github.com/celerix-dev/celerix-commerce/internal/reports"),
	}
}

// GetUserOrdersReport returns the user's current identity with the count and
// sum of their orders. A user with no orders gets a zero report.
func (s *Service) GetUserOrdersReport(ctx context.Context, userID string) (schema.UserOrdersReport, error) {
	ctx, span := s.tracer.Start(ctx, "reports.GetUserOrdersReport")
	defer span.End()

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return schema.UserOrdersReport{}, fail(span, sdk.Annotate(err, "user lookup failed"))
	}

	orders, err := s.orders.ListOrders(ctx, user.ID)
	if err != nil {
		return schema.UserOrdersReport{}, fail(span, sdk.Annotate(err, "order listing failed"))
	}

	report := schema.UserOrdersReport{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		OrdersCount: len(orders),
	}
	for _, o := range orders {
		report.OrdersTotal += o.Total
	}
	span.SetAttributes(attribute.Int("orders.count", report.OrdersCount))
	return report, nil
}

// GetTopUsersByOrders ranks every known user by order count and total.
//
// Users and orders are fetched concurrently and independently, so an order
// created between the two reads may be missed. Orders of deleted users are
// not counted.
func (s *Service) GetTopUsersByOrders(ctx context.Context, topN int) (schema.TopUsersReport, error) {
	ctx, span := s.tracer.Start(ctx, "reports.GetTopUsersByOrders")
	defer span.End()

	var (
		users  []schema.User
		orders []schema.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.ListUsers(gctx)
		return sdk.Annotate(err, "user listing failed")
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListOrders(gctx, "")
		return sdk.Annotate(err, "order listing failed")
	})
	if err := g.Wait(); err != nil {
		return schema.TopUsersReport{}, fail(span, err)
	}

	entries := Rank(users, orders, topN)
	span.SetAttributes(
		attribute.Int("users.count", len(users)),
		attribute.Int("orders.count", len(orders)),
		attribute.Int("top_n", ClampTopN(topN)),
	)
	s.log.Debug("ranked users", "users", len(users), "orders", len(orders), "returned", len(entries))
	return schema.TopUsersReport{Entries: entries}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
