// Package orders implements the order registry. Orders reference a user that
// must exist at creation time and carry a snapshot of that user's name.
package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/celerix-dev/celerix-commerce/internal/clock"
	"github.com/celerix-dev/celerix-commerce/internal/engine"
	"github.com/celerix-dev/celerix-commerce/internal/events"
	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/pkg/schema"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// MaxOrderTotal bounds a single order so that sums over any realistic number of
// orders stay finite.
const MaxOrderTotal = 1e12

// UserLookup is the slice of the user registry the order registry depends on.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (schema.User, error)
}

// Service implements sdk.OrderLedger.
type Service struct {
	store  engine.OrderStore
	users  UserLookup
	clock  clock.Clock
	events events.Publisher
	log    *logger.Logger
	newID  func() string
}

var _ sdk.OrderLedger = (*Service)(nil)

func NewService(store engine.OrderStore, users UserLookup, clk clock.Clock, pub events.Publisher, log *logger.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		store:  store,
		users:  users,
		clock:  clk,
		events: pub,
		log:    log,
		newID:  uuid.NewString,
	}
}

// CreateOrder validates the request locally, confirms the user with the
// registry, and stores the order with a snapshot of the user's current name.
// An upstream failure is returned with its kind intact.
func (s *Service) CreateOrder(ctx context.Context, userID string, items []string, total float64) (schema.Order, error) {
	if err := validate(userID, items, total); err != nil {
		return schema.Order{}, err
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.log.Debug("user lookup failed", "user_id", userID, "kind", sdk.KindOf(err).String(), "error", err)
		return schema.Order{}, sdk.Annotate(err, "user lookup failed")
	}

	order, err := s.store.Create(schema.Order{
		ID:               s.newID(),
		UserID:           user.ID,
		UserNameSnapshot: user.Name,
		Items:            items,
		Total:            total,
		CreatedAt:        s.clock.Now(),
	})
	if err != nil {
		return schema.Order{}, sdk.Wrap(sdk.KindInternal, err, "create order: "+err.Error())
	}

	if err := s.events.Publish(ctx, events.SubjectOrderCreated, order); err != nil {
		s.log.Warn("event publish failed", "subject", events.SubjectOrderCreated, "error", err)
	}
	return order, nil
}

func (s *Service) GetOrder(_ context.Context, id string) (schema.Order, error) {
	o, err := s.store.Get(id)
	if errors.Is(err, engine.ErrOrderNotFound) {
		return schema.Order{}, sdk.Wrap(sdk.KindNotFound, err, "order not found")
	}
	if err != nil {
		return schema.Order{}, sdk.Wrap(sdk.KindInternal, err, err.Error())
	}
	return o, nil
}

func (s *Service) ListOrders(_ context.Context, userID string) ([]schema.Order, error) {
	return s.store.List(userID), nil
}

func validate(userID string, items []string, total float64) error {
	switch {
	case userID == "":
		return sdk.Errorf(sdk.KindInvalidArgument, "user_id is required")
	case len(items) == 0:
		return sdk.Errorf(sdk.KindInvalidArgument, "at least one item is required")
	case !(total > 0):
		return sdk.Errorf(sdk.KindInvalidArgument, "total must be positive, got %v", total)
	case total > MaxOrderTotal:
		return sdk.Errorf(sdk.KindInvalidArgument, "total must not exceed %g, got %v", float64(MaxOrderTotal), total)
	}
	return nil
}
