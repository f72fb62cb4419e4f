// Package identity implements the user registry, the authority on user identity.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/celerix-dev/celerix-commerce/internal/engine"
	"github.com/celerix-dev/celerix-commerce/internal/events"
	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/pkg/schema"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// Service implements sdk.UserDirectory on top of a UserStore.
type Service struct {
	store  engine.UserStore
	events events.Publisher
	log    *logger.Logger
	newID  func() string
}

var _ sdk.UserDirectory = (*Service)(nil)

func NewService(store engine.UserStore, pub events.Publisher, log *logger.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		store:  store,
		events: pub,
		log:    log,
		newID:  uuid.NewString,
	}
}

func (s *Service) CreateUser(ctx context.Context, name, email string) (schema.User, error) {
	if name == "" || email == "" {
		return schema.User{}, sdk.Errorf(sdk.KindInvalidArgument, "name and email are required")
	}
	u, err := s.store.Create(schema.User{ID: s.newID(), Name: name, Email: email})
	if err != nil {
		return schema.User{}, sdk.Wrap(sdk.KindInternal, err, "create user: "+err.Error())
	}
	s.publish(ctx, events.SubjectUserCreated, u)
	return u, nil
}

func (s *Service) GetUser(_ context.Context, id string) (schema.User, error) {
	u, err := s.store.Get(id)
	if err != nil {
		return schema.User{}, translate(err)
	}
	return u, nil
}

func (s *Service) ListUsers(context.Context) ([]schema.User, error) {
	return s.store.List(), nil
}

func (s *Service) UpdateUser(ctx context.Context, id, name, email string) (schema.User, error) {
	u, err := s.store.Update(id, name, email)
	if err != nil {
		return schema.User{}, translate(err)
	}
	s.publish(ctx, events.SubjectUserUpdated, u)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	s.store.Delete(id)
	s.publish(ctx, events.SubjectUserDeleted, map[string]string{"id": id})
	return nil
}

func (s *Service) publish(ctx context.Context, subject string, data any) {
	if err := s.events.Publish(ctx, subject, data); err != nil {
		s.log.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func translate(err error) error {
	if errors.Is(err, engine.ErrUserNotFound) {
		return sdk.Wrap(sdk.KindNotFound, err, "user not found")
	}
	return sdk.Wrap(sdk.KindInternal, err, err.Error())
}
