// Package engine holds the in-memory stores behind the Celerix commerce services.
package engine

import (
	"errors"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

var (
	// ErrUserNotFound is returned when a requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrOrderNotFound is returned when a requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateID is returned when a record is created under an ID already in use.
	ErrDuplicateID = errors.New("duplicate id")
)

// UserStore is the storage contract of the user registry.
type UserStore interface {
	// Create stores u under u.ID.
	Create(u schema.User) (schema.User, error)
	Get(id string) (schema.User, error)
	// List returns every user in insertion order.
	List() []schema.User
	// Update replaces name and email when the replacement is non-empty.
	Update(id, name, email string) (schema.User, error)
	// Delete removes id. Deleting an absent id is not an error.
	Delete(id string)
}

// OrderStore is the storage contract of the order registry.
type OrderStore interface {
	Create(o schema.Order) (schema.Order, error)
	Get(id string) (schema.Order, error)
	// List returns orders in insertion order, filtered by userID unless it is empty.
	List(userID string) []schema.Order
}
