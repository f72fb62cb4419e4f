package engine

import "github.com/celerix-dev/celerix-commerce/pkg/schema"

// OrderMemStore is the in-memory OrderStore. Orders are never modified after
// Create, so copies handed out can never observe a later write.
type OrderMemStore struct {
	t *table[schema.Order]
}

// NewOrderMemStore initializes an empty order store.
func NewOrderMemStore() *OrderMemStore {
	return &OrderMemStore{t: newTable(schema.Order.Clone)}
}

func (s *OrderMemStore) Create(o schema.Order) (schema.Order, error) {
	if !s.t.insert(o.ID, o) {
		return schema.Order{}, ErrDuplicateID
	}
	return o.Clone(), nil
}

func (s *OrderMemStore) Get(id string) (schema.Order, error) {
	o, ok := s.t.get(id)
	if !ok {
		return schema.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderMemStore) List(userID string) []schema.Order {
	if userID == "" {
		return s.t.scan(nil)
	}
	return s.t.scan(func(o schema.Order) bool { return o.UserID == userID })
}

// Len reports the number of stored orders.
func (s *OrderMemStore) Len() int {
	return s.t.len()
}
