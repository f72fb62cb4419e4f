package engine

import "github.com/celerix-dev/celerix-commerce/pkg/schema"

// UserMemStore is the in-memory UserStore.
type UserMemStore struct {
	t *table[schema.User]
}

// NewUserMemStore initializes an empty user store.
func NewUserMemStore() *UserMemStore {
	return &UserMemStore{t: newTable[schema.User](nil)}
}

func (s *UserMemStore) Create(u schema.User) (schema.User, error) {
	if !s.t.insert(u.ID, u) {
		return schema.User{}, ErrDuplicateID
	}
	return u, nil
}

func (s *UserMemStore) Get(id string) (schema.User, error) {
	u, ok := s.t.get(id)
	if !ok {
		return schema.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *UserMemStore) List() []schema.User {
	return s.t.scan(nil)
}

func (s *UserMemStore) Update(id, name, email string) (schema.User, error) {
	u, ok := s.t.update(id, func(u *schema.User) {
		if name != "" {
			u.Name = name
		}
		if email != "" {
			u.Email = email
		}
	})
	if !ok {
		return schema.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *UserMemStore) Delete(id string) {
	s.t.remove(id)
}

// Len reports the number of stored users.
func (s *UserMemStore) Len() int {
	return s.t.len()
}
