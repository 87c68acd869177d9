package users

import (
	"context"
	"sync"

	"github.com/dkolesnikov/taskvault/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local
// development. It mirrors the uniqueness guarantees of the Postgres schema.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrEmailTaken
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID

	u := *user
	return &u, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	if user.Email != prev.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return nil, common.ErrEmailTaken
		}
		delete(r.byEmail, prev.Email)
		r.byEmail[user.Email] = user.ID
	}

	r.byID[user.ID] = *user

	u := *user
	return &u, nil
}
