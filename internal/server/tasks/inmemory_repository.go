package tasks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dkolesnikov/taskvault/internal/common"
)

// InMemoryRepository is a slice-backed Repository used by tests and local
// development. The slice keeps insertion order, which is the tie-break for
// listing, mirroring the seq column of the Postgres schema.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Task
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, *task)

	t := *task
	return &t, nil
}

func (r *InMemoryRepository) GetForUser(ctx context.Context, userID, taskID string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == taskID && r.items[i].UserID == userID {
			t := r.items[i]
			return &t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == task.ID && r.items[i].UserID == task.UserID {
			r.items[i] = *task
			t := *task
			return &t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == taskID && r.items[i].UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *InMemoryRepository) List(ctx context.Context, userID string, q ListQuery) ([]*Task, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Task, 0, len(r.items))
	for _, t := range r.items {
		if t.UserID != userID {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(q.Search)) {
			continue
		}
		matched = append(matched, t)
	}

	// Stable sort over the insertion-ordered slice keeps creation order for
	// equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := len(matched)

	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	page := make([]*Task, 0, end-start)
	for i := start; i < end; i++ {
		t := matched[i]
		page = append(page, &t)
	}

	return page, total, nil
}
