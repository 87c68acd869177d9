package tasks

import (
	"context"
)

// Repository owns task records. Every operation is scoped to an owning user
// id; Update and Delete return common.ErrNotFound both when the task does
// not exist and when it belongs to another user, so the two cases are
// indistinguishable to callers.
type Repository interface {
	Create(ctx context.Context, task *Task) (*Task, error)
	Update(ctx context.Context, task *Task) (*Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	GetForUser(ctx context.Context, userID, taskID string) (*Task, error)

	// List returns one page of the user's tasks matching the normalized
	// query, ordered by UpdatedAt descending with ties broken by insertion
	// order, plus the pre-pagination total.
	List(ctx context.Context, userID string, q ListQuery) ([]*Task, int, error)
}
