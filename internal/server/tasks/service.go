package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/google/uuid"
)

// TaskPatch is a partial-update payload: nil means "leave unchanged". An
// explicitly empty description clears the field.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// Service enforces ownership and validation on top of a Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new task for ownerID. Title is required and trimmed;
// status defaults to todo when absent. The owner is fixed here and no later
// operation can change it.
func (s *Service) Create(ctx context.Context, ownerID, title, description, status string) (*Task, error) {

	title = strings.TrimSpace(title)

	var fields []string
	if title == "" {
		fields = append(fields, "Title is required")
	}

	st := StatusTodo
	if status != "" {
		st = Status(status)
		if !st.Valid() {
			fields = append(fields, "Status must be todo, in_progress, or done")
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(fields...)
	}

	now := time.Now()
	task := &Task{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      st,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// Update applies only the fields present in patch to the task identified by
// taskID and owned by ownerID, refreshing the last-modified timestamp.
// Returns common.ErrNotFound when the task does not exist or belongs to
// someone else.
func (s *Service) Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*Task, error) {

	var fields []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		fields = append(fields, "Title cannot be empty")
	}
	if patch.Status != nil && !Status(*patch.Status).Valid() {
		fields = append(fields, "Status must be todo, in_progress, or done")
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(fields...)
	}

	task, err := s.repo.GetForUser(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = Status(*patch.Status)
	}
	task.UpdatedAt = time.Now()

	return s.repo.Update(ctx, task)
}

// Delete permanently removes the task; same collapsed not-found/forbidden
// semantics as Update.
func (s *Service) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.repo.Delete(ctx, ownerID, taskID)
}

// List runs the query engine for ownerID: the raw parameters are normalized
// (clamped pagination, ignored invalid status, trimmed search) and the
// result carries the total and derived page count.
func (s *Service) List(ctx context.Context, ownerID string, q ListQuery) (*ListResult, error) {

	q = q.Normalize()

	items, total, err := s.repo.List(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return &ListResult{
		Tasks: items,
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pageCount(total, q.Limit),
	}, nil
}
