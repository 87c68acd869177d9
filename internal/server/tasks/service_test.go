package tasks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository())
}

func TestCreate_Defaults(t *testing.T) {
	s := newTestService()

	task, err := s.Create(context.Background(), "alice", "  buy milk  ", "", "")
	require.NoError(t, err)

	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, "alice", task.UserID)
	assert.NotEmpty(t, task.ID)
}

func TestCreate_Validation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "alice", "   ", "", "")
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)

	// explicit invalid status is rejected on create, unlike the list filter
	_, err = s.Create(ctx, "alice", "task", "", "urgent")
	require.ErrorAs(t, err, &verr)
}

func TestUpdate_PartialFields(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	task, err := s.Create(ctx, "alice", "buy milk", "2 liters", "")
	require.NoError(t, err)

	status := "done"
	updated, err := s.Update(ctx, "alice", task.ID, TaskPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusDone, updated.Status)
	assert.Equal(t, "buy milk", updated.Title)
	assert.Equal(t, "2 liters", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))

	// explicitly clearing the description is different from omitting it
	empty := ""
	updated, err = s.Update(ctx, "alice", task.ID, TaskPatch{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "buy milk", updated.Title)
}

func TestUpdate_Validation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	task, err := s.Create(ctx, "alice", "buy milk", "", "")
	require.NoError(t, err)

	blank := "  "
	_, err = s.Update(ctx, "alice", task.ID, TaskPatch{Title: &blank})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)

	bad := "blocked"
	_, err = s.Update(ctx, "alice", task.ID, TaskPatch{Status: &bad})
	require.ErrorAs(t, err, &verr)
}

func TestOwnerScoping_CrossUserIndistinguishable(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	task, err := s.Create(ctx, "alice", "alice's task", "", "")
	require.NoError(t, err)

	title := "hijacked"
	_, errForeign := s.Update(ctx, "bob", task.ID, TaskPatch{Title: &title})
	_, errMissing := s.Update(ctx, "bob", "no-such-id", TaskPatch{Title: &title})

	// a foreign task and a nonexistent one produce the same failure
	assert.ErrorIs(t, errForeign, common.ErrNotFound)
	assert.ErrorIs(t, errMissing, common.ErrNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	assert.ErrorIs(t, s.Delete(ctx, "bob", task.ID), common.ErrNotFound)

	// and bob never sees it in a listing
	result, err := s.List(ctx, "bob", ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Tasks)
}

func TestDelete_Idempotence(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	task, err := s.Create(ctx, "alice", "ephemeral", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice", task.ID))
	assert.ErrorIs(t, s.Delete(ctx, "alice", task.ID), common.ErrNotFound)
}

func TestList_StatusFilterAndSearch(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "alice", "buy milk", "", "")
	require.NoError(t, err)
	_, err = s.Create(ctx, "alice", "walk the dog", "", "in_progress")
	require.NoError(t, err)

	result, err := s.List(ctx, "alice", ListQuery{Search: "MILK"})
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "buy milk", result.Tasks[0].Title)
	assert.Equal(t, 1, result.Total)

	result, err = s.List(ctx, "alice", ListQuery{Status: StatusDone})
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Pages)

	// invalid status falls back to all statuses instead of erroring
	result, err = s.List(ctx, "alice", ListQuery{Status: "urgent"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestList_OrderingMostRecentFirst(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first, err := s.Create(ctx, "alice", "first", "", "")
	require.NoError(t, err)
	_, err = s.Create(ctx, "alice", "second", "", "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	status := "done"
	_, err = s.Update(ctx, "alice", first.ID, TaskPatch{Status: &status})
	require.NoError(t, err)

	result, err := s.List(ctx, "alice", ListQuery{})
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "first", result.Tasks[0].Title) // freshly updated rises to the top
	assert.Equal(t, "second", result.Tasks[1].Title)
}

func TestList_PaginationInvariant(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	const total = 23
	for i := 0; i < total; i++ {
		_, err := s.Create(ctx, "alice", fmt.Sprintf("task %02d", i), "", "")
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	q := ListQuery{Limit: 5}.Normalize()

	first, err := s.List(ctx, "alice", q)
	require.NoError(t, err)
	assert.Equal(t, total, first.Total)
	assert.Equal(t, 5, first.Pages)

	for page := 1; page <= first.Pages; page++ {
		result, err := s.List(ctx, "alice", ListQuery{Page: page, Limit: 5})
		require.NoError(t, err)
		for _, task := range result.Tasks {
			assert.False(t, seen[task.ID], "duplicate task %s on page %d", task.ID, page)
			seen[task.ID] = true
		}
	}

	// concatenating all pages yields exactly total items, no gaps
	assert.Len(t, seen, total)

	// a page past the end is empty, not an error
	result, err := s.List(ctx, "alice", ListQuery{Page: 99, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, total, result.Total)
}
