package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_NormalizeClamping(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values", 0, 0, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"zero limit defaults", 3, 0, 3, 10},
		{"limit too small", 1, -5, 1, 1},
		{"limit zero after explicit", 1, 0, 1, 10},
		{"limit too large", 1, 1000, 1, 50},
		{"limit at cap", 1, 50, 1, 50},
		{"limit inside range", 2, 25, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListQuery{Page: tt.page, Limit: tt.limit}.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestListQuery_NormalizeStatus(t *testing.T) {
	// invalid status values are dropped, not rejected
	q := ListQuery{Status: "urgent", Page: 1, Limit: 10}.Normalize()
	assert.Equal(t, Status(""), q.Status)

	for _, s := range []Status{StatusTodo, StatusInProgress, StatusDone} {
		q := ListQuery{Status: s, Page: 1, Limit: 10}.Normalize()
		assert.Equal(t, s, q.Status)
	}
}

func TestListQuery_NormalizeSearch(t *testing.T) {
	q := ListQuery{Search: "  milk  ", Page: 1, Limit: 10}.Normalize()
	assert.Equal(t, "milk", q.Search)

	q = ListQuery{Search: "   ", Page: 1, Limit: 10}.Normalize()
	assert.Equal(t, "", q.Search)
}

func TestListQuery_Offset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 20}.Normalize()
	assert.Equal(t, 40, q.Offset())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(1, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 3, pageCount(25, 10))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, Status("todo").Valid())
	assert.True(t, Status("in_progress").Valid())
	assert.True(t, Status("done").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("DONE").Valid())
	assert.False(t, Status("finished").Valid())
}
