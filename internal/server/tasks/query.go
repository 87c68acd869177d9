package tasks

import "strings"

const (
	// MaxPageSize caps the worst-case result-set size of a single page.
	MaxPageSize     = 50
	defaultPageSize = 10
)

// ListQuery carries the raw filter/search/pagination parameters of a listing
// request. Zero values mean "not provided".
type ListQuery struct {
	Status Status
	Search string
	Page   int
	Limit  int
}

// Normalize clamps pagination and drops unusable filters:
//
//   - Page is clamped to a minimum of 1.
//   - Limit defaults to 10 and is clamped into [1, MaxPageSize].
//   - An invalid Status is silently cleared (falls back to all statuses);
//     the filter UI sends arbitrary values and must not see an error.
//   - Search is trimmed; a blank search is cleared.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if !q.Status.Valid() {
		q.Status = ""
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset returns the number of rows to skip for the normalized query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResult is one page of tasks plus the pre-pagination total and the
// derived page count, so callers can render pagination controls without a
// second round trip.
type ListResult struct {
	Tasks []*Task
	Page  int
	Limit int
	Total int
	Pages int
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
