package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkolesnikov/taskvault/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *Task) (*Task, error) {

	query :=
		`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.CreatedAt, task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, userID, taskID string) (*Task, error) {
	query :=
		`SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task := &Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

// Update rewrites the mutable columns of the task, keyed by both id and
// owner so a foreign task is indistinguishable from a missing one.
func (r *PostgresRepository) Update(ctx context.Context, task *Task) (*Task, error) {
	query :=
		`UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6
		 `

	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.UpdatedAt, task.ID, task.UserID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if rows == 0 {
		return nil, common.ErrNotFound
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, q ListQuery) ([]*Task, int, error) {

	where, args := buildListPredicate(userID, q)

	var total int
	countQuery := `SELECT count(*) FROM tasks ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}

	// seq is a monotonic insertion counter, so equal timestamps page in a
	// stable, total order.
	pageQuery := `SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks ` +
		where +
		` ORDER BY updated_at DESC, seq ASC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.db.QueryContext(ctx, pageQuery, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	items := []*Task{}
	for rows.Next() {
		task := &Task{}
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error performing sql request: %w", err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error performing sql request: %w", err)
	}

	return items, total, nil
}

// buildListPredicate assembles the WHERE clause shared by the count and page
// queries. The owner predicate always comes first; nothing in q can widen
// the scope past userID.
func buildListPredicate(userID string, q ListQuery) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if q.Status != "" {
		args = append(args, q.Status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		clauses = append(clauses, "title ILIKE $"+strconv.Itoa(len(args))+" ESCAPE '\\'")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so the search text matches as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
