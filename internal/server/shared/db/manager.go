// Package db wires concrete repository implementations behind a single
// manager so the application can swap Postgres for the in-memory variant in
// tests and local development.
package db

import (
	"context"
	"database/sql"

	"github.com/dkolesnikov/taskvault/internal/server/tasks"
	"github.com/dkolesnikov/taskvault/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Tasks() tasks.Repository
}
