package db

import (
	"context"
	"database/sql"

	"github.com/dkolesnikov/taskvault/internal/server/tasks"
	"github.com/dkolesnikov/taskvault/internal/server/users"
)

type InMemoryRepositoryManager struct {
	users users.Repository
	tasks tasks.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		tasks: tasks.NewInMemoryRepository(),
	}
}
