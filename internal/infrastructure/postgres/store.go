package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/task-tracker/internal/domain/repository"
)

// NewStore builds the Postgres-backed repositories sharing one pool.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Users:    NewUserRepository(pool),
		Projects: NewProjectRepository(pool),
		Tasks:    NewTaskRepository(pool),
		Ping:     pool.Ping,
	}
}
