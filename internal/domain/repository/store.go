package repository

import "context"

// Store bundles the repositories of one backing database.
type Store struct {
	Users    UserRepository
	Projects ProjectRepository
	Tasks    TaskRepository

	// Ping checks the database is reachable.
	Ping func(ctx context.Context) error
}
