package entity

import "time"

// Project is owned by exactly one user. Tasks is populated by the store
// whenever a project is loaded so derived statistics can be computed.
type Project struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	OwnerID     int64
	OwnerEmail  string
	Tasks       []Task
}
