package repository

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference means a referenced parent row does not exist.
	ErrReference = errors.New("referenced record does not exist")
)
