package application

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrInvalidToken = errors.New("invalid token")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("email is already in use")
	ErrAccessDenied = errors.New("access denied")
)

// NotFoundError names the missing resource and the identifier it was looked up by.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %v", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError is a user-correctable problem with one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
