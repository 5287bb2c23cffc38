package service

import (
	"errors"
	"fmt"
	"strings"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

// Error classes the HTTP layer maps to status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrAccountPending     = fmt.Errorf("%w: account is awaiting verification", ErrForbidden)
	ErrSlotFull           = fmt.Errorf("%w: slot full", ErrConflict)
	ErrAlreadyBooked      = fmt.Errorf("%w: already signed up for this event", ErrConflict)
	ErrNoActiveBooking    = fmt.Errorf("%w: no active booking for this event", ErrConflict)
	ErrInsufficientPoints = fmt.Errorf("%w: insufficient points", ErrConflict)
	ErrOutOfStock         = fmt.Errorf("%w: reward is out of stock", ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
)

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries per-field messages. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Error
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: msg}}}
}

// fieldErrors accumulates validation failures for one request.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, msg string) {
	*f = append(*f, FieldError{Field: field, Error: msg})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// translate converts repository and domain errors into service error classes.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, repository.ErrInsufficientPoints):
		return ErrInsufficientPoints
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTerminal),
		errors.Is(err, domain.ErrNotArchivable),
		errors.Is(err, domain.ErrNotDeletable):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
