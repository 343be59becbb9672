package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// InvalidIDError marks identity values that cannot be parsed into the
// store's native id format.
type InvalidIDError struct {
	Value string
}

func (e InvalidIDError) Error() string {
	if e.Value == "" {
		return "invalid id"
	}
	return fmt.Sprintf("invalid id %q", e.Value)
}

// ValidationError aggregates every failing field message of one candidate
// record. Messages keeps per-field detail; Error joins them for the envelope.
type ValidationError struct {
	Messages []string
	Err      error
}

func (e ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return strings.Join(e.Messages, ", ")
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Field    string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("duplicate value for %s", e.Field)
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsInvalidID(err error) bool {
	var target InvalidIDError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}
