// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package errs defines the error kinds that cross layer boundaries.
// Stores and authorization checks return these instead of signalling
// outcomes through panics or bare HTTP writes; the handler layer maps
// them to responses. Every kind is terminal for the current request.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks an unresolvable slug, post id, or comment id.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied marks an action the acting identity may not
	// perform on the target record.
	ErrPermissionDenied = errors.New("permission denied")
)

// NotFound wraps ErrNotFound with the entity that failed to resolve.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// PermissionDenied wraps ErrPermissionDenied with the denied action.
func PermissionDenied(action string) error {
	return fmt.Errorf("%s: %w", action, ErrPermissionDenied)
}

// ValidationError reports a malformed form submission. Handlers re-render
// the form with the message attached to the offending field; nothing is
// written to the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation returns the ValidationError wrapped in err, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// HTTPStatus maps an error kind to the status code the routing layer
// should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case AsValidation(err) != nil:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
