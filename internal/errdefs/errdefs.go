// Package errdefs provides typed errors for the lookup failures the
// provisioning pipeline can hit before any API call is made. They let
// callers distinguish "not found" from transport errors with errors.As
// instead of checking for nil values.
package errdefs

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a lookup came back empty: no matching
// container, no published port mapping, no credential-bearing log line.
type NotFoundError struct {
	Resource string // e.g. "container", "port mapping", "credential line"
	Name     string // what was looked up, may be empty
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFound creates a NotFoundError.
func NewNotFound(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}
