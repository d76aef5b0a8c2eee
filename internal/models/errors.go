package models

import (
	"errors"
	"fmt"
)

// ErrDuplicateCandidate marks an idempotent skip: the identity is already
// stored. It is an expected outcome, not a failure.
var ErrDuplicateCandidate = errors.New("candidate already stored")

// UnsupportedFormatError is returned when extraction is asked to handle a
// document format it does not support. Fatal for that item.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.Format)
}

// ExternalServiceError wraps a failure from an external collaborator
// (source connector, generative model, profile source). Callers recover
// via their documented fallback where one exists.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ConfigurationError reports invalid weights or missing required
// configuration. Fatal at construction, never at request time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}
