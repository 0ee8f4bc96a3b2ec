package connector

import (
	"errors"
	"fmt"

	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// Standard connector errors
var (
	// ErrInvalidConfiguration is returned when an endpoint definition is invalid
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrConnectionFailed is returned when a connection attempt fails
	ErrConnectionFailed = errors.New("connection failed")

	// ErrCatalogQueryFailed is returned when the catalog query cannot be executed
	ErrCatalogQueryFailed = errors.New("catalog query failed")

	// ErrOrderingViolation is returned by strict-mode discovery when catalog
	// rows are not grouped by (schema, table)
	ErrOrderingViolation = errors.New("catalog rows violate (schema, table) ordering")

	// ErrConnectorNotFound is returned when no connector is registered for a backend
	ErrConnectorNotFound = errors.New("connector not found")
)

// DatabaseError wraps backend-specific errors with the backend type and the
// operation that failed. This is the single wrapped error surfaced by
// discovery and execution.
type DatabaseError struct {
	Backend   dbcapabilities.DatabaseID
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error.
func (e *DatabaseError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(backend dbcapabilities.DatabaseID, operation string, cause error) *DatabaseError {
	return &DatabaseError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// WrapError wraps an error with backend context.
// If the error is already a DatabaseError, it returns it as-is.
func WrapError(backend dbcapabilities.DatabaseID, operation string, err error) error {
	if err == nil {
		return nil
	}

	// Don't double-wrap
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}

	return NewDatabaseError(backend, operation, err)
}

// ConnectionError is returned when a backend cannot be reached.
type ConnectionError struct {
	Backend dbcapabilities.DatabaseID
	URL     string
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s at %s: %v", e.Backend, e.URL, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is ErrConnectionFailed.
func (e *ConnectionError) Is(target error) bool {
	if errors.Is(target, ErrConnectionFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(backend dbcapabilities.DatabaseID, url string, cause error) *ConnectionError {
	return &ConnectionError{
		Backend: backend,
		URL:     url,
		Cause:   cause,
	}
}

// ConfigurationError is returned when an endpoint definition is invalid.
type ConfigurationError struct {
	Backend dbcapabilities.DatabaseID
	Field   string
	Reason  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: field %q: %s", e.Backend, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Backend, e.Reason)
}

// Is checks if the error is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidConfiguration)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(backend dbcapabilities.DatabaseID, field string, reason string) *ConfigurationError {
	return &ConfigurationError{
		Backend: backend,
		Field:   field,
		Reason:  reason,
	}
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsOrderingViolation checks if an error reports a catalog ordering violation.
func IsOrderingViolation(err error) bool {
	return errors.Is(err, ErrOrderingViolation)
}
