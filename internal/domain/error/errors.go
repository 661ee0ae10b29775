package error

import (
	"errors"
	"fmt"
)

// Error codes returned to API clients
const (
	CodeInvalidRequest = 4000
	CodeConfiguration  = 4220
	CodeNotInitialized = 5030
	CodeInitialization = 5031

	// Internal errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidRequest is returned when a request cannot be parsed or fails validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected failures
	ErrInternalServer = errors.New("internal server error")

	// ErrConfiguration is returned when a required configuration value is absent
	ErrConfiguration = errors.New("configuration error")

	// ErrInitialization is returned when the flag client could not be created
	ErrInitialization = errors.New("flag client initialization failed")

	// ErrNotInitialized is returned when a flag client is needed but none is attached
	ErrNotInitialized = errors.New("flag client is not initialized")

	// ErrMissingFallback is returned when a flag has no value and the caller gave no fallback
	ErrMissingFallback = errors.New("flag value is absent and no fallback was provided")

	// ErrPersistence is returned when the level store cannot be read or written
	ErrPersistence = errors.New("level persistence error")

	// ErrLifecycleStopped is returned when waiting on a lifecycle that was stopped before it became ready
	ErrLifecycleStopped = errors.New("client lifecycle stopped")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrNotInitialized), errors.Is(err, ErrLifecycleStopped):
		return CodeNotInitialized
	case errors.Is(err, ErrInitialization):
		return CodeInitialization
	default:
		return CodeInternalServer
	}
}

// ConfigurationError names the configuration field that was missing or invalid
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface for ConfigurationError
func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be provided"
	}
	return fmt.Sprintf("configuration error: %s %s", e.Field, reason)
}

// Is checks if the target error is an ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// LogFields returns a map of fields for structured logging
func (e *ConfigurationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "configuration_error",
		"field":      e.Field,
		"error":      e.Error(),
	}
}

// NewConfigurationError creates a configuration error for a missing field
func NewConfigurationError(field string) error {
	return &ConfigurationError{Field: field}
}

// NewInvalidConfigurationError creates a configuration error with an explicit reason
func NewInvalidConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// InitializationError wraps the reason a flag client could not be created
type InitializationError struct {
	ClientID string
	Err      error
}

// Error implements the error interface for InitializationError
func (e *InitializationError) Error() string {
	return fmt.Sprintf("flag client initialization failed for client %s: %v", e.ClientID, e.Err)
}

// Unwrap returns the underlying error
func (e *InitializationError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrInitialization
func (e *InitializationError) Is(target error) bool {
	return target == ErrInitialization
}

// LogFields returns a map of fields for structured logging
func (e *InitializationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "initialization_error",
		"client_id":  e.ClientID,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewInitializationError creates a detailed initialization error
func NewInitializationError(clientID string, err error) error {
	return &InitializationError{
		ClientID: clientID,
		Err:      err,
	}
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInitializationError checks if the error is an initialization error
func IsInitializationError(err error) bool {
	return errors.Is(err, ErrInitialization)
}

// ConfigurationField returns the field named by a configuration error, if any
func ConfigurationField(err error) (string, bool) {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Field, true
	}
	return "", false
}
