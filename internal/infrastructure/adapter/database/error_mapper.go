package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorClass groups database errors by how callers should react
type ErrorClass string

const (
	// ClassNone is returned for nil errors
	ClassNone ErrorClass = ""
	// ClassNotFound means the row does not exist
	ClassNotFound ErrorClass = "not_found"
	// ClassTransient errors may succeed when retried
	ClassTransient ErrorClass = "transient"
	// ClassTimeout means the operation ran out of time
	ClassTimeout ErrorClass = "timeout"
	// ClassConstraint means the write violated the schema
	ClassConstraint ErrorClass = "constraint"
	// ClassUnknown is anything else
	ClassUnknown ErrorClass = "unknown"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the class of a database error
func (m *ErrorMapper) Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ClassNotFound
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "deadline exceeded") ||
		strings.Contains(errMsg, "timeout"):
		return ClassTimeout
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "too many connections") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "eof"):
		return ClassTransient
	case strings.Contains(errMsg, "constraint") ||
		strings.Contains(errMsg, "violates"):
		return ClassConstraint
	default:
		return ClassUnknown
	}
}

// IsTransient reports whether an operation failing with err may be retried
func (m *ErrorMapper) IsTransient(err error) bool {
	class := m.Classify(err)
	return class == ClassTransient || class == ClassTimeout
}

// MapError wraps a database error as a persistence error naming the operation
func (m *ErrorMapper) MapError(err error, operation string) error {
	switch m.Classify(err) {
	case ClassNone:
		return nil
	case ClassNotFound:
		return fmt.Errorf("%w: %s found no row", domainErr.ErrPersistence, operation)
	case ClassTimeout:
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrPersistence, operation)
	case ClassTransient:
		return fmt.Errorf("%w: %s failed on a transient database error: %s", domainErr.ErrPersistence, operation, err.Error())
	case ClassConstraint:
		return fmt.Errorf("%w: %s violated a constraint: %s", domainErr.ErrPersistence, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s failed: %s", domainErr.ErrPersistence, operation, err.Error())
	}
}
