package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	domainErr "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
)

func TestErrorMapper_Classify(t *testing.T) {
	m := NewErrorMapper()

	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ClassNone},
		{"not found", fmt.Errorf("take: %w", gorm.ErrRecordNotFound), ClassNotFound},
		{"deadline", context.DeadlineExceeded, ClassTimeout},
		{"lock timeout", errors.New("ERROR: canceling statement due to lock timeout"), ClassTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), ClassTransient},
		{"deadlock", errors.New("ERROR: deadlock detected"), ClassTransient},
		{"eof", errors.New("unexpected EOF"), ClassTransient},
		{"constraint", errors.New("violates not-null constraint"), ClassConstraint},
		{"other", errors.New("syntax error at or near"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Classify(tt.err))
		})
	}
}

func TestErrorMapper_MapError(t *testing.T) {
	m := NewErrorMapper()

	assert.NoError(t, m.MapError(nil, "reading level"))

	err := m.MapError(context.DeadlineExceeded, "reading level")
	assert.ErrorIs(t, err, domainErr.ErrPersistence)
	assert.Contains(t, err.Error(), "reading level operation timed out")

	err = m.MapError(errors.New("boom"), "writing level")
	assert.ErrorIs(t, err, domainErr.ErrPersistence)
	assert.Contains(t, err.Error(), "writing level failed: boom")
}

func TestErrorMapper_IsTransient(t *testing.T) {
	m := NewErrorMapper()

	assert.True(t, m.IsTransient(errors.New("connection reset by peer")))
	assert.True(t, m.IsTransient(context.DeadlineExceeded))
	assert.False(t, m.IsTransient(errors.New("violates unique constraint")))
	assert.False(t, m.IsTransient(nil))
}
