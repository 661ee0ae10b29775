package console

import (
	"runtime/debug"

	"github.com/charmbracelet/log"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

// CharmSink writes console output through charmbracelet/log
type CharmSink struct {
	logger *log.Logger
	state  *state
}

// NewCharmSink creates a sink over logger and enables it at debug level
func NewCharmSink(logger *log.Logger, tp core.TimeProvider) *CharmSink {
	logger.SetLevel(log.DebugLevel)
	return &CharmSink{logger: logger, state: newState(tp)}
}

// Error writes to the error channel
func (s *CharmSink) Error(values ...any) {
	s.logger.Error(s.state.format(values))
}

// Warn writes to the warning channel
func (s *CharmSink) Warn(values ...any) {
	s.logger.Warn(s.state.format(values))
}

// Info writes to the info channel
func (s *CharmSink) Info(values ...any) {
	s.logger.Info(s.state.format(values))
}

// Debug writes to the debug channel
func (s *CharmSink) Debug(values ...any) {
	s.logger.Debug(s.state.format(values))
}

// Trace writes at debug level with the goroutine stack attached
func (s *CharmSink) Trace(values ...any) {
	s.logger.Debug(s.state.format(values), "stack", string(debug.Stack()))
}

// Group prints label and indents following output
func (s *CharmSink) Group(label string) {
	s.logger.Info(s.state.format([]any{label}))
	s.state.openGroup()
}

// GroupEnd removes one level of indentation
func (s *CharmSink) GroupEnd() {
	s.state.closeGroup()
}

// Time starts a named timer
func (s *CharmSink) Time(label string) {
	if !s.state.startTimer(label) {
		s.logger.Warn(s.state.format([]any{duplicateTimerLine(label)}))
	}
}

// TimeEnd stops a named timer and prints its duration
func (s *CharmSink) TimeEnd(label string) {
	elapsed, ok := s.state.stopTimer(label)
	if !ok {
		s.logger.Warn(s.state.format([]any{missingTimerLine(label)}))
		return
	}
	s.logger.Info(s.state.format([]any{timerLine(label, elapsed)}))
}
