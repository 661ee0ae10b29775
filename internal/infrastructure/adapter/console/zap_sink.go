package console

import (
	"go.uber.org/zap"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

// ZapSink writes console output through zap
type ZapSink struct {
	logger *zap.Logger
	state  *state
}

// NewZapSink creates a sink over logger. The logger should be enabled at
// debug level; filtering is done by the flag-gated Logger.
func NewZapSink(logger *zap.Logger, tp core.TimeProvider) *ZapSink {
	return &ZapSink{
		logger: logger,
		state:  newState(tp),
	}
}

// Error writes to the error channel
func (s *ZapSink) Error(values ...any) {
	s.logger.Error(s.state.format(values))
}

// Warn writes to the warning channel
func (s *ZapSink) Warn(values ...any) {
	s.logger.Warn(s.state.format(values))
}

// Info writes to the info channel
func (s *ZapSink) Info(values ...any) {
	s.logger.Info(s.state.format(values))
}

// Debug writes to the debug channel
func (s *ZapSink) Debug(values ...any) {
	s.logger.Debug(s.state.format(values))
}

// Trace writes at debug level with the caller stack attached
func (s *ZapSink) Trace(values ...any) {
	s.logger.Debug(s.state.format(values), zap.Stack("stack"))
}

// Group prints label and indents following output
func (s *ZapSink) Group(label string) {
	s.logger.Info(s.state.format([]any{label}))
	s.state.openGroup()
}

// GroupEnd removes one level of indentation
func (s *ZapSink) GroupEnd() {
	s.state.closeGroup()
}

// Time starts a named timer
func (s *ZapSink) Time(label string) {
	if !s.state.startTimer(label) {
		s.logger.Warn(s.state.format([]any{duplicateTimerLine(label)}))
	}
}

// TimeEnd stops a named timer and prints its duration
func (s *ZapSink) TimeEnd(label string) {
	elapsed, ok := s.state.stopTimer(label)
	if !ok {
		s.logger.Warn(s.state.format([]any{missingTimerLine(label)}))
		return
	}
	s.logger.Info(s.state.format([]any{timerLine(label, elapsed)}))
}
