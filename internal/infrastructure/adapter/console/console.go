// Package console implements core.Sink on top of structured loggers while
// keeping the group indentation and named timers of a browser console.
package console

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

const indentWidth = 2

// state tracks group depth and running timers for a sink
type state struct {
	tp core.TimeProvider

	mu     sync.Mutex
	depth  int
	timers map[string]time.Time
}

func newState(tp core.TimeProvider) *state {
	return &state{tp: tp, timers: make(map[string]time.Time)}
}

// format joins values like console.log does and applies the group indent
func (s *state) format(values []any) string {
	msg := strings.TrimSuffix(fmt.Sprintln(values...), "\n")

	s.mu.Lock()
	depth := s.depth
	s.mu.Unlock()

	if depth == 0 {
		return msg
	}
	return strings.Repeat(" ", depth*indentWidth) + msg
}

func (s *state) openGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth++
}

// closeGroup reports false when there was no open group
func (s *state) closeGroup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth == 0 {
		return false
	}
	s.depth--
	return true
}

// startTimer reports false when label is already running
func (s *state) startTimer(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.timers[label]; exists {
		return false
	}
	s.timers[label] = s.tp.Now()
	return true
}

// stopTimer returns the elapsed time, or false for an unknown label
func (s *state) stopTimer(label string) (time.Duration, bool) {
	s.mu.Lock()
	started, ok := s.timers[label]
	delete(s.timers, label)
	s.mu.Unlock()

	if !ok {
		return 0, false
	}
	return s.tp.Since(started).Std(), true
}

func timerLine(label string, elapsed time.Duration) string {
	return fmt.Sprintf("%s: %.3fms", label, float64(elapsed.Microseconds())/1000)
}

func missingTimerLine(label string) string {
	return fmt.Sprintf("Timer '%s' does not exist", label)
}

func duplicateTimerLine(label string) string {
	return fmt.Sprintf("Timer '%s' already exists", label)
}
