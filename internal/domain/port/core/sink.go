package core

// Sink is the console-like destination of the flag-gated logger.
// Each method is one output channel; values are written as given.
type Sink interface {
	// Error writes to the error channel (fatal and error messages)
	Error(values ...any)
	// Warn writes to the warning channel
	Warn(values ...any)
	// Info writes to the informational channel
	Info(values ...any)
	// Debug writes to the debug channel
	Debug(values ...any)
	// Trace writes to the trace channel, including the caller stack
	Trace(values ...any)
	// Group opens an indented group of messages
	Group(label string)
	// GroupEnd closes the innermost group
	GroupEnd()
	// Time starts a named timer
	Time(label string)
	// TimeEnd stops a named timer and writes the elapsed time
	TimeEnd(label string)
}
