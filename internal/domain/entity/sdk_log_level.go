package entity

// SDKLogLevel is the log level handed to the flag client's own logger.
// It uses a smaller vocabulary than LogLevel and the two are never mixed.
type SDKLogLevel string

const (
	// SDKLogLevelError only reports client errors
	SDKLogLevelError SDKLogLevel = "error"
	// SDKLogLevelWarn reports warnings and errors
	SDKLogLevelWarn SDKLogLevel = "warn"
	// SDKLogLevelInfo is the client default
	SDKLogLevelInfo SDKLogLevel = "info"
	// SDKLogLevelDebug reports everything the client has to say
	SDKLogLevelDebug SDKLogLevel = "debug"
)

// DefaultSDKLogLevel is used when nothing valid has been persisted yet
const DefaultSDKLogLevel = SDKLogLevelInfo

// IsValidRemoteLevel reports whether value is an exact member of the SDK vocabulary.
// Matching is case-sensitive and the value is not trimmed.
func IsValidRemoteLevel(value string) bool {
	switch SDKLogLevel(value) {
	case SDKLogLevelError, SDKLogLevelWarn, SDKLogLevelInfo, SDKLogLevelDebug:
		return true
	default:
		return false
	}
}

// ParseRemoteLevel accepts an untrusted flag value and returns it as an
// SDKLogLevel when it is a valid member of the vocabulary
func ParseRemoteLevel(value any) (SDKLogLevel, bool) {
	s, ok := value.(string)
	if !ok || !IsValidRemoteLevel(s) {
		return "", false
	}
	return SDKLogLevel(s), true
}

// String returns the level as stored and sent to the client
func (l SDKLogLevel) String() string {
	return string(l)
}
