package dto

// LevelsResponse reports the thresholds currently evaluated from flags
type LevelsResponse struct {
	ConsoleLevel      string `json:"consoleLevel"`
	ConsoleLevelValue int    `json:"consoleLevelValue"`
	SDKLogLevel       string `json:"sdkLogLevel,omitempty"`
	SDKLogLevelValid  bool   `json:"sdkLogLevelValid"`
}

// LogRequest represents the API request to emit a log statement
type LogRequest struct {
	Level  string `json:"level" binding:"required"`
	Values []any  `json:"values" binding:"required,min=1"`
}

// LogResponse reports whether the statement passed the current threshold
type LogResponse struct {
	Level   string `json:"level"`
	Emitted bool   `json:"emitted"`
}
