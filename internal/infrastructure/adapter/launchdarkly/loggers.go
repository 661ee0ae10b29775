package launchdarkly

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

// Loggers routes SDK output into the operational logger, one base logger per level
func Loggers(log core.Logger) ldlog.Loggers {
	loggers := ldlog.NewDefaultLoggers()
	loggers.SetBaseLoggerForLevel(ldlog.Debug, baseLogger{write: log.Debug})
	loggers.SetBaseLoggerForLevel(ldlog.Info, baseLogger{write: log.Info})
	loggers.SetBaseLoggerForLevel(ldlog.Warn, baseLogger{write: log.Warn})
	loggers.SetBaseLoggerForLevel(ldlog.Error, baseLogger{write: log.Error})
	return loggers
}

// baseLogger implements ldlog.BaseLogger over one core.Logger method
type baseLogger struct {
	write func(message string, fields map[string]any)
}

var sdkFields = map[string]any{"source": "launchdarkly"}

func (b baseLogger) Println(values ...any) {
	b.write(strings.TrimSuffix(fmt.Sprintln(values...), "\n"), sdkFields)
}

func (b baseLogger) Printf(format string, values ...any) {
	b.write(fmt.Sprintf(format, values...), sdkFields)
}
