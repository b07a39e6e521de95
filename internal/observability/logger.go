// Package observability holds the process-wide CLI logger.
//
// Logs always go to stderr; stdout is reserved for command output.
package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the logger used by commands. It discards everything until
// SetCLILogger is called.
var CLILogger = zap.NewNop()

// Log formats accepted by NewCLILogger.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// SetCLILogger replaces CLILogger, flushing the previous one.
func SetCLILogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	_ = CLILogger.Sync()
	CLILogger = logger
}

// NewCLILogger builds a stderr logger tagged with the service name.
func NewCLILogger(service, level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatConsole
	}
	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", format, FormatConsole, FormatJSON)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == FormatConsole {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          format,
		EncoderConfig:     encCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
		DisableCaller:     lvl > zapcore.DebugLevel,
	}
	if service != "" {
		cfg.InitialFields = map[string]any{"service": service}
	}

	return cfg.Build()
}
