package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// No-op until Initialize so packages can log from tests without setup
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. JSON output is meant for machines;
// the console encoder writes to stderr so the terminal dashboard on stdout
// stays clean.
func Initialize(jsonOutput bool, verbose bool) error {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	return initialize(jsonOutput, level)
}

// InitializeServer sets up an info-level logger for long running processes,
// debug-level when verbose.
func InitializeServer(jsonOutput bool, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	return initialize(jsonOutput, level)
}

func initialize(jsonOutput bool, level zapcore.Level) error {
	JSONOutput = jsonOutput

	var zapLogger *zap.Logger
	var err error

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		zapLogger, err = config.Build()
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.TimeKey = ""
		zapLogger = zap.New(
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(encCfg),
				zapcore.AddSync(os.Stderr),
				level,
			),
		)
	}

	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// ComponentLogger returns a named logger for a specific component.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
