package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger interface for structured logging
type Logger interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	With() zerolog.Context
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
}

// AppLogger wraps zerolog.Logger
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new structured logger
func NewLogger(config Config) *AppLogger {
	level := parseLevel(config.Level)
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch config.OutputPath {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.OutputPath).Msg("Failed to open log file")
		}
		output = file
	}

	if config.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}
	logger := zerolog.New(output).With().Timestamp().Caller().Logger()

	return &AppLogger{logger: logger}
}

// Debug returns a debug level event
func (l *AppLogger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Info returns an info level event
func (l *AppLogger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn returns a warn level event
func (l *AppLogger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns an error level event
func (l *AppLogger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Fatal returns a fatal level event
func (l *AppLogger) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

// With returns a new context for adding fields
func (l *AppLogger) With() zerolog.Context {
	return l.logger.With()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogImport logs the outcome of a single file import.
func (l *AppLogger) LogImport(sourceFile string, broker string, parsed int, skipped int, errored int) {
	l.Info().
		Str("source_file", sourceFile).
		Str("broker", broker).
		Int("parsed", parsed).
		Int("skipped", skipped).
		Int("errors", errored).
		Msg("Import completed")
}

// LogDetection logs a format-detection decision.
func (l *AppLogger) LogDetection(sourceFile string, broker string, byFilename bool) {
	l.Debug().
		Str("source_file", sourceFile).
		Str("broker", broker).
		Bool("by_filename", byFilename).
		Msg("Broker detected")
}

// LogAggregation logs a fill-aggregation pass.
func (l *AppLogger) LogAggregation(broker string, fillCount int, tradeCount int, bucket time.Duration) {
	l.Warn().
		Str("broker", broker).
		Int("fill_count", fillCount).
		Int("trade_count", tradeCount).
		Dur("bucket", bucket).
		Msg("Fills aggregated into trades")
}

// LogError logs an error with context
func (l *AppLogger) LogError(err error, message string, fields map[string]interface{}) {
	event := l.Error().Err(err).Str("message", message)
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg("Error occurred")
}

// Global logger instance (initialized in main)
var globalLogger *AppLogger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(config Config) {
	globalLogger = NewLogger(config)
}

// GetLogger returns the global logger instance
func GetLogger() *AppLogger {
	if globalLogger == nil {
		globalLogger = NewLogger(Config{
			Level:  "info",
			Format: "console",
		})
	}
	return globalLogger
}
