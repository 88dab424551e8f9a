// Package log provides structured logging for the wallet service.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers.
var (
	Wallet   zerolog.Logger
	Transfer zerolog.Logger
	History  zerolog.Logger
	RPC      zerolog.Logger
	Storage  zerolog.Logger
	API      zerolog.Logger
)

func init() {
	Logger = NewConsoleLogger(os.Stderr, "info")
	initComponentLoggers()
}

// Init initializes the logger with the given configuration.
// When file is non-empty, logs are written to both the console and the file
// (always JSON).
func Init(level string, jsonOutput bool, file string) error {
	var console io.Writer = os.Stderr
	if !jsonOutput {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).
			Level(parseLevel(level)).
			With().
			Timestamp().
			Logger()
	} else {
		Logger = zerolog.New(console).
			Level(parseLevel(level)).
			With().
			Timestamp().
			Logger()
	}

	initComponentLoggers()
	return nil
}

// NewConsoleLogger creates a human readable console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func initComponentLoggers() {
	Wallet = WithComponent("wallet")
	Transfer = WithComponent("transfer")
	History = WithComponent("history")
	RPC = WithComponent("rpc")
	Storage = WithComponent("storage")
	API = WithComponent("api")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
