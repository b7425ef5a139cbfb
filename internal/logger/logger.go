// Package logger builds the process-wide structured logger used by the
// engine, its adapters, and cmd/directsend.
package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

var (
	ErrInvalidLevel  = fmt.Errorf("invalid log level")
	ErrInvalidFormat = fmt.Errorf("invalid log format")
)

// New builds a *slog.Logger for the given level and format. Format
// "tint" produces colorized, human-friendly terminal output; "json"
// and "text" use the standard library handlers directly.
func New(logLevel, logFormat string) (*slog.Logger, error) {
	slogLevel, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch logFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})), nil
	case "tint":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slogLevel, TimeFormat: "15:04:05.000"})), nil
	}

	return nil, errors.Join(ErrInvalidFormat, fmt.Errorf("log format: %s", logFormat))
}

func parseLevel(logLevel string) (slog.Level, error) {
	switch logLevel {
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	}

	return slog.LevelInfo, errors.Join(ErrInvalidLevel, fmt.Errorf("log level: %s", logLevel))
}
