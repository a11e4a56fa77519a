// Package logging builds the slog loggers used by the registry and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

var ErrUnknownType = errors.New("unknown logging type")

// New creates a logger writing to w. loggingType is json, text or tint.
func New(w io.Writer, loggingType string, logLevelName string) (*slog.Logger, error) {
	var logLevel slog.Level

	err := logLevel.UnmarshalText([]byte(logLevelName))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse log level")
	}

	logHandlerOptions := slog.HandlerOptions{
		Level: logLevel,
	}

	var logHandler slog.Handler

	switch loggingType {
	case JSON:
		logHandler = slog.NewJSONHandler(w, &logHandlerOptions)
	case Text:
		logHandler = slog.NewTextHandler(w, &logHandlerOptions)
	case Tint:
		logHandler = tint.NewHandler(w, &tint.Options{
			Level: logHandlerOptions.Level,
		})
	default:
		return nil, errors.Wrapf(ErrUnknownType, "%q", loggingType)
	}

	return slog.New(logHandler), nil
}

// Initialize sets the default logger, writing to stderr.
func Initialize(loggingType string, logLevelName string) error {
	logger, err := New(os.Stderr, loggingType, logLevelName)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)
	logger.Debug("logging initialized", "type", loggingType, "level", logLevelName)

	return nil
}
