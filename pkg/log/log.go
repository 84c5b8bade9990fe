package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Format is a log output format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrUnknownLogLevel indicates an unrecognized level string.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrUnknownLogFormat indicates an unrecognized format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, lvl slog.Level, format Format) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case FormatLogfmt:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(lvl),
			Formatter:       charmlog.LogfmtFormatter,
			ReportTimestamp: true,
		})
	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}

// CreateHandlerWithStrings creates a [slog.Handler] from level and format
// strings, as given on the command line.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	lvl, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	format, err := GetFormat(logFormat)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, lvl, format), nil
}

// GetLevel parses a level string.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// GetFormat parses a format string. An empty string selects [FormatText].
func GetFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(format)); f {
	case FormatJSON, FormatText, FormatLogfmt:
		return f, nil
	case "":
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}
