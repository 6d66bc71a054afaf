package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const logTimeFormat = "2006/01/02 15:04:05.000000"

// SetLogger installs the process-wide diagnostic logger. Diagnostics go to
// fileName when it is set, to stderr otherwise. Records carry a microsecond
// timestamp and the short file:line of the caller. The returned function
// closes the log file, if any.
func SetLogger(fileName string, level string) (func() error, error) {
	slogLevel, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if fileName != "" {
		file, err := openLogFile(fileName)
		if err != nil {
			return nil, err
		}
		output = file
		closeFn = file.Close
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:       slogLevel,
		AddSource:   true,
		ReplaceAttr: shortenAttr,
	})))
	return closeFn, nil
}

func shortenAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if t, ok := attr.Value.Any().(time.Time); ok {
			return slog.String(slog.TimeKey, t.Format(logTimeFormat))
		}
	case slog.SourceKey:
		if source, ok := attr.Value.Any().(*slog.Source); ok {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(source.File), source.Line))
		}
	}
	return attr
}

func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func openLogFile(path string) (*os.File, error) {
	logFile, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return logFile, nil
}
