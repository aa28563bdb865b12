// Package logger configures the logrus logger shared by every command.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/snmpconsole/internal/config"
)

// Init returns a logger writing to out at level, as text or json
func Init(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format: %s (use text or json)", format)
	}

	return log, nil
}

// InitFile appends logs to path and returns the file so the caller can close it.
// The TUI owns the terminal, so its logs go here instead of stderr.
func InitFile(path, level string) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		path = config.LogFile
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log, err := Init(f, level, "text")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	return log, f, nil
}
