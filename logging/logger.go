// Package logging provides per-component structured loggers.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	current   Config
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	apply(logger, current)

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies cfg to every logger created so far and to future ones.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current = cfg
	for _, entry := range loggers {
		apply(entry.Logger, cfg)
	}
}

func apply(logger *logrus.Logger, cfg Config) {
	levelStr := "info"
	if env := os.Getenv("LAZYSUITE_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ReportCaller || os.Getenv("LAZYSUITE_LOG_CALLER") == "true")

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
			FullTimestamp: true,
		})
	}

	logger.SetOutput(output(logger, cfg))
}

func output(logger *logrus.Logger, cfg Config) io.Writer {
	switch cfg.Output {
	case "always":
		return os.Stderr
	case "never":
		return io.Discard
	}

	// In "auto" mode, keep logs off an interactive terminal unless debugging,
	// since the terminal belongs to whatever renders the test tree.
	isDebug := logger.GetLevel() >= logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if isDebug || !isInteractive {
		return os.Stderr
	}
	return io.Discard
}
