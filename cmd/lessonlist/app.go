package main

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"lessonlist/internal/config"
	"lessonlist/internal/lesson"
	"lessonlist/internal/oplog"
)

// envLogLevel overrides the configured log level.
const envLogLevel = "LESSONLIST_LOG_LEVEL"

// app carries what every front end needs: settings, naming conventions,
// the diagnostic logger and the operation log location.
type app struct {
	cfg    *config.Config
	opts   lesson.Options
	logger *log.Logger
	logDir string
}

func newApp(inv invocation) (*app, error) {
	cfg, err := config.Load(config.ConfigPath(inv.configPath))
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel, inv.debug)
	logger.Debug("config loaded", "path", cfg.Path())

	return &app{
		cfg:    cfg,
		opts:   cfg.LessonOptions(),
		logger: logger,
		logDir: oplog.LogDir(),
	}, nil
}

// newLogger builds the stderr logger. Precedence: --debug, then
// LESSONLIST_LOG_LEVEL, then the config file, then warn.
func newLogger(configured string, debug bool) *log.Logger {
	level := log.WarnLevel
	for _, s := range []string{configured, os.Getenv(envLogLevel)} {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if parsed, err := log.ParseLevel(strings.ToLower(s)); err == nil {
			level = parsed
		}
	}
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "lessonlist",
		Level:  level,
	})
}

// record appends the outcome of an operation to the operation log.
// Failures only reach the debug log; they never fail the command.
func (a *app) record(cmd string, args map[string]any, opErr error, start time.Time) {
	status := "ok"
	if opErr != nil {
		status = "error"
	}
	e := oplog.NewEntry(cmd, status, time.Since(start))
	e.Args = args
	if opErr != nil {
		e.Message = opErr.Error()
	}
	if err := oplog.WriteWithLimit(a.logDir, e, a.cfg.LogMaxEntries()); err != nil {
		a.logger.Debug("operation log write failed", "err", err)
	}
}

// countCompanions returns how many entries have a mapping file and an
// audio folder.
func countCompanions(m *lesson.Manifest) (mappings, audio int) {
	for _, e := range m.Lessons {
		if e.Mapping != "" {
			mappings++
		}
		if e.Audio != "" {
			audio++
		}
	}
	return mappings, audio
}
