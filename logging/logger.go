package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/ristate/config"
	"github.com/grovetools/ristate/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// sink is where stderr logging goes. Stdout is reserved for snapshots.
type sink struct {
	w           io.Writer
	interactive bool
}

func stderrSink() sink {
	fd := os.Stderr.Fd()
	return sink{
		w:           os.Stderr,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewLogger creates a logger for a component. Environment variables take
// precedence over cfg.
func NewLogger(component string, cfg Config) *logrus.Entry {
	return newLogger(component, cfg, stderrSink())
}

// ConfigFrom extracts the logging section of a configuration file.
func ConfigFrom(file *config.File) (Config, error) {
	var cfg Config
	if err := file.DecodeLogging(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newLogger(component string, cfg Config, stderr sink) *logrus.Entry {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("RISTATE_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("RISTATE_LOG_CALLER") == "true" || cfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(formatterFor(cfg.Format, stderr.interactive))

	var writers []io.Writer
	var fileFormatter logrus.Formatter

	if cfg.File.Enabled {
		path := cfg.File.Path
		if path == "" {
			path = paths.LogFilePath(component, time.Now())
		}
		path = expandPath(path)

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			logger.Warnf("Failed to create log directory %s: %v", filepath.Dir(path), err)
		} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			logger.Warnf("Failed to open log file %s: %v", path, err)
		} else {
			writers = append(writers, f)
			if cfg.File.Format == "json" {
				fileFormatter = &logrus.JSONFormatter{}
			}
		}
	}

	toStderr := false
	switch cfg.Format.StructuredToStderr {
	case "always":
		toStderr = true
	case "never":
	default:
		isDebug := os.Getenv("RISTATE_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
		toStderr = isDebug || !stderr.interactive || len(writers) == 0
	}
	if toStderr && stderr.w != nil {
		writers = append(writers, stderr.w)
	}

	switch {
	case len(writers) == 0:
		logger.SetOutput(io.Discard)
	case fileFormatter != nil:
		// The file wants its own format; route it through a hook so stderr
		// keeps the text formatter.
		logger.AddHook(&writerHook{w: writers[0], formatter: fileFormatter})
		if len(writers) > 1 {
			logger.SetOutput(writers[1])
		} else {
			logger.SetOutput(io.Discard)
		}
	case len(writers) == 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger.WithField("component", component)
}

func formatterFor(format FormatConfig, interactive bool) logrus.Formatter {
	switch format.Preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	default:
		return NewTextFormatter(format, interactive)
	}
}

// writerHook writes every entry to w with its own formatter.
type writerHook struct {
	w         io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.w.Write(line)
	return err
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
