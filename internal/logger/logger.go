package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config controls log level and output format.
type Config struct {
	Level  string
	Format string // json or text
	Output io.Writer
}

// Logger wraps logrus with a fixed set of fields.
type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// New creates a Logger. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	return &Logger{logger: l, fields: logrus.Fields{}}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Config{Level: "panic", Output: io.Discard})
}

// WithField returns a child logger with key set.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger with all fields set.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{logger: l.logger, fields: merged}
}

func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) WithSession(sessionID string) *Logger {
	return l.WithField("session_id", sessionID)
}

func (l *Logger) Debug(msg string) { l.entry().Debug(msg) }
func (l *Logger) Info(msg string)  { l.entry().Info(msg) }
func (l *Logger) Warn(msg string)  { l.entry().Warn(msg) }
func (l *Logger) Error(msg string) { l.entry().Error(msg) }
func (l *Logger) Fatal(msg string) { l.entry().Fatal(msg) }

func (l *Logger) Debugf(format string, args ...any) { l.entry().Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry().Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry().Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry().Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.entry().Fatalf(format, args...) }

// Writer exposes the logger as an io.Writer at info level, for gin and net/http.
func (l *Logger) Writer() *io.PipeWriter {
	return l.entry().Writer()
}

func (l *Logger) entry() *logrus.Entry {
	return l.logger.WithFields(l.fields)
}
