package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const permission = 0664

// Build configures a zerolog logger
type Build struct {
	writer io.Writer
	path   string
	level  string
}

// Logger bundles the logger with the file it writes to, if any
type Logger struct {
	zerolog.Logger
	File *os.File
}

func New() *Build {
	return &Build{}
}

// FromPath sends output to a file, appended
func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

// FromWriter sends output to w
func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Level sets the minimum level by name; unknown names fall back to info
func (b *Build) Level(level string) *Build {
	b.level = level
	return b
}

// Make opens the destination and returns the logger
func (b *Build) Make() (*Logger, error) {
	l := &Logger{}
	writer := b.writer
	if writer == nil {
		writer = os.Stderr
	}
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		l.File = f
		writer = zerolog.SyncWriter(f)
	}

	level, err := zerolog.ParseLevel(b.level)
	if err != nil || b.level == "" {
		level = zerolog.InfoLevel
	}

	l.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Close closes the log file when one was opened
func (l *Logger) Close() error {
	if l.File != nil {
		return l.File.Close()
	}
	return nil
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
