package infrastructure

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger journal à niveaux au-dessus du package log standard
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger
	quiet bool
}

// NewLogger crée un logger qui écrit sur stdout (stderr pour les erreurs)
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr)
}

// NewLoggerTo crée un logger qui écrit tout sur w (tests, CLI)
func NewLoggerTo(w io.Writer) *Logger {
	return newLogger(w, w)
}

// NopLogger retourne un logger silencieux
func NopLogger() *Logger {
	l := newLogger(io.Discard, io.Discard)
	l.quiet = true
	return l
}

func newLogger(out, errOut io.Writer) *Logger {
	flags := log.Lmsgprefix
	return &Logger{
		info:  log.New(out, "[INFO]  ", flags),
		warn:  log.New(out, "[WARN]  ", flags),
		error: log.New(errOut, "[ERROR] ", flags),
		debug: log.New(out, "[DEBUG] ", flags),
	}
}

func (l *Logger) prefix() string {
	return fmt.Sprintf(" %s ", time.Now().Format("15:04:05"))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.info.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.warn.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.error.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.debug.Printf(l.prefix()+msg, args...)
}
