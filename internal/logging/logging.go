// Package logging configures the global zerolog logger: a console writer on
// stderr plus an append-only log file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/colin-cli/colin/internal/branding"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Debug lowers the level from info to debug
// and adds caller information.
func Setup(debug bool) {
	SetupWriter(os.Stderr, debug, true)
}

// SetupWriter is Setup with an explicit console writer. When withFile is false
// no log file is opened.
func SetupWriter(console io.Writer, debug bool, withFile bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	logFile := ""
	if withFile {
		logFile, fileErr = logFilePath()
		if fileErr == nil {
			var f *os.File
			f, fileErr = openLogFile(logFile)
			if fileErr == nil {
				writers = append(writers, f)
			}
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if debug {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Debug().Err(fileErr).Str("path", logFile).Msg("log file unavailable, logging to console only")
	}
	log.Debug().Bool("debug", debug).Str("logFile", logFile).Msg("logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogCommand logs an external command before it is spawned.
func LogCommand(cmd string, args []string) {
	log.Debug().Str("command", cmd).Strs("args", args).Msg("executing command")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}

func logFilePath() (string, error) {
	return xdg.StateFile(filepath.Join(branding.CLIName(), branding.CLIName()+".log"))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
