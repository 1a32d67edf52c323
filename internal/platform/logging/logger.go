package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"timetrack/internal/platform/config"
)

var (
	root   = logrus.New()
	rootMu sync.Mutex
	closer io.Closer
)

func init() {
	root.SetOutput(io.Discard)
	root.SetFormatter(&TextFormatter{})
}

// Setup configures the shared logger from cfg. verbose forces debug level.
// It is safe to call more than once; the previous log file is closed.
func Setup(cfg config.Config, verbose bool) error {
	rootMu.Lock()
	defer rootMu.Unlock()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	root.SetLevel(level)
	root.SetFormatter(&TextFormatter{})

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	root.SetOutput(io.Discard)

	var writers []io.Writer
	explicit := cfg.Log.File != ""
	path := cfg.Log.File
	if !explicit {
		path = filepath.Join(cfg.DataDir, ".timetrack", "logs", fmt.Sprintf("timetrack-%s.log", time.Now().Format("2006-01-02")))
	}
	file, err := openLogFile(path)
	switch {
	case err == nil:
		writers = append(writers, file)
		closer = file
	case explicit:
		// Only a configured path is worth failing for.
		return err
	}

	if toStderr(cfg.Log.Stderr, level) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		root.SetOutput(io.Discard)
	case 1:
		root.SetOutput(writers[0])
	default:
		root.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// toStderr decides whether structured logs also go to stderr. In auto mode
// they only do at debug level so they never mix with user-facing errors.
func toStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return level >= logrus.DebugLevel
}

// NewLogger returns an entry tagged with the component name.
func NewLogger(component string) *logrus.Entry {
	return root.WithField("component", component)
}

// Close flushes and closes the log file, if any.
func Close() {
	rootMu.Lock()
	defer rootMu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	root.SetOutput(io.Discard)
}
