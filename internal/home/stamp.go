package home

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// Stamp is the crash stamp file. It exists while the process runs and is
// removed on clean shutdown, so a stamp found at startup means the previous
// run did not exit cleanly.
type Stamp struct {
	path   string
	logger *zap.Logger
}

// NewStamp creates a stamp file handle for path
func NewStamp(path string, logger *zap.Logger) *Stamp {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stamp{path: path, logger: logger}
}

// Path returns the stamp file location
func (s *Stamp) Path() string {
	return s.path
}

// Init writes the stamp and reports whether a stale one was left behind
func (s *Stamp) Init() (bool, error) {
	_, err := os.Stat(s.path)
	stale := err == nil
	if stale {
		s.logger.Warn("Stamp file found, previous run did not exit cleanly", zap.String("path", s.path))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return stale, fmt.Errorf("create stamp dir: %w", err)
	}
	pid := strconv.Itoa(os.Getpid()) + "\n"
	if err := atomic.WriteFile(s.path, strings.NewReader(pid)); err != nil {
		return stale, fmt.Errorf("write stamp file: %w", err)
	}
	return stale, nil
}

// Finalize removes the stamp. A missing stamp is not an error.
func (s *Stamp) Finalize() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stamp file: %w", err)
	}
	return nil
}
