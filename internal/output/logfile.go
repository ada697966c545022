package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// WithLogFile mirrors every notification into a rotating log file.
// Rotation limits can be overridden with REPOSYNC_LOG_MAX_SIZE,
// REPOSYNC_LOG_MAX_BACKUPS and REPOSYNC_LOG_MAX_AGE.
func (n *Notifier) WithLogFile(path string) (*Notifier, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,  // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
	if v, err := strconv.Atoi(os.Getenv("REPOSYNC_LOG_MAX_SIZE")); err == nil && v > 0 {
		lj.MaxSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("REPOSYNC_LOG_MAX_BACKUPS")); err == nil && v >= 0 {
		lj.MaxBackups = v
	}
	if v, err := strconv.Atoi(os.Getenv("REPOSYNC_LOG_MAX_AGE")); err == nil && v > 0 {
		lj.MaxAge = v
	}

	n.logger = slog.New(slog.NewTextHandler(lj, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return n, nil
}
