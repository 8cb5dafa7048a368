package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// newFileLogger opens path for writing and returns a logger on it. The
// terminal belongs to the table view, so play logs go to a file.
func newFileLogger(path string, level log.Level, prefix string) (*log.Logger, func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})

	closeFn := func() {
		if err := file.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}
	return logger, closeFn, nil
}
