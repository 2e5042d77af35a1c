package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SetupLogger installs a JSON slog handler writing to stdout and the
// given file as the process-wide default.
func SetupLogger(filePath string) {
	logDir := filepath.Dir(filePath)
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		panic("Failed to create log directory: " + err.Error())
	}

	logFile, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic("Failed to open log file for writing: " + err.Error())
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(multiWriter, opts))
	slog.SetDefault(logger)
}
