package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables inherited by child processes and SSH sessions
const (
	EnvDebug       = "KEEBS_DEBUG"
	EnvDebugFile   = "KEEBS_DEBUG_FILE"
	EnvMaxLogFiles = "KEEBS_MAX_LOG_FILES"
)

// DefaultMaxLogFiles is the rotation limit when none is configured
const DefaultMaxLogFiles = 1000

// Logger is the shared logger. It discards everything until Initialize runs.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger and returns the log file path ("" when logs are discarded)
func Initialize(debug bool, debugFile string, maxLogFiles int) (string, error) {
	if os.Getenv(EnvDebug) == "1" {
		debug = true
	}
	if envDebugFile := os.Getenv(EnvDebugFile); envDebugFile != "" && debugFile == "" {
		debugFile = envDebugFile
	}
	if envMax := os.Getenv(EnvMaxLogFiles); envMax != "" && maxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(envMax); err == nil {
			maxLogFiles = parsed
		}
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	var logFilePath string

	if debugFile != "" {
		// Custom path, no rotation
		logFilePath = debugFile
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
	} else {
		logDir, err := LogDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}

		if maxLogFiles > 0 {
			if err := rotateLogs(logDir, maxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}

		logFilePath = filepath.Join(logDir, uuid.NewString()+".log")
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Only announce when debug was requested here, not inherited from a parent process
	if os.Getenv(EnvDebug) == "" {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
		fmt.Printf("Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

// rotateLogs removes the oldest .log files so that a new file keeps the count within maxLogFiles
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(logFiles) < maxLogFiles {
		return nil
	}

	slices.SortFunc(logFiles, func(a, b logFileInfo) int {
		return a.modTime.Compare(b.modTime)
	})

	numToDelete := len(logFiles) - maxLogFiles + 1
	for i := 0; i < numToDelete && i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logFiles[i].path, err)
		}
	}

	return nil
}

// LogDir returns the OS-specific log directory
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "keebs"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "keebs"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "keebs", "logs"), nil
	default:
		return filepath.Join(homeDir, ".keebs", "logs"), nil
	}
}
