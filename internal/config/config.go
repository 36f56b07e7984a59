// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/stdalgo/internal/parallel"
	"github.com/sirupsen/logrus"
)

const (
	defaultDBPath = "stdalgo.db"

	envThreads     = "STDALGO_THREADS"
	envMinChunk    = "STDALGO_MIN_CHUNK"
	envTools       = "STDALGO_TOOLS"
	envDBPath      = "STDALGO_DB_PATH"
	envLogLevel    = "STDALGO_LOG_LEVEL"
	envMetricsAddr = "STDALGO_METRICS_ADDR"
)

// Profiling tool names accepted in STDALGO_TOOLS.
const (
	ToolLog     = "log"
	ToolMetrics = "metrics"
	ToolSQLite  = "sqlite"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Parallel    parallel.Config
	Tools       []string // Profiling tools to register, in order.
	DBPath      string   // SQLite kernel-timer database, used by ToolSQLite.
	LogLevel    logrus.Level
	MetricsAddr string // Address serving /metrics, empty to disable.
}

// Load reads configuration from environment variables with sensible defaults.
// Malformed values are reported as errors rather than silently ignored.
func Load() (Config, error) {
	cfg := Config{
		Parallel: parallel.DefaultConfig(),
		DBPath:   defaultDBPath,
		LogLevel: logrus.InfoLevel,
	}

	if v := os.Getenv(envThreads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", envThreads, v)
		}
		cfg.Parallel.NumWorkers = n
		cfg.Parallel.Enabled = n > 1
	}
	if v := os.Getenv(envMinChunk); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", envMinChunk, v)
		}
		cfg.Parallel.MinChunkSize = n
	}
	if v := os.Getenv(envTools); v != "" {
		tools, err := parseTools(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envTools, err)
		}
		cfg.Tools = tools
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	cfg.MetricsAddr = os.Getenv(envMetricsAddr)

	return cfg, nil
}

func parseTools(s string) ([]string, error) {
	var tools []string
	seen := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
			continue
		case ToolLog, ToolMetrics, ToolSQLite:
		default:
			return nil, fmt.Errorf("unknown tool %q", name)
		}
		if !seen[name] {
			seen[name] = true
			tools = append(tools, name)
		}
	}
	return tools, nil
}

// HasTool reports whether the named profiling tool is enabled.
func (c Config) HasTool(name string) bool {
	for _, t := range c.Tools {
		if t == name {
			return true
		}
	}
	return false
}

func parseLogLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(s))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}
