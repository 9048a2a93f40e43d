package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	Theme      string        // MD2HTML_THEME: theme name or JSON file
	CodeStyle  string        // MD2HTML_CODE_STYLE: enables highlighting
	Timeout    time.Duration // MD2HTML_TIMEOUT: PDF generation timeout
	InputDir   string        // MD2HTML_INPUT_DIR: default input directory
	OutputDir  string        // MD2HTML_OUTPUT_DIR: default output directory
	PageSize   string        // MD2HTML_PAGE_SIZE: letter, a4, legal
	Workers    int           // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":     true,
	"MD2HTML_THEME":      true,
	"MD2HTML_CODE_STYLE": true,
	"MD2HTML_TIMEOUT":    true,
	"MD2HTML_INPUT_DIR":  true,
	"MD2HTML_OUTPUT_DIR": true,
	"MD2HTML_PAGE_SIZE":  true,
	"MD2HTML_WORKERS":    true,
	"MD2HTML_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		Theme:      os.Getenv("MD2HTML_THEME"),
		CodeStyle:  os.Getenv("MD2HTML_CODE_STYLE"),
		InputDir:   os.Getenv("MD2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2HTML_OUTPUT_DIR"),
		PageSize:   os.Getenv("MD2HTML_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2HTML_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is only set where the config still holds its default, so the
// precedence is: CLI flags > config file > env vars > defaults.
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.Theme != "" && cfg.Theme.Name == defaults.Theme.Name && cfg.Theme.File == "" {
		setTheme(cfg, env.Theme)
	}
	if env.CodeStyle != "" && !cfg.Render.Highlight {
		cfg.Render.Highlight = true
		cfg.Render.CodeStyle = env.CodeStyle
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	if env.PageSize != "" && cfg.PDF.PageSize == defaults.PDF.PageSize {
		cfg.PDF.PageSize = env.PageSize
	}
}
