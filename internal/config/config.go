package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2html/internal/yamlutil"
	"github.com/alnah/go-md2html/theme"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxPathLength      = 4096     // PATH_MAX on Linux
	MaxTitleLength     = 200      // Document title
	MaxThemeNameLength = 64       // Built-in theme name
	MaxCodeStyleLength = 64       // Chroma style name
	MaxCSSLength       = 64 << 10 // Inline user CSS
)

// Page layout bounds, in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-md2html"

func init() {
	// Report validation errors with the YAML key names.
	validation.ErrorTag = "yaml"
}

// Config holds all configuration for a conversion run.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Theme    ThemeConfig    `yaml:"theme"`
	Render   RenderConfig   `yaml:"render"`
	Document DocumentConfig `yaml:"document"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ThemeConfig selects the document theme.
type ThemeConfig struct {
	Name      string         `yaml:"name"`      // Built-in theme name (default: "light")
	File      string         `yaml:"file"`      // Theme JSON export; takes precedence over Name
	Overrides map[string]any `yaml:"overrides"` // Partial theme merged over the base
}

// RenderConfig defines Markdown rendering options.
type RenderConfig struct {
	Sanitize        bool   `yaml:"sanitize"`
	ExtractMetadata bool   `yaml:"extractMetadata"`
	Highlight       bool   `yaml:"highlight"`
	CodeStyle       string `yaml:"codeStyle"` // Chroma style (default: "github")
	Footnotes       bool   `yaml:"footnotes"`
	Marks           bool   `yaml:"marks"` // ==text== to <mark>
}

// DocumentConfig defines the full document wrapper options.
type DocumentConfig struct {
	Fragment     bool   `yaml:"fragment"`     // Write the bare fragment, no wrapper
	Title        string `yaml:"title"`        // Fallback: frontmatter title, then filename
	InlineStyles bool   `yaml:"inlineStyles"` // false = link Stylesheet and write it alongside
	Stylesheet   string `yaml:"stylesheet"`   // Linked stylesheet name (default: "styles.css")
	CSS          string `yaml:"css"`          // Extra CSS appended after the theme styles
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled     bool    `yaml:"enabled"`
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
	Timeout     string  `yaml:"timeout"`     // Go duration, e.g. "30s" (empty = library default)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{Name: theme.LightName},
		Render: RenderConfig{
			Sanitize:        true,
			ExtractMetadata: true,
			CodeStyle:       "github",
		},
		Document: DocumentConfig{
			InlineStyles: true,
			Stylesheet:   "styles.css",
		},
		PDF: PDFConfig{
			PageSize:    "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
	}
}

// Validate checks every section. Called automatically by LoadConfig, but
// available for callers who construct or modify a Config.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Input),
		validation.Field(&c.Output),
		validation.Field(&c.Theme),
		validation.Field(&c.Render),
		validation.Field(&c.Document),
		validation.Field(&c.Assets),
		validation.Field(&c.PDF),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (c InputConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DefaultDir, validation.RuneLength(0, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (c OutputConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DefaultDir, validation.RuneLength(0, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (c ThemeConfig) Validate() error {
	names := make([]any, 0, len(theme.Names()))
	for _, n := range theme.Names() {
		names = append(names, n)
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.RuneLength(0, MaxThemeNameLength),
			validation.When(c.File == "", validation.In(names...).Error("must be one of "+strings.Join(theme.Names(), ", "))),
		),
		validation.Field(&c.File, validation.RuneLength(0, MaxPathLength)),
		validation.Field(&c.Overrides, validation.By(validateOverrides)),
	)
}

// validateOverrides merges the overrides onto the light theme to reject
// unknown keys and mistyped values before any file is converted.
func validateOverrides(value any) error {
	overrides, _ := value.(map[string]any)
	if len(overrides) == 0 {
		return nil
	}
	if _, err := theme.Merge(theme.Light(), overrides); err != nil {
		return validation.NewError("validation_theme_overrides", err.Error())
	}
	return nil
}

// Validate implements validation.Validatable.
func (c RenderConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CodeStyle,
			validation.When(c.Highlight, validation.Required.Error("is required when highlight is enabled")),
			validation.RuneLength(0, MaxCodeStyleLength),
		),
	)
}

// Validate implements validation.Validatable.
func (c DocumentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&c.Stylesheet,
			validation.When(!c.InlineStyles && !c.Fragment, validation.Required.Error("is required when inlineStyles is false")),
			validation.RuneLength(0, MaxPathLength),
		),
		validation.Field(&c.CSS, validation.Length(0, MaxCSSLength)),
	)
}

// Validate implements validation.Validatable.
func (c AssetsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BasePath, validation.RuneLength(0, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (c PDFConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PageSize, validation.By(oneOfFold("letter", "a4", "legal"))),
		validation.Field(&c.Orientation, validation.By(oneOfFold("portrait", "landscape"))),
		validation.Field(&c.Margin, validation.When(c.Margin != 0, validation.Min(MinMargin), validation.Max(MaxMargin))),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
	)
}

// TimeoutDuration returns the parsed Timeout, or 0 when unset.
func (c PDFConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// oneOfFold accepts the empty string or any of allowed, ignoring case.
func oneOfFold(allowed ...string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return nil
			}
		}
		return validation.NewError("validation_in_invalid", "must be one of "+strings.Join(allowed, ", "))
	}
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_duration_invalid", "must be a duration such as 30s or 2m")
	}
	if d <= 0 {
		return validation.NewError("validation_duration_positive", "must be positive")
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a YAML extension, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations. Values absent from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil && !errors.Is(err, yamlutil.ErrNilData) {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError lists the paths searched for a config file.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
