package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/theme"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input file")
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	engine   *md2html.Engine
	theme    theme.Theme
	cfg      *config.Config
	extraCSS string
	pool     Pool // nil unless PDF export is enabled
	workers  int
}

// runConvertCmd parses the convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfiguration(flags, envCfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.pdf.timeout, envCfg.Timeout, cfg.PDF.Timeout)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputs, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFilesFound, strings.Join(inputs, ", "))
	}

	t, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	extraCSS, err := resolveExtraCSS(flags.document.css, cfg.Document.CSS)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		engine:   engine,
		theme:    t,
		cfg:      cfg,
		extraCSS: extraCSS,
		workers:  resolvePoolSize(flags.workers, envCfg.Workers),
	}

	if cfg.PDF.Enabled {
		page := &md2html.PageSettings{
			Size:        strings.ToLower(cfg.PDF.PageSize),
			Orientation: strings.ToLower(cfg.PDF.Orientation),
			Margin:      cfg.PDF.Margin,
		}
		opts := []md2html.PDFOption{md2html.WithPageSettings(page)}
		if timeout > 0 {
			opts = append(opts, md2html.WithTimeout(timeout))
		}
		params.pool = env.NewPool(params.workers, opts...)
		defer func() { _ = params.pool.Close() }()
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Files: %d, workers: %d, theme: %s\n", len(files), params.workers, t.Name)
	}

	if err := writeStylesheets(files, params); err != nil {
		return err
	}

	results := convertBatch(ctx, files, params)
	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	if flags.watch {
		return watchAndConvert(ctx, inputs, outputDir, params, flags, env)
	}

	if failed > 0 {
		return newBatchError(results)
	}
	return nil
}

// loadConfiguration builds the effective config.
// Precedence: CLI flags > config file > env vars > defaults.
func loadConfiguration(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Flags bypass the file validation, so check the merged result again
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Render flags
	if flags.render.noSanitize {
		cfg.Render.Sanitize = false
	}
	if flags.render.noMetadata {
		cfg.Render.ExtractMetadata = false
	}
	if flags.render.highlight {
		cfg.Render.Highlight = true
	}
	if flags.render.codeStyle != "" {
		cfg.Render.CodeStyle = flags.render.codeStyle
		cfg.Render.Highlight = true
	}
	if flags.render.footnotes {
		cfg.Render.Footnotes = true
	}
	if flags.render.marks {
		cfg.Render.Marks = true
	}

	// Document flags
	if flags.document.theme != "" {
		setTheme(cfg, flags.document.theme)
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.fragment {
		cfg.Document.Fragment = true
	}
	if flags.document.linkStyles {
		cfg.Document.InlineStyles = false
	}
	if flags.document.stylesheet != "" {
		cfg.Document.Stylesheet = flags.document.stylesheet
	}
	if flags.document.assetPath != "" {
		cfg.Assets.BasePath = flags.document.assetPath
	}

	// PDF flags
	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.size != "" {
		cfg.PDF.PageSize = flags.pdf.size
	}
	if flags.pdf.orientation != "" {
		cfg.PDF.Orientation = flags.pdf.orientation
	}
	if flags.pdf.margin > 0 {
		cfg.PDF.Margin = flags.pdf.margin
	}
}

// setTheme selects a built-in theme by name, or a theme JSON file when the
// value looks like a path.
func setTheme(cfg *config.Config, value string) {
	if fileutil.IsFileRef(value, ".json") {
		cfg.Theme.File = value
		return
	}
	cfg.Theme.Name = value
	cfg.Theme.File = ""
}

// resolveTheme loads the base theme and applies the configured overrides.
func resolveTheme(tc config.ThemeConfig) (theme.Theme, error) {
	base, err := loadThemeArg(tc.File, tc.Name)
	if err != nil {
		return theme.Theme{}, err
	}
	return theme.Merge(base, tc.Overrides)
}

// loadThemeArg imports the theme file when set, otherwise looks up the
// built-in theme name.
func loadThemeArg(file, name string) (theme.Theme, error) {
	if file != "" {
		data, err := os.ReadFile(file) // #nosec G304 -- user-provided path
		if err != nil {
			return theme.Theme{}, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		t, err := theme.Import(string(data))
		if err != nil {
			return theme.Theme{}, fmt.Errorf("%s: %w", file, err)
		}
		return t, nil
	}

	t, ok := theme.Get(name)
	if !ok {
		return theme.Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// resolveExtraCSS returns the CSS appended after the theme styles.
// The flag holds inline CSS or a file path and replaces the config value.
func resolveExtraCSS(flagValue, configValue string) (string, error) {
	if flagValue == "" {
		return configValue, nil
	}
	if fileutil.IsCSS(flagValue) {
		return flagValue, nil
	}
	content, err := os.ReadFile(flagValue) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(content), nil
}

// buildEngine creates the Markdown engine from the render and asset config.
func buildEngine(cfg *config.Config) (*md2html.Engine, error) {
	var opts []md2html.Option
	if cfg.Render.Highlight {
		opts = append(opts, md2html.WithSyntaxHighlighting(cfg.Render.CodeStyle))
	}
	if cfg.Render.Footnotes {
		opts = append(opts, md2html.WithFootnotes())
	}
	if cfg.Render.Marks {
		opts = append(opts, md2html.WithHighlightMarks())
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	return md2html.NewEngine(opts...)
}

// writeStylesheets writes the shared stylesheet into every output directory
// when documents link it instead of inlining it.
func writeStylesheets(files []FileToConvert, params *conversionParams) error {
	doc := params.cfg.Document
	if doc.InlineStyles || doc.Fragment {
		return nil
	}

	css, err := params.engine.Stylesheet(params.theme, params.extraCSS)
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f.OutputPath)] = true
	}
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	for _, dir := range sorted {
		if err := fileutil.WriteFile(filepath.Join(dir, doc.Stylesheet), []byte(css)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}

// resolveTimeoutWithEnv parses the PDF timeout.
// Priority: flag > env > config; zero means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: use format like 30s, 2m, 1m30s", ErrInvalidTimeout, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, s)
	}
	return d, nil
}

// resolveInputs determines the inputs from args or config.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
