package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/theme"
)

// swatchWidth is the number of cells of one color swatch.
const swatchWidth = 3

// runThemes dispatches the themes subcommands.
func runThemes(args []string, env *Environment) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printThemesUsage(env.Stdout)
		return nil
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return runThemesList(rest, env)
	case "show":
		return runThemesShow(rest, env)
	case "export":
		return runThemesExport(rest, env)
	case "css":
		return runThemesCSS(rest, env)
	case "validate":
		return runThemesValidate(rest, env)
	default:
		printThemesUsage(env.Stderr)
		return fmt.Errorf("%w: unknown themes command %q", ErrUsage, sub)
	}
}

// runThemesList prints the built-in themes with color swatches, or the
// syntax highlighting styles with --code-styles.
func runThemesList(args []string, env *Environment) error {
	fs := flag.NewFlagSet("themes list", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	codeStyles := fs.Bool("code-styles", false, "list syntax highlighting styles")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if *codeStyles {
		for _, name := range md2html.CodeStyles() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	r := lipgloss.NewRenderer(env.Stdout)
	nameStyle := r.NewStyle().Bold(true).Width(maxNameWidth(theme.Names()) + 2)

	for _, t := range theme.Themes().All() {
		c := t.Colors
		line := nameStyle.Render(t.Name) + swatches(r, c.Background, c.Text, c.Headings, c.Links, c.CodeBackground, c.TableHeader)
		if t.Name == theme.LightName {
			line += "  (default)"
		}
		fmt.Fprintln(env.Stdout, line)
	}
	return nil
}

// runThemesShow prints every variable of a theme, with a swatch before
// each color.
func runThemesShow(args []string, env *Environment) error {
	t, err := themeFromArgs("show", args)
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(env.Stdout)
	header := r.NewStyle().Bold(true)
	dim := r.NewStyle().Faint(true)

	fmt.Fprintln(env.Stdout, header.Render(t.Name))
	fmt.Fprintln(env.Stdout, dim.Render(fmt.Sprintf("zebra rows: %t", t.Tables.Zebra)))

	width := 0
	groups := theme.VariableGroups(t)
	for _, g := range groups {
		for _, v := range g {
			width = max(width, len(v.Name))
		}
	}

	for _, g := range groups {
		fmt.Fprintln(env.Stdout)
		for _, v := range g {
			swatch := strings.Repeat(" ", swatchWidth)
			if strings.HasPrefix(v.Value, "#") {
				swatch = swatches(r, v.Value)
			}
			fmt.Fprintf(env.Stdout, "%s %-*s %s\n", swatch, width, v.Name, v.Value)
		}
	}
	return nil
}

// runThemesExport writes a theme as JSON to stdout or --output.
func runThemesExport(args []string, env *Environment) error {
	fs := flag.NewFlagSet("themes export", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	output := fs.StringP("output", "o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	t, err := themeFromArgs("export", fs.Args())
	if err != nil {
		return err
	}

	data, err := theme.Export(t)
	if err != nil {
		return err
	}
	return writeOutput(env.Stdout, *output, data+"\n")
}

// runThemesCSS prints the theme as a :root block of CSS custom properties.
func runThemesCSS(args []string, env *Environment) error {
	t, err := themeFromArgs("css", args)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, ":root {")
	for _, line := range strings.Split(theme.CSSVariables(t), "\n") {
		if line == "" {
			fmt.Fprintln(env.Stdout)
			continue
		}
		fmt.Fprintln(env.Stdout, "  "+line)
	}
	fmt.Fprintln(env.Stdout, "}")
	return nil
}

// runThemesValidate checks a theme file against the strict schema and
// lists every violation.
func runThemesValidate(args []string, env *Environment) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: themes validate takes exactly one file", ErrUsage)
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	err = theme.ValidateStrict(string(data))
	var validationErr *theme.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(env.Stderr, "%s: %d issue(s)\n", args[0], len(validationErr.Issues))
		for _, issue := range validationErr.Issues {
			loc := issue.Location
			if loc == "" {
				loc = "(root)"
			}
			fmt.Fprintf(env.Stderr, "  %s: %s\n", loc, issue.Message)
		}
		return fmt.Errorf("%s: %w", args[0], theme.ErrInvalidTheme)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "%s: valid\n", args[0])
	return nil
}

// themeFromArgs resolves the single theme argument of a subcommand: a
// built-in name or a theme JSON file.
func themeFromArgs(sub string, args []string) (theme.Theme, error) {
	if len(args) != 1 {
		return theme.Theme{}, fmt.Errorf("%w: themes %s takes one theme name or file", ErrUsage, sub)
	}
	arg := args[0]
	if fileutil.IsFileRef(arg, ".json") {
		return loadThemeArg(arg, "")
	}
	return loadThemeArg("", arg)
}

// swatches renders one block per color, using the writer's color profile.
// Without color support the blocks are plain spaces.
func swatches(r *lipgloss.Renderer, colors ...string) string {
	var sb strings.Builder
	for _, c := range colors {
		sb.WriteString(r.NewStyle().Background(lipgloss.Color(c)).Render(strings.Repeat(" ", swatchWidth)))
		sb.WriteString(" ")
	}
	return strings.TrimSuffix(sb.String(), " ")
}

func maxNameWidth(names []string) int {
	w := 0
	for _, n := range names {
		w = max(w, len(n))
	}
	return w
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := fileutil.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
