package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to HTML (and PDF)")
	fmt.Fprintln(w, "  themes      List, show, export and validate themes")
	fmt.Fprintln(w, "  sanitize    Filter an HTML file through the sanitizer")
	fmt.Fprintln(w, "  doctor      Check system configuration for PDF export")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to standalone HTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or glob such as 'docs/**/*.md'")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Reconvert files when they change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --no-sanitize         Keep raw HTML unfiltered (trusted input only)")
	fmt.Fprintln(w, "      --no-metadata         Render frontmatter as Markdown")
	fmt.Fprintln(w, "      --highlight           Enable syntax highlighting")
	fmt.Fprintln(w, "      --code-style <s>      Highlighting style (implies --highlight)")
	fmt.Fprintln(w, "      --footnotes           Enable footnotes")
	fmt.Fprintln(w, "      --marks               Render ==text== as <mark>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --theme <s>           Theme: light, dark, custom, or JSON file")
	fmt.Fprintln(w, "      --title <s>           Title (default: frontmatter title, then file name)")
	fmt.Fprintln(w, "      --fragment            Write the HTML fragment only")
	fmt.Fprintln(w, "      --link-styles         Link a shared stylesheet instead of inlining")
	fmt.Fprintln(w, "      --stylesheet <name>   Linked stylesheet name (default: styles.css)")
	fmt.Fprintln(w, "      --css <file|css>      Extra CSS appended to the theme")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template and style directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF next to each HTML file")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html themes <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [--code-styles]          List built-in themes or highlighting styles")
	fmt.Fprintln(w, "  show <name|file>              Show every theme value")
	fmt.Fprintln(w, "  export <name|file> [-o file]  Write a theme as JSON")
	fmt.Fprintln(w, "  css <name|file>               Print the theme as CSS custom properties")
	fmt.Fprintln(w, "  validate <file>               Check a theme file against the schema")
}

// printSanitizeUsage prints usage for the sanitize command.
func printSanitizeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html sanitize [flags] <file.html|->")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filter HTML through the default sanitization policy.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to file instead of stdout")
	fmt.Fprintln(w, "      --report              List removed dangerous content on stderr")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check embedded assets, plus Chrome, sandbox and temp directory setup for PDF export.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "sanitize":
		printSanitizeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
