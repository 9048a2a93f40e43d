package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
)

// sanitizeFlags holds flags for the sanitize command.
type sanitizeFlags struct {
	output string
	report bool
}

// runSanitize filters an HTML file, or stdin for "-", through the default
// policy. With --report the detected dangerous constructs go to stderr.
func runSanitize(args []string, env *Environment) error {
	f := &sanitizeFlags{}
	fs := flag.NewFlagSet("sanitize", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fs.BoolVar(&f.report, "report", false, "list removed dangerous content on stderr")
	fs.Usage = func() { printSanitizeUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: sanitize takes exactly one file (or - for stdin)", ErrUsage)
	}

	input, err := readInput(fs.Arg(0), env.Stdin)
	if err != nil {
		return err
	}

	report := md2html.SanitizeWithReport(input)
	if f.report {
		if len(report.Removed) == 0 {
			fmt.Fprintln(env.Stderr, "no dangerous content found")
		} else {
			fmt.Fprintf(env.Stderr, "removed: %s\n", strings.Join(report.Removed, ", "))
		}
	}

	return writeOutput(env.Stdout, f.output, report.HTML)
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}
