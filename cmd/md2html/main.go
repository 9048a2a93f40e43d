package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the recognized subcommands.
var commands = map[string]bool{
	"convert":    true,
	"themes":     true,
	"sanitize":   true,
	"doctor":     true,
	"completion": true,
	"version":    true,
	"help":       true,
}

func main() {
	env := DefaultEnv()
	configureMaxProcs(os.Args, env)
	os.Exit(runMain(os.Args, env))
}

// configureMaxProcs sets GOMAXPROCS from the container quota, logging the
// decision only when -v or --verbose is present.
func configureMaxProcs(args []string, env *Environment) {
	verbose := false
	for _, a := range args[1:] {
		if a == "-v" || a == "--verbose" {
			verbose = true
			break
		}
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}

// runMain dispatches args[1] to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "sanitize":
		err = runSanitize(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-md2html %s\n", Version)
	case "help":
		return runHelp(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether s names a subcommand. Matching is case sensitive.
func isCommand(s string) bool {
	return commands[s]
}

// printError writes err to stderr followed by an actionable hint, if any.
// YAML decode errors also get the annotated source lines.
func printError(env *Environment, err error) {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))

	var decodeErr *yamlutil.DecodeError
	if errors.As(err, &decodeErr) {
		fmt.Fprintln(env.Stderr)
		fmt.Fprintln(env.Stderr, decodeErr.Source())
	}
}

// hintFor picks the hint matching err.
func hintFor(err error) string {
	var notFound *config.NotFoundError
	if errors.As(err, &notFound) {
		return hints.ConfigNotFound(notFound.Tried)
	}

	for _, h := range errorHints {
		if errors.Is(err, h.err) {
			return h.hint()
		}
	}
	return ""
}
