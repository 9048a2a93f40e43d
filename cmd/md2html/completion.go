package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/theme"
)

// Shell names a shell that GenerateCompletion can target.
type Shell string

const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var ErrUnsupportedShell = errors.New("unsupported shell")

// generators maps each shell to its script writer.
var generators = map[Shell]func(io.Writer) error{
	ShellBash:       generateBash,
	ShellZsh:        generateZsh,
	ShellFish:       generateFish,
	ShellPowerShell: generatePowerShell,
}

// flagType is how a shell should complete a flag's value.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagFloat
	flagEnum
	flagFile
	flagDir
)

// flagDef is one flag as the completion scripts see it.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated: "*.yaml,*.yml"
}

func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// commandDef is one subcommand as the completion scripts see it.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed first-argument words (subcommands, shells)
	TakesFiles  bool
	FilePattern string // comma separated globs
}

// valueCompletion refines flags whose pflag type says too little: the
// allowed values of an enum, or that a string names a file or directory.
var valueCompletion = map[string]flagDef{
	"page-size":   {Type: flagEnum, Values: md2html.PageSizes()},
	"orientation": {Type: flagEnum, Values: md2html.Orientations()},
	"theme":       {Type: flagEnum, Values: theme.Names()},
	"code-style":  {Type: flagEnum, Values: md2html.CodeStyles()},
	"config":      {Type: flagFile, FileGlob: "*.yaml,*.yml"},
	"css":         {Type: flagFile, FileGlob: "*.css"},
	"output":      {Type: flagDir},
	"asset-path":  {Type: flagDir},
}

// pflagTypes maps pflag value types onto completion types. Anything
// missing completes as a free string.
var pflagTypes = map[string]flagType{
	"bool":    flagBool,
	"int":     flagInt,
	"uint":    flagInt,
	"float64": flagFloat,
}

func buildConvertFlagSet() *flag.FlagSet {
	return newConvertFlagSet(&convertFlags{})
}

// buildSanitizeFlagSet mirrors the flags registered by runSanitize.
func buildSanitizeFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("sanitize", flag.ContinueOnError)
	fs.StringP("output", "o", "", "write to file instead of stdout")
	fs.Bool("report", false, "list removed dangerous content on stderr")
	return fs
}

// completionFlags lists the flags of fs in registration order, so the
// scripts never drift from what the commands actually accept.
func completionFlags(fs *flag.FlagSet) []flagDef {
	var defs []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		def := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage, Type: pflagTypes[f.Value.Type()]}
		if refined, ok := valueCompletion[f.Name]; ok {
			def.Type, def.Values, def.FileGlob = refined.Type, refined.Values, refined.FileGlob
		}
		defs = append(defs, def)
	})
	return defs
}

// getCommands lists every command in the order the scripts offer them.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to HTML",
			Flags:       completionFlags(buildConvertFlagSet()),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "themes",
			Desc:        "List, show, export and validate themes",
			Args:        []string{"list", "show", "export", "css", "validate"},
			TakesFiles:  true,
			FilePattern: "*.json",
		},
		{
			Name:        "sanitize",
			Desc:        "Filter an HTML file through the sanitizer",
			Flags:       completionFlags(buildSanitizeFlagSet()),
			TakesFiles:  true,
			FilePattern: "*.html,*.htm",
		},
		{
			Name:  "doctor",
			Desc:  "Check system configuration for PDF export",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output diagnostics as JSON"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"convert", "themes", "sanitize", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	gen, ok := generators[shell]
	if !ok {
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	return gen(w)
}

// runCompletion prints the script for args[0], or usage without arguments.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

const completionUsage = `Usage: md2html completion <shell>

Print a completion script for one of: bash, zsh, fish, powershell.

Installation:
  bash        eval "$(md2html completion bash)"            # ~/.bashrc
  zsh         eval "$(md2html completion zsh)"             # ~/.zshrc, after compinit
  fish        md2html completion fish > ~/.config/fish/completions/md2html.fish
  powershell  md2html completion powershell | Out-String | Invoke-Expression   # $PROFILE
`

func printCompletionUsage(w io.Writer) {
	fmt.Fprint(w, completionUsage)
}
