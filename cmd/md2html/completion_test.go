package main

// Notes:
// - GenerateCompletion: we test that shell scripts are generated with expected
//   content markers. We do not test that the scripts actually work in the
//   target shell (that would require integration tests with actual shells).
// - getCommands: we test the command definitions are complete and correct.
// These are acceptable gaps: we test observable behavior, not runtime shell behavior.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion_SupportedShells - Shell completion script generation
// ---------------------------------------------------------------------------

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash generates valid script",
			shell: ShellBash,
			wantContains: []string{
				"_md2html_completions",
				"complete -F _md2html_completions md2html",
				"compgen",
				"convert",
				"--output",
				"--page-size|-p)",
				`compgen -W "letter a4 legal"`,
			},
		},
		{
			name:  "zsh generates valid script",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef md2html",
				"_md2html",
				"_arguments",
				"_describe",
				"'(-o --output)'{-o,--output}",
				"{-p,--page-size}'[",
				":page-size:(letter a4 legal)",
				`_files -g "*.(yaml|yml)"`,
			},
		},
		{
			name:  "fish generates valid script",
			shell: ShellFish,
			wantContains: []string{
				"complete -c md2html",
				"__fish_md2html_needs_command",
				"__fish_md2html_using_command",
				"-a convert",
				"-s o -l output",
				"-l page-size -x -a 'letter a4 legal'",
			},
		},
		{
			name:  "powershell generates valid script",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter",
				"-CommandName md2html",
				"CompletionResult",
				"'convert'",
				"'--output'",
				"'convert --page-size' = @('letter', 'a4', 'legal')",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) returned error: %v", tt.shell, err)
			}

			output := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing expected content %q", want)
				}
			}
			for _, cmd := range getCommands() {
				if !strings.Contains(output, cmd.Name) {
					t.Errorf("output missing command %q", cmd.Name)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGenerateCompletion_UnsupportedShell - Error handling for unknown shells
// ---------------------------------------------------------------------------

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	for _, shell := range []Shell{"", "unknown", "sh", "ksh"} {
		var buf bytes.Buffer
		err := GenerateCompletion(&buf, shell)

		if !errors.Is(err, ErrUnsupportedShell) {
			t.Errorf("GenerateCompletion(%q) error = %v, want ErrUnsupportedShell", shell, err)
			continue
		}
		if !strings.Contains(err.Error(), string(shell)) {
			t.Errorf("error message should contain shell name %q, got: %v", shell, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunCompletion - Command entry point
// ---------------------------------------------------------------------------

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if err := runCompletion(nil, env); err != nil {
		t.Fatalf("runCompletion with no args returned error: %v", err)
	}
	for _, want := range []string{"Usage: md2html completion", "bash", "zsh", "fish", "powershell", "Installation"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}

	env, stdout, _ = testEnv(nil)
	if err := runCompletion([]string{"zsh"}, env); err != nil {
		t.Fatalf("runCompletion(zsh) error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "#compdef md2html") {
		t.Error("zsh script should start with #compdef")
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Command registry
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	cmds := getCommands()
	var names []string
	byName := make(map[string]commandDef)
	for _, c := range cmds {
		names = append(names, c.Name)
		byName[c.Name] = c
	}

	want := "convert themes sanitize doctor completion version help"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("commands = %q, want %q", got, want)
	}

	flags := make(map[string]flagDef)
	for _, f := range byName["convert"].Flags {
		flags[f.Long] = f
	}

	expected := []struct {
		name      string
		wantShort string
		wantType  flagType
	}{
		{"output", "o", flagDir},
		{"config", "c", flagFile},
		{"workers", "w", flagInt},
		{"watch", "", flagBool},
		{"theme", "", flagEnum},
		{"code-style", "", flagEnum},
		{"css", "", flagFile},
		{"asset-path", "", flagDir},
		{"page-size", "p", flagEnum},
		{"orientation", "", flagEnum},
		{"margin", "", flagFloat},
		{"timeout", "t", flagString},
		{"title", "", flagString},
		{"quiet", "q", flagBool},
	}
	for _, e := range expected {
		f, ok := flags[e.name]
		if !ok {
			t.Errorf("convert missing flag --%s", e.name)
			continue
		}
		if f.Short != e.wantShort {
			t.Errorf("flag --%s: short = %q, want %q", e.name, f.Short, e.wantShort)
		}
		if f.Type != e.wantType {
			t.Errorf("flag --%s: type = %v, want %v", e.name, f.Type, e.wantType)
		}
	}

	if got := strings.Join(flags["theme"].Values, " "); got != "light dark custom" {
		t.Errorf("theme values = %q", got)
	}
	if flags["config"].FileGlob != "*.yaml,*.yml" {
		t.Errorf("config glob = %q", flags["config"].FileGlob)
	}
	if len(byName["sanitize"].Flags) != 2 {
		t.Errorf("sanitize flags = %v, want --output and --report", byName["sanitize"].Flags)
	}
}

// ---------------------------------------------------------------------------
// TestZshGlob - Glob list conversion
// ---------------------------------------------------------------------------

func TestZshGlob(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"*.css":           "*.css",
		"*.yaml,*.yml":    "*.(yaml|yml)",
		"*.md,*.markdown": "*.(md|markdown)",
	}
	for in, want := range tests {
		if got := zshGlob(in); got != want {
			t.Errorf("zshGlob(%q) = %q, want %q", in, got, want)
		}
	}
}
