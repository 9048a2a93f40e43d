package main

import (
	"fmt"
	"io"
	"strings"
)

// commandNames returns the names of cmds in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords returns every spelling of the flags, long form first.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for md2html\n\n")
	b.WriteString("_md2html_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		writeBashCommand(&b, c)
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _md2html_completions md2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBashCommand(b *strings.Builder, c commandDef) {
	var valued []flagDef
	for _, f := range c.Flags {
		if f.takesValue() {
			valued = append(valued, f)
		}
	}

	if len(valued) > 0 {
		b.WriteString("            case \"${prev}\" in\n")
		for _, f := range valued {
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			fmt.Fprintf(b, "                %s)\n", pattern)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "                    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString("                    COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
			case flagDir:
				b.WriteString("                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
			}
			b.WriteString("                    return 0\n")
			b.WriteString("                    ;;\n")
		}
		b.WriteString("            esac\n")
	}

	if len(c.Flags) > 0 {
		b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(flagWords(c.Flags), " "))
		b.WriteString("                return 0\n")
		b.WriteString("            fi\n")
	}

	if len(c.Args) > 0 {
		b.WriteString("            if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
		fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		b.WriteString("                return 0\n")
		b.WriteString("            fi\n")
	}

	if c.TakesFiles {
		b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef md2html\n\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		specs := zshSpecs(c)
		if len(specs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for i, s := range specs {
			b.WriteString("                " + s)
			if i < len(specs)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2html md2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshSpecs builds the _arguments specs of a command.
func zshSpecs(c commandDef) []string {
	var specs []string
	for _, f := range c.Flags {
		specs = append(specs, zshFlagSpec(f))
	}
	if len(c.Args) > 0 {
		specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
	}
	if c.TakesFiles {
		specs = append(specs, fmt.Sprintf("'*:file:_files -g \"%s\"'", zshGlob(c.FilePattern)))
	}
	return specs
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)

	var arg string
	if f.Short != "" {
		arg = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", f.Short, f.Long, f.Short, f.Long, desc)
	} else {
		arg = fmt.Sprintf("'--%s[%s]", f.Long, desc)
	}

	switch f.Type {
	case flagBool:
	case flagEnum:
		arg += fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		arg += fmt.Sprintf(":%s:_files -g \"%s\"", f.Long, zshGlob(f.FileGlob))
	case flagDir:
		arg += fmt.Sprintf(":%s:_files -/", f.Long)
	default:
		arg += fmt.Sprintf(":%s: ", f.Long)
	}
	return arg + "'"
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(glob string) string {
	parts := strings.Split(glob, ",")
	if len(parts) == 1 {
		return glob
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

var zshReplacer = strings.NewReplacer(
	"'", `'\''`,
	"[", `\[`,
	"]", `\]`,
	":", `\:`,
)

func zshEscape(s string) string {
	return zshReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for md2html\n\n")
	b.WriteString("function __fish_md2html_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2html_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2html -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2html -n __fish_md2html_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_md2html_using_command %s'", c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.TakesFiles {
			b.WriteString("\n")
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c md2html %s%s\n", cond, fishFlagSpec(f))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c md2html %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c md2html %s -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishFlagSpec(f flagDef) string {
	var b strings.Builder
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	fmt.Fprintf(&b, " -l %s", f.Long)

	switch f.Type {
	case flagBool:
	case flagEnum:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
	case flagFile:
		b.WriteString(" -r -F")
	case flagDir:
		b.WriteString(" -x -a '(__fish_complete_directories)'")
	default:
		b.WriteString(" -x")
	}

	if f.Desc != "" {
		fmt.Fprintf(&b, " -d '%s'", fishEscape(f.Desc))
	}
	return b.String()
}

var fishReplacer = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishEscape(s string) string {
	return fishReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# powershell completion for md2html\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2html -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -and $words.Count -gt 1) {\n")
	b.WriteString("        $words = $words[0..($words.Count - 2)]\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $commands = @(" + psList(commandNames(cmds)) + ")\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(flagWords(c.Flags)))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			fmt.Fprintf(&b, "        '%s --%s' = @(%s)\n", c.Name, f.Long, psList(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        '%s -%s' = @(%s)\n", c.Name, f.Short, psList(f.Values))
			}
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    if ($words.Count -le 1) {\n")
	b.WriteString("        $candidates = $commands\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $cmd = $words[1]\n")
	b.WriteString("        $key = \"$cmd $($words[-1])\"\n")
	b.WriteString("        if ($values.ContainsKey($key)) {\n")
	b.WriteString("            $candidates = $values[$key]\n")
	b.WriteString("        } elseif ($wordToComplete -like '-*') {\n")
	b.WriteString("            $candidates = $flags[$cmd]\n")
	b.WriteString("        } elseif ($words.Count -eq 2 -and $positional.ContainsKey($cmd)) {\n")
	b.WriteString("            $candidates = $positional[$cmd]\n")
	b.WriteString("        } else {\n")
	b.WriteString("            return\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psList renders words as a comma-separated list of single-quoted strings.
func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + strings.ReplaceAll(w, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
