package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/theme"
)

// Overall doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the report printed by the doctor command, as text or JSON.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	Assets   assetInfo  `json:"assets"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// assetInfo reports whether the embedded templates and built-in themes load.
type assetInfo struct {
	Templates bool     `json:"templates"`
	Themes    []string `json:"themes"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// lookPath locates Chrome. Replaced in tests.
var lookPath = launcher.LookPath

// runDoctorCmd prints the diagnostics and returns 1 when any check failed.
// HTML output never needs a browser, so warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "output diagnostics as JSON")
	help := fs.BoolP("help", "h", false, "show help")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printDoctorUsage(env.Stderr)
		return ExitUsage
	}
	if *help {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}

	result := runDoctor()
	if *asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check and derives the overall status.
func runDoctor() *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	for _, check := range []func(*doctorResult){checkAssets, checkChrome, checkEnvironment, checkTempDir} {
		check(r)
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkAssets loads the embedded document templates and round-trips each
// built-in theme through the strict schema.
func checkAssets(r *doctorResult) {
	if _, err := assets.DefaultTemplateSet(); err != nil {
		r.fail("embedded templates: %v", err)
	} else {
		r.Assets.Templates = true
	}

	for _, name := range theme.Names() {
		t, _ := theme.Get(name)
		data, err := theme.Export(t)
		if err == nil {
			err = theme.ValidateStrict(data)
		}
		if err != nil {
			r.fail("built-in theme %s: %v", name, err)
			continue
		}
		r.Assets.Themes = append(r.Assets.Themes, name)
	}
}

func checkChrome(r *doctorResult) {
	path := r.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = lookPath(); !found {
			r.fail("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN (only needed for --pdf)")
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		r.fail("Chrome not found at %s", path)
		return
	}

	r.Chrome.Found = true
	r.Chrome.Path = path
	r.Chrome.Sandbox = r.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from launcher or ROD_BROWSER_BIN
	if err != nil {
		r.warn("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

func checkEnvironment(r *doctorResult) {
	r.Env.Container, r.Env.ContainerHint = isContainer()
	r.Env.CI = hints.InCI()

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer returns whether a container signal is present and which one.
func isContainer() (bool, string) {
	switch {
	case os.Getenv("MD2HTML_CONTAINER") == "1":
		return true, "MD2HTML_CONTAINER=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkTempDir verifies PDF export can stage its HTML in the temp directory.
func checkTempDir(r *doctorResult) {
	f, err := os.CreateTemp("", "md2html-doctor-*")
	if err != nil {
		r.fail("Temp directory not writable: %s", os.TempDir())
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.System.TempWritable = true
}

// printDoctorResult writes the report grouped by section.
func printDoctorResult(w io.Writer, r *doctorResult) {
	line := func(ok bool, format string, args ...any) {
		tag := "[OK]"
		if !ok {
			tag = "[ERROR]"
		}
		fmt.Fprintf(w, "  %s %s\n", tag, fmt.Sprintf(format, args...))
	}

	fmt.Fprint(w, "md2html doctor\n\n")

	fmt.Fprintln(w, "Assets")
	line(r.Assets.Templates, "Embedded templates")
	line(len(r.Assets.Themes) == len(theme.Names()), "Themes: %s", strings.Join(r.Assets.Themes, ", "))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		line(true, "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line(true, "Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			line(true, "Sandbox: enabled")
		} else {
			line(true, "Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		line(false, "Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	line(true, "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line(true, "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line(true, "CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		line(true, "Temp directory: writable")
	} else {
		line(false, "Temp directory: not writable")
	}
	fmt.Fprintln(w)

	printFindings(w, "Warnings:", "[WARN]", r.Warnings)
	printFindings(w, "Errors:", "[ERROR]", r.Errors)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		if r.Assets.Templates {
			fmt.Fprintln(w, "Status: HTML conversion ready, PDF export not ready (see errors above)")
		} else {
			fmt.Fprintln(w, "Status: Not ready (see errors above)")
		}
	}
}

func printFindings(w io.Writer, title, tag string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", tag, item)
	}
	fmt.Fprintln(w)
}
