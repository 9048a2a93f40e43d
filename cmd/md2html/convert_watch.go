package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchAndConvert reconverts changed Markdown files until ctx is done.
// Directories are watched recursively; new files under a watched input
// are picked up on the next change.
func watchAndConvert(ctx context.Context, inputs []string, outputDir string, params *conversionParams, flags *convertFlags, env *Environment) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchDirs(inputs) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Watching for changes (Ctrl+C to stop)...")
	}

	onChange := func(changed []string) {
		// New subdirectories need their own watch
		for _, p := range changed {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				_ = watcher.Add(p)
			}
		}

		files, err := discoverFiles(inputs, outputDir)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAILED discovering files: %v\n", err)
			return
		}
		files = filterChanged(files, changed)
		if len(files) == 0 {
			return
		}
		if err := writeStylesheets(files, params); err != nil {
			fmt.Fprintf(env.Stderr, "FAILED writing stylesheet: %v\n", err)
		}
		results := convertBatch(ctx, files, params)
		printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	}

	watchLoop(ctx, watcher.Events, watcher.Errors, watchDebounce, onChange, env)
	return nil
}

// watchLoop collects changed paths and calls onChange once no event has
// arrived for the debounce interval. Returns when ctx is done or the event
// channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration, onChange func([]string), env *Environment) {
	pending := make(map[string]bool)
	var order []string
	timer := time.NewTimer(debounce)
	timer.Stop()

	flush := func() {
		if len(order) == 0 {
			return
		}
		changed := order
		pending = make(map[string]bool)
		order = nil
		onChange(changed)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				flush()
				return
			}
			if !isRelevantEvent(ev) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if !pending[path] {
				pending[path] = true
				order = append(order, path)
			}
			timer.Reset(debounce)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(env.Stderr, "watch error: %v\n", err)

		case <-timer.C:
			flush()
		}
	}
}

// isRelevantEvent keeps writes and creations of Markdown files and
// directories; chmod and removal events never trigger a conversion.
func isRelevantEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if isMarkdown(ev.Name) {
		return true
	}
	return ev.Has(fsnotify.Create) && filepath.Ext(ev.Name) == ""
}

// filterChanged keeps the files whose input path, or a parent directory
// of it, is in changed.
func filterChanged(files []FileToConvert, changed []string) []FileToConvert {
	set := make(map[string]bool, len(changed))
	for _, c := range changed {
		set[filepath.Clean(c)] = true
	}

	var out []FileToConvert
	for _, f := range files {
		for p := f.InputPath; ; p = filepath.Dir(p) {
			if set[p] {
				out = append(out, f)
				break
			}
			if parent := filepath.Dir(p); parent == p {
				break
			}
		}
	}
	return out
}

// watchDirs returns the directories to watch for inputs: each directory
// input with all its subdirectories, the parent of each file input and the
// static prefix of each glob.
func watchDirs(inputs []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, input := range inputs {
		root := input
		if isGlob(input) {
			root, _ = splitGlob(input)
		} else if info, err := os.Stat(input); err != nil || !info.IsDir() {
			add(filepath.Dir(input))
			continue
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}
