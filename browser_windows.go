//go:build windows

package md2html

import (
	"os/exec"
	"strconv"
)

// killBrowserTree force-kills the browser and its child processes.
func killBrowserTree(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid from launcher
}
