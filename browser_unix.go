//go:build !windows

package md2html

import (
	"errors"
	"syscall"
)

// killBrowserTree sends SIGKILL to the browser's process group so Chrome
// helper processes go with it. A group that already exited is not an error.
func killBrowserTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
