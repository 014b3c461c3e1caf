//go:build profile && windows

package profiler

import "syscall"

// viewerAttr keeps the viewer from opening a console window.
func viewerAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true}
}
