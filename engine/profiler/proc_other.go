//go:build profile && !windows

package profiler

import "syscall"

func viewerAttr() *syscall.SysProcAttr { return nil }
