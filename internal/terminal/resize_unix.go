//go:build !windows

package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// propagateResize copies the controlling terminal's size to the pseudo-terminal on every SIGWINCH.
func propagateResize(controllingTerminal *os.File, pseudoTerminal *os.File) func() {
	resizeSignals := make(chan os.Signal, 1)
	signal.Notify(resizeSignals, syscall.SIGWINCH)

	stopped := make(chan struct{})
	go func() {
		for {
			select {
			case <-resizeSignals:
				_ = pty.InheritSize(controllingTerminal, pseudoTerminal)
			case <-stopped:
				return
			}
		}
	}()

	return func() {
		signal.Stop(resizeSignals)
		close(stopped)
	}
}
