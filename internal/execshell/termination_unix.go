//go:build !windows

package execshell

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const processWaitDelayConstant = 2 * time.Second

// configureTermination starts the process in its own process group so that
// cancellation also stops descendants still holding the output pipes.
func configureTermination(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	executable.Cancel = func() error {
		killError := syscall.Kill(-executable.Process.Pid, syscall.SIGKILL)
		if errors.Is(killError, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return killError
	}
	executable.WaitDelay = processWaitDelayConstant
}
