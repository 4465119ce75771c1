//go:build windows

package execshell

import (
	"os/exec"
	"time"
)

const processWaitDelayConstant = 2 * time.Second

// configureTermination bounds how long Wait lingers on pipes after cancellation.
func configureTermination(executable *exec.Cmd) {
	executable.WaitDelay = processWaitDelayConstant
}
