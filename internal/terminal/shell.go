package terminal

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	shellEnvironmentVariableConstant = "SHELL"
	defaultShellConstant             = "/bin/sh"
)

// ErrSessionClosed indicates that the session's shell already exited.
var ErrSessionClosed = errors.New("terminal session closed")

// ErrUnsupportedPlatform indicates that pseudo-terminals are unavailable on this platform.
var ErrUnsupportedPlatform = errors.New("pseudo-terminal sessions are not supported on this platform")

// HostOptions configures a PseudoTerminalHost.
type HostOptions struct {
	Shell  string
	Input  io.Reader
	Output io.Writer
	Logger *zap.Logger
}

// ResolveShell returns the configured shell, then $SHELL, then /bin/sh.
func ResolveShell(configuredShell string, lookupEnvironment func(string) (string, bool)) string {
	if trimmedShell := strings.TrimSpace(configuredShell); len(trimmedShell) > 0 {
		return trimmedShell
	}
	if lookupEnvironment != nil {
		if environmentShell, found := lookupEnvironment(shellEnvironmentVariableConstant); found && len(strings.TrimSpace(environmentShell)) > 0 {
			return strings.TrimSpace(environmentShell)
		}
	}
	return defaultShellConstant
}
