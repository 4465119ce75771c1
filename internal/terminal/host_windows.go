//go:build windows

package terminal

import (
	"context"
	"os"
)

// PseudoTerminalHost reports ErrUnsupportedPlatform on Windows.
type PseudoTerminalHost struct {
	shell string
}

// NewPseudoTerminalHost constructs a host that cannot create sessions.
func NewPseudoTerminalHost(options HostOptions) *PseudoTerminalHost {
	return &PseudoTerminalHost{shell: ResolveShell(options.Shell, os.LookupEnv)}
}

// Shell returns the shell executable that would be used for new sessions.
func (host *PseudoTerminalHost) Shell() string {
	return host.shell
}

// CreateSession always fails on Windows.
func (host *PseudoTerminalHost) CreateSession(context.Context, SessionOptions) (Session, error) {
	return nil, ErrUnsupportedPlatform
}
