package execshell

// CommandEventObserver receives lifecycle notifications for spawned processes.
type CommandEventObserver interface {
	// CommandStarted notifies observers that the process was spawned.
	CommandStarted(request ProcessRequest)
	// CommandCompleted notifies observers that the process exited with the supplied code.
	CommandCompleted(request ProcessRequest, exitCode int)
	// CommandExecutionFailed reports failures that prevented an exit code from being observed.
	CommandExecutionFailed(request ProcessRequest, failure error)
}

// NoopCommandEventObserver discards all command events.
type NoopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (NoopCommandEventObserver) CommandStarted(ProcessRequest) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (NoopCommandEventObserver) CommandCompleted(ProcessRequest, int) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (NoopCommandEventObserver) CommandExecutionFailed(ProcessRequest, error) {}
