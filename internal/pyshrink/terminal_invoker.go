package pyshrink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/terminal"
)

const (
	interactiveSessionNameConstant = "PyShrink Interactive"
	customSessionNameConstant      = "PyShrink"
	fullCleanupSessionNameConstant = "PyShrink Full Cleanup"
	workspaceMissingLogConstant    = "no workspace folder resolved"
	terminalFailureLogConstant     = "terminal session failed"
	terminalCommandSentLogConstant = "typed pyshrink command into terminal"
	logFieldWorkspaceConstant      = "workspace"
	logFieldCommandLineConstant    = "command_line"
	logFieldSessionNameConstant    = "session"
)

// TerminalInvokerDependencies enumerates the collaborators of a TerminalInvoker.
type TerminalInvokerDependencies struct {
	Logger            *zap.Logger
	Host              TerminalHost
	RootResolver      InstallationRootResolver
	WorkspaceResolver WorkspaceResolver
	Notifier          Notifier
	Interpreter       string
}

// TerminalInvoker runs the tool inside a new interactive terminal session for every call.
type TerminalInvoker struct {
	logger            *zap.Logger
	host              TerminalHost
	rootResolver      InstallationRootResolver
	workspaceResolver WorkspaceResolver
	notifier          Notifier
	interpreter       string
}

// NewTerminalInvoker validates dependencies and constructs a TerminalInvoker.
func NewTerminalInvoker(dependencies TerminalInvokerDependencies) (*TerminalInvoker, error) {
	if dependencies.Host == nil {
		return nil, errHostNotConfigured
	}
	if dependencies.RootResolver == nil {
		return nil, errRootResolverNotConfigured
	}
	if dependencies.WorkspaceResolver == nil {
		return nil, errWorkspaceNotConfigured
	}
	if dependencies.Notifier == nil {
		return nil, errNotifierNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TerminalInvoker{
		logger:            logger,
		host:              dependencies.Host,
		rootResolver:      dependencies.RootResolver,
		workspaceResolver: dependencies.WorkspaceResolver,
		notifier:          dependencies.Notifier,
		interpreter:       ResolveInterpreter(dependencies.Interpreter),
	}, nil
}

// RunInteractive opens a terminal running the tool against the workspace with no extra flags.
func (invoker *TerminalInvoker) RunInteractive(executionContext context.Context) (terminal.Session, error) {
	return invoker.run(executionContext, interactiveSessionNameConstant, nil)
}

// RunFullCleanup opens a terminal running the tool in full-cleanup mode.
func (invoker *TerminalInvoker) RunFullCleanup(executionContext context.Context) (terminal.Session, error) {
	return invoker.run(executionContext, fullCleanupSessionNameConstant, []string{fullCleanupFlagConstant})
}

// RunWithArguments opens a terminal running the tool with user-supplied flags.
func (invoker *TerminalInvoker) RunWithArguments(executionContext context.Context, flags []string) (terminal.Session, error) {
	return invoker.run(executionContext, customSessionNameConstant, flags)
}

func (invoker *TerminalInvoker) run(executionContext context.Context, sessionName string, flags []string) (terminal.Session, error) {
	installationRoot, rootAvailable := invoker.rootResolver.ResolveInstallationRoot()
	if !rootAvailable {
		invoker.logger.Debug(rootUnavailableMessageConstant)
		invoker.notifier.ShowError(engineNotFoundMessageConstant)
		return nil, ErrInstallationRootUnavailable
	}

	workspaceFolders := invoker.workspaceResolver.ResolveWorkspaceFolders()
	if len(workspaceFolders) == 0 {
		invoker.logger.Debug(workspaceMissingLogConstant)
		invoker.notifier.ShowError(workspaceMissingMessageConstant)
		return nil, ErrWorkspaceUnavailable
	}
	workspacePath := workspaceFolders[0]

	session, createError := invoker.host.CreateSession(executionContext, terminal.SessionOptions{
		Name:                 sessionName,
		EnvironmentVariables: BuildEnvironment(installationRoot),
		WorkingDirectory:     workspacePath,
	})
	if createError != nil {
		return nil, invoker.reportTerminalFailure(createError)
	}

	if showError := session.Show(); showError != nil {
		return nil, invoker.reportTerminalFailure(showError)
	}

	commandLine := BuildTerminalCommandLine(invoker.interpreter, workspacePath, flags)
	if sendError := session.SendText(commandLine); sendError != nil {
		return nil, invoker.reportTerminalFailure(sendError)
	}

	invoker.logger.Debug(
		terminalCommandSentLogConstant,
		zap.String(logFieldSessionNameConstant, sessionName),
		zap.String(logFieldWorkspaceConstant, workspacePath),
		zap.String(logFieldCommandLineConstant, commandLine),
	)

	return session, nil
}

func (invoker *TerminalInvoker) reportTerminalFailure(failure error) error {
	invoker.logger.Debug(terminalFailureLogConstant, zap.Error(failure))
	invoker.notifier.ShowError(fmt.Sprintf(terminalFailureTemplateConstant, failure))
	return fmt.Errorf(wrappedFailureTemplateConstant, ErrTerminalUnavailable, failure)
}
