package pyshrink

import "errors"

const (
	engineNotFoundMessageConstant        = "PyShrink engine not found at the installation root."
	workspaceMissingMessageConstant      = "No workspace folder opened."
	noArgumentsMessageConstant           = "No arguments provided."
	argumentParseWarningTemplateConstant = "Unable to parse arguments: %v"
	processStartFailureTemplateConstant  = "Unable to start PyShrink: %v"
	terminalFailureTemplateConstant      = "Unable to open the PyShrink terminal: %v"
	wrappedFailureTemplateConstant       = "%w: %w"
)

var (
	// ErrInstallationRootUnavailable indicates that the installation root could not be resolved.
	ErrInstallationRootUnavailable = errors.New("installation root unavailable")
	// ErrWorkspaceUnavailable indicates that no workspace folder is open.
	ErrWorkspaceUnavailable = errors.New("no workspace folder opened")
	// ErrNoArgumentsProvided indicates that the argument prompt was cancelled or left empty.
	ErrNoArgumentsProvided = errors.New("no arguments provided")
	// ErrInvalidArguments indicates that the submitted argument text could not be tokenized.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrProcessStartFailed indicates that the tool process could not be spawned.
	ErrProcessStartFailed = errors.New("process start failed")
	// ErrTerminalUnavailable indicates that the terminal session could not be created or driven.
	ErrTerminalUnavailable = errors.New("terminal unavailable")
	// ErrUnknownAction indicates that a dispatch request named an unregistered action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnknownTokenizer indicates an unsupported tokenizer name.
	ErrUnknownTokenizer = errors.New("unknown tokenizer")

	errNotifierNotConfigured     = errors.New("notifier not configured")
	errSpawnerNotConfigured      = errors.New("process spawner not configured")
	errSinkNotConfigured         = errors.New("log sink not configured")
	errRootResolverNotConfigured = errors.New("installation root resolver not configured")
	errWorkspaceNotConfigured    = errors.New("workspace resolver not configured")
	errHostNotConfigured         = errors.New("terminal host not configured")
	errPrompterNotConfigured     = errors.New("prompter not configured")
	errLauncherNotConfigured     = errors.New("invoker not configured")
)
