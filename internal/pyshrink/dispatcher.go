package pyshrink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/terminal"
)

// ActionName identifies a user-invocable action.
type ActionName string

// Registered actions.
const (
	ActionHelp                   ActionName = "help"
	ActionInteractiveRun         ActionName = "interactive-run"
	ActionRunWithCustomArguments ActionName = "run-with-custom-args"
	ActionFullCleanup            ActionName = "full-cleanup"
)

const (
	unknownActionTemplateConstant = "%w: %s"
	actionDispatchedLogConstant   = "dispatching action"
	actionAbortedLogConstant      = "action aborted"
	logFieldActionConstant        = "action"
)

// ProcessLauncher starts background tool invocations.
type ProcessLauncher interface {
	Run(executionContext context.Context, flags []string) (*Invocation, error)
}

// TerminalLauncher starts tool invocations inside terminal sessions.
type TerminalLauncher interface {
	RunInteractive(executionContext context.Context) (terminal.Session, error)
	RunFullCleanup(executionContext context.Context) (terminal.Session, error)
	RunWithArguments(executionContext context.Context, flags []string) (terminal.Session, error)
}

// ArgumentSource gathers user-supplied flags.
type ArgumentSource interface {
	Collect(executionContext context.Context) ([]string, error)
}

// Outcome reports what a dispatched action started. At most one field is set.
type Outcome struct {
	Action     ActionName
	Invocation *Invocation
	Session    terminal.Session
}

type actionHandler func(executionContext context.Context) (Outcome, error)

// Dispatcher routes each registered action to its invocation strategy.
type Dispatcher struct {
	logger          *zap.Logger
	actionOrder     []ActionName
	actionHandlers  map[ActionName]actionHandler
	processLauncher ProcessLauncher
	terminal        TerminalLauncher
	arguments       ArgumentSource
}

// NewDispatcher registers the four actions against the supplied invokers.
func NewDispatcher(logger *zap.Logger, processLauncher ProcessLauncher, terminalLauncher TerminalLauncher, argumentSource ArgumentSource) (*Dispatcher, error) {
	if processLauncher == nil || terminalLauncher == nil || argumentSource == nil {
		return nil, errLauncherNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dispatcher := &Dispatcher{
		logger:          logger,
		actionHandlers:  make(map[ActionName]actionHandler),
		processLauncher: processLauncher,
		terminal:        terminalLauncher,
		arguments:       argumentSource,
	}

	dispatcher.register(ActionHelp, dispatcher.runHelp)
	dispatcher.register(ActionInteractiveRun, dispatcher.runInteractive)
	dispatcher.register(ActionRunWithCustomArguments, dispatcher.runWithCustomArguments)
	dispatcher.register(ActionFullCleanup, dispatcher.runFullCleanup)

	return dispatcher, nil
}

// Actions lists the registered actions in registration order.
func (dispatcher *Dispatcher) Actions() []ActionName {
	return append([]ActionName{}, dispatcher.actionOrder...)
}

// Dispatch runs the named action. User-visible failures have already been
// surfaced by the invokers when an error is returned.
func (dispatcher *Dispatcher) Dispatch(executionContext context.Context, action ActionName) (Outcome, error) {
	handler, registered := dispatcher.actionHandlers[action]
	if !registered {
		return Outcome{Action: action}, fmt.Errorf(unknownActionTemplateConstant, ErrUnknownAction, action)
	}

	dispatcher.logger.Debug(actionDispatchedLogConstant, zap.String(logFieldActionConstant, string(action)))

	outcome, handlerError := handler(executionContext)
	outcome.Action = action
	if handlerError != nil {
		dispatcher.logger.Debug(actionAbortedLogConstant, zap.String(logFieldActionConstant, string(action)), zap.Error(handlerError))
	}
	return outcome, handlerError
}

func (dispatcher *Dispatcher) register(action ActionName, handler actionHandler) {
	dispatcher.actionOrder = append(dispatcher.actionOrder, action)
	dispatcher.actionHandlers[action] = handler
}

func (dispatcher *Dispatcher) runHelp(executionContext context.Context) (Outcome, error) {
	invocation, runError := dispatcher.processLauncher.Run(executionContext, []string{helpFlagConstant})
	return Outcome{Invocation: invocation}, runError
}

func (dispatcher *Dispatcher) runInteractive(executionContext context.Context) (Outcome, error) {
	session, runError := dispatcher.terminal.RunInteractive(executionContext)
	return Outcome{Session: session}, runError
}

func (dispatcher *Dispatcher) runWithCustomArguments(executionContext context.Context) (Outcome, error) {
	flags, collectError := dispatcher.arguments.Collect(executionContext)
	if collectError != nil {
		return Outcome{}, collectError
	}
	session, runError := dispatcher.terminal.RunWithArguments(executionContext, flags)
	return Outcome{Session: session}, runError
}

func (dispatcher *Dispatcher) runFullCleanup(executionContext context.Context) (Outcome, error) {
	session, runError := dispatcher.terminal.RunFullCleanup(executionContext)
	return Outcome{Session: session}, runError
}
