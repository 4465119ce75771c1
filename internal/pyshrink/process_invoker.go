package pyshrink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/pyshrink-launcher/internal/execshell"
)

const (
	// ErrorLinePrefix marks lines that arrived on the tool's standard error.
	ErrorLinePrefix = "ERROR: "

	completionLineTemplateConstant   = "PyShrink finished with exit code %d"
	carriageReturnConstant           = "\r"
	scannerInitialBufferSizeConstant = 64 * 1024
	scannerMaximumBufferSizeConstant = 1024 * 1024
	processStartedMessageConstant    = "pyshrink process started"
	processCompletedMessageConstant  = "pyshrink process completed"
	streamReadFailureMessageConstant = "pyshrink output stream failed"
	sinkWriteFailureMessageConstant  = "log sink rejected a line"
	rootUnavailableMessageConstant   = "installation root unavailable"
	logFieldCommandConstant          = "command"
	logFieldExitCodeConstant         = "exit_code"
	logFieldInstallationRootConstant = "installation_root"
)

// ProcessInvokerDependencies enumerates the collaborators of a ProcessInvoker.
type ProcessInvokerDependencies struct {
	Logger       *zap.Logger
	Spawner      execshell.ProcessSpawner
	Sink         LineSink
	RootResolver InstallationRootResolver
	Notifier     Notifier
	Observer     execshell.CommandEventObserver
	Interpreter  string
}

// ProcessInvoker runs the tool as a background process and streams its output into the log sink.
type ProcessInvoker struct {
	logger       *zap.Logger
	spawner      execshell.ProcessSpawner
	sink         LineSink
	rootResolver InstallationRootResolver
	notifier     Notifier
	observer     execshell.CommandEventObserver
	interpreter  string
}

// NewProcessInvoker validates dependencies and constructs a ProcessInvoker.
func NewProcessInvoker(dependencies ProcessInvokerDependencies) (*ProcessInvoker, error) {
	if dependencies.Spawner == nil {
		return nil, errSpawnerNotConfigured
	}
	if dependencies.Sink == nil {
		return nil, errSinkNotConfigured
	}
	if dependencies.RootResolver == nil {
		return nil, errRootResolverNotConfigured
	}
	if dependencies.Notifier == nil {
		return nil, errNotifierNotConfigured
	}

	invoker := &ProcessInvoker{
		logger:       dependencies.Logger,
		spawner:      dependencies.Spawner,
		sink:         dependencies.Sink,
		rootResolver: dependencies.RootResolver,
		notifier:     dependencies.Notifier,
		observer:     dependencies.Observer,
		interpreter:  ResolveInterpreter(dependencies.Interpreter),
	}
	if invoker.logger == nil {
		invoker.logger = zap.NewNop()
	}
	if invoker.observer == nil {
		invoker.observer = execshell.NoopCommandEventObserver{}
	}

	return invoker, nil
}

// Invocation is the handle of one background tool process.
type Invocation struct {
	request  execshell.ProcessRequest
	cancel   context.CancelFunc
	done     chan struct{}
	exitCode int
	failure  error
}

// Request returns the process request that was spawned.
func (invocation *Invocation) Request() execshell.ProcessRequest {
	return invocation.request
}

// Done is closed once the process exited and its completion line was written.
func (invocation *Invocation) Done() <-chan struct{} {
	return invocation.done
}

// Wait blocks until the invocation finishes and reports the exit code.
// A non-zero exit code is not an error.
func (invocation *Invocation) Wait() (int, error) {
	<-invocation.done
	return invocation.exitCode, invocation.failure
}

// Cancel stops the process if it is still running.
func (invocation *Invocation) Cancel() {
	invocation.cancel()
}

// Run spawns the tool with the flags passed as discrete arguments and returns without waiting for it.
func (invoker *ProcessInvoker) Run(executionContext context.Context, flags []string) (*Invocation, error) {
	installationRoot, rootAvailable := invoker.rootResolver.ResolveInstallationRoot()
	if !rootAvailable {
		invoker.logger.Debug(rootUnavailableMessageConstant)
		invoker.notifier.ShowError(engineNotFoundMessageConstant)
		return nil, ErrInstallationRootUnavailable
	}

	request := execshell.ProcessRequest{
		Executable:           invoker.interpreter,
		Arguments:            ModuleInvocationArguments(flags),
		EnvironmentVariables: BuildEnvironment(installationRoot),
	}

	invoker.sink.Show()
	invoker.appendLine(buildLogHeader(flags))

	invocationContext, cancel := context.WithCancel(executionContext)
	runningProcess, spawnError := invoker.spawner.Spawn(invocationContext, request)
	if spawnError != nil {
		cancel()
		invoker.observer.CommandExecutionFailed(request, spawnError)
		invoker.appendLine(ErrorLinePrefix + spawnError.Error())
		invoker.notifier.ShowError(fmt.Sprintf(processStartFailureTemplateConstant, spawnError))
		return nil, fmt.Errorf(wrappedFailureTemplateConstant, ErrProcessStartFailed, spawnError)
	}

	invoker.observer.CommandStarted(request)
	invoker.logger.Debug(
		processStartedMessageConstant,
		zap.String(logFieldCommandConstant, request.Label()),
		zap.String(logFieldInstallationRootConstant, installationRoot),
	)

	invocation := &Invocation{request: request, cancel: cancel, done: make(chan struct{})}
	go invoker.supervise(runningProcess, invocation)

	return invocation, nil
}

// supervise drains both streams, then waits for the exit code and writes the completion line.
func (invoker *ProcessInvoker) supervise(runningProcess execshell.RunningProcess, invocation *Invocation) {
	defer close(invocation.done)
	defer invocation.cancel()

	var streamGroup errgroup.Group
	streamGroup.Go(func() error {
		return invoker.pump(runningProcess.StandardOutput(), "")
	})
	streamGroup.Go(func() error {
		return invoker.pump(runningProcess.StandardError(), ErrorLinePrefix)
	})
	if streamError := streamGroup.Wait(); streamError != nil {
		invoker.logger.Warn(streamReadFailureMessageConstant, zap.Error(streamError))
	}

	exitCode, waitError := runningProcess.Wait()
	invocation.exitCode = exitCode
	if waitError != nil {
		invocation.failure = waitError
		invoker.observer.CommandExecutionFailed(invocation.request, waitError)
		invoker.appendLine(ErrorLinePrefix + waitError.Error())
	} else {
		invoker.observer.CommandCompleted(invocation.request, exitCode)
	}

	invoker.appendLine(fmt.Sprintf(completionLineTemplateConstant, exitCode))
	invoker.logger.Debug(
		processCompletedMessageConstant,
		zap.String(logFieldCommandConstant, invocation.request.Label()),
		zap.Int(logFieldExitCodeConstant, exitCode),
	)
}

// pump appends every line of the stream to the sink. It keeps reading after sink
// failures so the child never blocks on a full pipe.
func (invoker *ProcessInvoker) pump(stream io.Reader, linePrefix string) error {
	if stream == nil {
		return nil
	}

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, scannerInitialBufferSizeConstant), scannerMaximumBufferSizeConstant)
	for scanner.Scan() {
		invoker.appendLine(linePrefix + strings.TrimSuffix(scanner.Text(), carriageReturnConstant))
	}

	scanError := scanner.Err()
	if scanError != nil {
		_, _ = io.Copy(io.Discard, stream)
	}
	return scanError
}

func (invoker *ProcessInvoker) appendLine(text string) {
	if appendError := invoker.sink.AppendLine(text); appendError != nil {
		invoker.logger.Debug(sinkWriteFailureMessageConstant, zap.Error(appendError))
	}
}
