//go:build !windows

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/pyshrink-launcher/internal/execshell"
)

const (
	sessionTitleTemplateConstant     = "── %s ──\n"
	lineTerminatorConstant           = "\n"
	outputDrainGracePeriodConstant   = 2 * time.Second
	inputChunkSizeConstant           = 1024
	shellStartErrorTemplateConstant  = "unable to start shell %s: %w"
	rawModeErrorTemplateConstant     = "unable to switch terminal to raw mode: %w"
	sessionStartedMessageConstant    = "terminal session started"
	sessionFinishedMessageConstant   = "terminal session finished"
	logFieldSessionNameConstant      = "session"
	logFieldShellConstant            = "shell"
	logFieldWorkingDirectoryConstant = "working_directory"
)

// PseudoTerminalHost creates shell sessions backed by pseudo-terminals.
type PseudoTerminalHost struct {
	shell  string
	input  io.Reader
	output io.Writer
	logger *zap.Logger
}

// NewPseudoTerminalHost constructs a host. Missing options default to the process's standard streams and shell.
func NewPseudoTerminalHost(options HostOptions) *PseudoTerminalHost {
	host := &PseudoTerminalHost{
		shell:  ResolveShell(options.Shell, os.LookupEnv),
		input:  options.Input,
		output: options.Output,
		logger: options.Logger,
	}
	if host.input == nil {
		host.input = os.Stdin
	}
	if host.output == nil {
		host.output = os.Stdout
	}
	if host.logger == nil {
		host.logger = zap.NewNop()
	}
	return host
}

// Shell returns the shell executable used for new sessions.
func (host *PseudoTerminalHost) Shell() string {
	return host.shell
}

// CreateSession starts a new shell in its own pseudo-terminal. Sessions are never reused.
func (host *PseudoTerminalHost) CreateSession(executionContext context.Context, options SessionOptions) (Session, error) {
	shellCommand := exec.CommandContext(executionContext, host.shell)
	shellCommand.Env = execshell.MergeEnvironment(os.Environ(), options.EnvironmentVariables)
	if len(options.WorkingDirectory) > 0 {
		shellCommand.Dir = options.WorkingDirectory
	}

	pseudoTerminal, startError := pty.Start(shellCommand)
	if startError != nil {
		return nil, fmt.Errorf(shellStartErrorTemplateConstant, host.shell, startError)
	}

	host.logger.Debug(
		sessionStartedMessageConstant,
		zap.String(logFieldSessionNameConstant, options.Name),
		zap.String(logFieldShellConstant, host.shell),
		zap.String(logFieldWorkingDirectoryConstant, options.WorkingDirectory),
	)

	return &pseudoTerminalSession{
		name:           options.Name,
		shellCommand:   shellCommand,
		pseudoTerminal: pseudoTerminal,
		input:          host.input,
		output:         host.output,
		logger:         host.logger,
		outputDrained:  make(chan struct{}),
		inputStopped:   make(chan struct{}),
	}, nil
}

type pseudoTerminalSession struct {
	name           string
	shellCommand   *exec.Cmd
	pseudoTerminal *os.File
	input          io.Reader
	output         io.Writer
	logger         *zap.Logger

	mutex          sync.Mutex
	shown          bool
	exited         bool
	restoreConsole func()
	stopResizing   func()
	outputDrained  chan struct{}
	inputStopped   chan struct{}
	waitOnce       sync.Once
	waitError      error
}

func (session *pseudoTerminalSession) Name() string {
	return session.name
}

func (session *pseudoTerminalSession) Show() error {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.exited {
		return ErrSessionClosed
	}
	if session.shown {
		return nil
	}

	if _, titleError := fmt.Fprintf(session.output, sessionTitleTemplateConstant, session.name); titleError != nil {
		return titleError
	}

	if inputFile, isFile := session.input.(*os.File); isFile && term.IsTerminal(int(inputFile.Fd())) {
		_ = pty.InheritSize(inputFile, session.pseudoTerminal)
		previousState, rawModeError := term.MakeRaw(int(inputFile.Fd()))
		if rawModeError != nil {
			return fmt.Errorf(rawModeErrorTemplateConstant, rawModeError)
		}
		session.restoreConsole = func() {
			_ = term.Restore(int(inputFile.Fd()), previousState)
		}
		session.stopResizing = propagateResize(inputFile, session.pseudoTerminal)
	}

	session.shown = true
	session.startCopying(session.output)
	go session.forwardInput()

	return nil
}

func (session *pseudoTerminalSession) SendText(text string) error {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.exited {
		return ErrSessionClosed
	}

	_, writeError := io.WriteString(session.pseudoTerminal, text+lineTerminatorConstant)
	return writeError
}

// Wait blocks until the shell exits. The shell's own exit status is not reported.
func (session *pseudoTerminalSession) Wait() error {
	session.waitOnce.Do(func() {
		session.mutex.Lock()
		if !session.shown {
			session.startCopying(io.Discard)
		}
		session.mutex.Unlock()

		shellError := session.shellCommand.Wait()
		exitError := &exec.ExitError{}
		if shellError != nil && !errors.As(shellError, &exitError) {
			session.waitError = shellError
		}

		select {
		case <-session.outputDrained:
		case <-time.After(outputDrainGracePeriodConstant):
		}

		session.mutex.Lock()
		session.exited = true
		if session.stopResizing != nil {
			session.stopResizing()
		}
		if session.restoreConsole != nil {
			session.restoreConsole()
		}
		_ = session.pseudoTerminal.Close()
		session.mutex.Unlock()

		session.logger.Debug(sessionFinishedMessageConstant, zap.String(logFieldSessionNameConstant, session.name))
	})
	return session.waitError
}

// forwardInput copies typed input into the pseudo-terminal until the session exits.
// A read blocked on an interactive console returns with the next keystroke, and
// that input is dropped once the shell is gone.
func (session *pseudoTerminalSession) forwardInput() {
	defer close(session.inputStopped)

	buffer := make([]byte, inputChunkSizeConstant)
	for {
		readCount, readError := session.input.Read(buffer)
		if readCount > 0 && !session.writeInput(buffer[:readCount]) {
			return
		}
		if readError != nil {
			return
		}
	}
}

func (session *pseudoTerminalSession) writeInput(data []byte) bool {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.exited {
		return false
	}
	_, writeError := session.pseudoTerminal.Write(data)
	return writeError == nil
}

func (session *pseudoTerminalSession) startCopying(destination io.Writer) {
	go func() {
		defer close(session.outputDrained)
		_, _ = io.Copy(destination, session.pseudoTerminal)
	}()
}
