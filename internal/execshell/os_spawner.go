package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	standardOutputPipeErrorTemplateConstant = "unable to attach standard output: %w"
	standardErrorPipeErrorTemplateConstant  = "unable to attach standard error: %w"
	processStartErrorTemplateConstant       = "unable to start %s: %w"
	unknownExitCodeConstant                 = -1
)

// ErrExecutableNotConfigured indicates that a request did not name an executable.
var ErrExecutableNotConfigured = errors.New("executable not configured")

// OSProcessSpawner starts processes using the operating system facilities.
type OSProcessSpawner struct{}

// NewOSProcessSpawner constructs a spawner backed by os/exec.
func NewOSProcessSpawner() *OSProcessSpawner {
	return &OSProcessSpawner{}
}

// Spawn starts the requested process with piped standard output and standard error.
func (spawner *OSProcessSpawner) Spawn(executionContext context.Context, request ProcessRequest) (RunningProcess, error) {
	if len(request.Executable) == 0 {
		return nil, ErrExecutableNotConfigured
	}

	commandArguments := append([]string{}, request.Arguments...)
	executable := exec.CommandContext(executionContext, request.Executable, commandArguments...)
	configureTermination(executable)

	if len(request.WorkingDirectory) > 0 {
		executable.Dir = request.WorkingDirectory
	}

	if len(request.EnvironmentVariables) > 0 {
		executable.Env = MergeEnvironment(os.Environ(), request.EnvironmentVariables)
	}

	standardOutput, standardOutputError := executable.StdoutPipe()
	if standardOutputError != nil {
		return nil, fmt.Errorf(standardOutputPipeErrorTemplateConstant, standardOutputError)
	}

	standardError, standardErrorError := executable.StderrPipe()
	if standardErrorError != nil {
		return nil, fmt.Errorf(standardErrorPipeErrorTemplateConstant, standardErrorError)
	}

	if startError := executable.Start(); startError != nil {
		return nil, fmt.Errorf(processStartErrorTemplateConstant, request.Executable, startError)
	}

	return &osRunningProcess{
		executable:     executable,
		standardOutput: standardOutput,
		standardError:  standardError,
	}, nil
}

type osRunningProcess struct {
	executable     *exec.Cmd
	standardOutput io.Reader
	standardError  io.Reader
}

func (process *osRunningProcess) StandardOutput() io.Reader {
	return process.standardOutput
}

func (process *osRunningProcess) StandardError() io.Reader {
	return process.standardError
}

// Wait reports the exit code. A non-zero exit is not an error.
func (process *osRunningProcess) Wait() (int, error) {
	waitError := process.executable.Wait()
	if waitError == nil {
		return 0, nil
	}

	exitError := &exec.ExitError{}
	if errors.As(waitError, &exitError) {
		return exitError.ExitCode(), nil
	}

	return unknownExitCodeConstant, waitError
}
