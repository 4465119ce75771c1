//go:build !windows

package terminal_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pyshrink-launcher/internal/terminal"
)

const (
	testPosixShellConstant       = "/bin/sh"
	testSessionNameConstant      = "PyShrink Interactive"
	testEnvironmentKeyConstant   = "PYSHRINK_TERMINAL_MARKER"
	testEnvironmentValueConstant = "terminal-marker"
)

type synchronizedBuffer struct {
	mutex  sync.Mutex
	buffer bytes.Buffer
}

func (buffer *synchronizedBuffer) Write(data []byte) (int, error) {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()
	return buffer.buffer.Write(data)
}

func (buffer *synchronizedBuffer) String() string {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()
	return buffer.buffer.String()
}

func TestPseudoTerminalSessionRunsTypedCommands(testInstance *testing.T) {
	if _, statError := os.Stat(testPosixShellConstant); statError != nil {
		testInstance.Skip("posix shell unavailable")
	}

	workingDirectory := testInstance.TempDir()
	output := &synchronizedBuffer{}
	host := terminal.NewPseudoTerminalHost(terminal.HostOptions{
		Shell:  testPosixShellConstant,
		Input:  strings.NewReader(""),
		Output: output,
	})

	session, createError := host.CreateSession(context.Background(), terminal.SessionOptions{
		Name:                 testSessionNameConstant,
		EnvironmentVariables: map[string]string{testEnvironmentKeyConstant: testEnvironmentValueConstant},
		WorkingDirectory:     workingDirectory,
	})
	require.NoError(testInstance, createError)
	require.Equal(testInstance, testSessionNameConstant, session.Name())

	require.NoError(testInstance, session.Show())
	require.NoError(testInstance, session.SendText("echo sum-$((20+22)) \"$"+testEnvironmentKeyConstant+"\" \"$(pwd)\""))
	require.NoError(testInstance, session.SendText("exit"))

	waitResult := make(chan error, 1)
	go func() {
		waitResult <- session.Wait()
	}()

	select {
	case waitError := <-waitResult:
		require.NoError(testInstance, waitError)
	case <-time.After(10 * time.Second):
		testInstance.Fatal("shell did not exit")
	}

	resolvedDirectory, resolveError := filepath.EvalSymlinks(workingDirectory)
	require.NoError(testInstance, resolveError)

	sessionOutput := output.String()
	require.Contains(testInstance, sessionOutput, "── "+testSessionNameConstant+" ──")
	require.Contains(testInstance, sessionOutput, "sum-42")
	require.Contains(testInstance, sessionOutput, testEnvironmentValueConstant)
	require.Contains(testInstance, sessionOutput, filepath.Base(resolvedDirectory))
	require.ErrorIs(testInstance, session.SendText("echo late"), terminal.ErrSessionClosed)
}
