package pyshrink_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pyshrink-launcher/internal/pyshrink"
)

const (
	testWorkspaceMissingConstant       = "No workspace folder opened."
	testTerminalFailureReasonConstant  = "pty unavailable"
	testSecondWorkspacePathConstant    = "/work/other"
)

func newTestTerminalInvoker(testInstance *testing.T, host *recordingHost, notifier *recordingNotifier, rootResolver pyshrink.InstallationRootResolver, workspaceResolver pyshrink.WorkspaceResolver) *pyshrink.TerminalInvoker {
	testInstance.Helper()
	invoker, constructionError := pyshrink.NewTerminalInvoker(pyshrink.TerminalInvokerDependencies{
		Host:              host,
		RootResolver:      rootResolver,
		WorkspaceResolver: workspaceResolver,
		Notifier:          notifier,
		Interpreter:       testInterpreterConstant,
	})
	require.NoError(testInstance, constructionError)
	return invoker
}

func TestTerminalInvokerTypesCommandIntoNewSession(testInstance *testing.T) {
	testCases := []struct {
		name                string
		run                 func(invoker *pyshrink.TerminalInvoker) error
		expectedSessionName string
		expectedCommandLine string
	}{
		{
			name: "interactive",
			run: func(invoker *pyshrink.TerminalInvoker) error {
				_, runError := invoker.RunInteractive(context.Background())
				return runError
			},
			expectedSessionName: "PyShrink Interactive",
			expectedCommandLine: `python3 -m pyshrink --path "/work/proj"`,
		},
		{
			name: "full_cleanup",
			run: func(invoker *pyshrink.TerminalInvoker) error {
				_, runError := invoker.RunFullCleanup(context.Background())
				return runError
			},
			expectedSessionName: "PyShrink Full Cleanup",
			expectedCommandLine: `python3 -m pyshrink --path "/work/proj" --full`,
		},
		{
			name: "custom_arguments",
			run: func(invoker *pyshrink.TerminalInvoker) error {
				_, runError := invoker.RunWithArguments(context.Background(), []string{"--readme", "--req"})
				return runError
			},
			expectedSessionName: "PyShrink",
			expectedCommandLine: `python3 -m pyshrink --path "/work/proj" --readme --req`,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			host := &recordingHost{}
			notifier := &recordingNotifier{}
			invoker := newTestTerminalInvoker(
				testInstance,
				host,
				notifier,
				staticRootResolver{root: testInstallationRootConstant, available: true},
				staticWorkspaceResolver{folders: []string{testWorkspacePathConstant, testSecondWorkspacePathConstant}},
			)

			require.NoError(testInstance, testCase.run(invoker))

			require.Len(testInstance, host.options, 1)
			require.Equal(testInstance, testCase.expectedSessionName, host.options[0].Name)
			require.Equal(testInstance, testWorkspacePathConstant, host.options[0].WorkingDirectory)
			require.Equal(testInstance, pyshrink.BuildEnvironment(testInstallationRootConstant), host.options[0].EnvironmentVariables)

			require.Len(testInstance, host.sessions, 1)
			require.Equal(testInstance, 1, host.sessions[0].showCount)
			require.Equal(testInstance, []string{testCase.expectedCommandLine}, host.sessions[0].sentTexts)
			require.Empty(testInstance, notifier.recordedErrors())
		})
	}
}

func TestTerminalInvokerCreatesSessionPerCall(testInstance *testing.T) {
	host := &recordingHost{}
	invoker := newTestTerminalInvoker(
		testInstance,
		host,
		&recordingNotifier{},
		staticRootResolver{root: testInstallationRootConstant, available: true},
		staticWorkspaceResolver{folders: []string{testWorkspacePathConstant}},
	)

	firstSession, firstError := invoker.RunFullCleanup(context.Background())
	require.NoError(testInstance, firstError)
	secondSession, secondError := invoker.RunFullCleanup(context.Background())
	require.NoError(testInstance, secondError)

	require.Len(testInstance, host.sessions, 2)
	require.NotSame(testInstance, firstSession, secondSession)
}

func TestTerminalInvokerPreconditionFailures(testInstance *testing.T) {
	testCases := []struct {
		name              string
		rootResolver      staticRootResolver
		workspaceResolver staticWorkspaceResolver
		host              *recordingHost
		expectedError     error
		expectedMessage   string
	}{
		{
			name:              "missing_installation_root",
			rootResolver:      staticRootResolver{},
			workspaceResolver: staticWorkspaceResolver{folders: []string{testWorkspacePathConstant}},
			host:              &recordingHost{},
			expectedError:     pyshrink.ErrInstallationRootUnavailable,
			expectedMessage:   testEngineNotFoundConstant,
		},
		{
			name:              "missing_workspace",
			rootResolver:      staticRootResolver{root: testInstallationRootConstant, available: true},
			workspaceResolver: staticWorkspaceResolver{},
			host:              &recordingHost{},
			expectedError:     pyshrink.ErrWorkspaceUnavailable,
			expectedMessage:   testWorkspaceMissingConstant,
		},
		{
			name:              "root_checked_before_workspace",
			rootResolver:      staticRootResolver{},
			workspaceResolver: staticWorkspaceResolver{},
			host:              &recordingHost{},
			expectedError:     pyshrink.ErrInstallationRootUnavailable,
			expectedMessage:   testEngineNotFoundConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			notifier := &recordingNotifier{}
			invoker := newTestTerminalInvoker(testInstance, testCase.host, notifier, testCase.rootResolver, testCase.workspaceResolver)

			session, runError := invoker.RunWithArguments(context.Background(), []string{"--readme"})
			require.ErrorIs(testInstance, runError, testCase.expectedError)
			require.Nil(testInstance, session)
			require.Equal(testInstance, []string{testCase.expectedMessage}, notifier.recordedErrors())
			require.Empty(testInstance, testCase.host.options)
		})
	}
}

func TestTerminalInvokerReportsHostFailures(testInstance *testing.T) {
	hostFailure := errors.New(testTerminalFailureReasonConstant)
	testCases := []struct {
		name string
		host *recordingHost
	}{
		{name: "create_failure", host: &recordingHost{createError: hostFailure}},
		{name: "show_failure", host: &recordingHost{showError: hostFailure}},
		{name: "send_failure", host: &recordingHost{sendError: hostFailure}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			notifier := &recordingNotifier{}
			invoker := newTestTerminalInvoker(
				testInstance,
				testCase.host,
				notifier,
				staticRootResolver{root: testInstallationRootConstant, available: true},
				staticWorkspaceResolver{folders: []string{testWorkspacePathConstant}},
			)

			session, runError := invoker.RunInteractive(context.Background())
			require.ErrorIs(testInstance, runError, pyshrink.ErrTerminalUnavailable)
			require.ErrorIs(testInstance, runError, hostFailure)
			require.Nil(testInstance, session)
			require.Len(testInstance, notifier.recordedErrors(), 1)
			require.Contains(testInstance, notifier.recordedErrors()[0], testTerminalFailureReasonConstant)
		})
	}
}
