package pyshrink_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pyshrink-launcher/internal/pyshrink"
)

type dispatcherFixture struct {
	dispatcher *pyshrink.Dispatcher
	spawner    *recordingSpawner
	sink       *recordingSink
	host       *recordingHost
	notifier   *recordingNotifier
	prompter   *scriptedPrompter
}

func newDispatcherFixture(testInstance *testing.T, rootResolver staticRootResolver, prompter *scriptedPrompter) dispatcherFixture {
	testInstance.Helper()
	fixture := dispatcherFixture{
		spawner:  &recordingSpawner{process: newFinishedProcess("", "", 0)},
		sink:     &recordingSink{},
		host:     &recordingHost{},
		notifier: &recordingNotifier{},
		prompter: prompter,
	}

	processInvoker, processError := pyshrink.NewProcessInvoker(pyshrink.ProcessInvokerDependencies{
		Spawner:      fixture.spawner,
		Sink:         fixture.sink,
		RootResolver: rootResolver,
		Notifier:     fixture.notifier,
		Interpreter:  testInterpreterConstant,
	})
	require.NoError(testInstance, processError)

	terminalInvoker, terminalError := pyshrink.NewTerminalInvoker(pyshrink.TerminalInvokerDependencies{
		Host:              fixture.host,
		RootResolver:      rootResolver,
		WorkspaceResolver: staticWorkspaceResolver{folders: []string{testWorkspacePathConstant}},
		Notifier:          fixture.notifier,
		Interpreter:       testInterpreterConstant,
	})
	require.NoError(testInstance, terminalError)

	collector, collectorError := pyshrink.NewArgumentCollector(nil, prompter, fixture.notifier, nil)
	require.NoError(testInstance, collectorError)

	dispatcher, dispatcherError := pyshrink.NewDispatcher(nil, processInvoker, terminalInvoker, collector)
	require.NoError(testInstance, dispatcherError)
	fixture.dispatcher = dispatcher

	return fixture
}

func TestDispatcherListsActionsInOrder(testInstance *testing.T) {
	fixture := newDispatcherFixture(testInstance, staticRootResolver{}, &scriptedPrompter{})

	require.Equal(testInstance, []pyshrink.ActionName{
		pyshrink.ActionHelp,
		pyshrink.ActionInteractiveRun,
		pyshrink.ActionRunWithCustomArguments,
		pyshrink.ActionFullCleanup,
	}, fixture.dispatcher.Actions())
}

func TestDispatcherRoutesActions(testInstance *testing.T) {
	availableRoot := staticRootResolver{root: testInstallationRootConstant, available: true}

	testInstance.Run("help_runs_background_process", func(testInstance *testing.T) {
		fixture := newDispatcherFixture(testInstance, availableRoot, &scriptedPrompter{})

		outcome, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionHelp)
		require.NoError(testInstance, dispatchError)
		require.Equal(testInstance, pyshrink.ActionHelp, outcome.Action)
		require.NotNil(testInstance, outcome.Invocation)
		require.Nil(testInstance, outcome.Session)

		_, waitError := outcome.Invocation.Wait()
		require.NoError(testInstance, waitError)
		require.Equal(testInstance, []string{"-m", "pyshrink", "--help"}, fixture.spawner.recordedRequests()[0].Arguments)
		require.Empty(testInstance, fixture.host.options)
	})

	testInstance.Run("interactive_opens_terminal", func(testInstance *testing.T) {
		fixture := newDispatcherFixture(testInstance, availableRoot, &scriptedPrompter{})

		outcome, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionInteractiveRun)
		require.NoError(testInstance, dispatchError)
		require.NotNil(testInstance, outcome.Session)
		require.Equal(testInstance, "PyShrink Interactive", outcome.Session.Name())
		require.Empty(testInstance, fixture.spawner.recordedRequests())
	})

	testInstance.Run("custom_arguments_prompt_then_open_terminal", func(testInstance *testing.T) {
		fixture := newDispatcherFixture(testInstance, availableRoot, &scriptedPrompter{text: "--readme  --req", submitted: true})

		outcome, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionRunWithCustomArguments)
		require.NoError(testInstance, dispatchError)
		require.NotNil(testInstance, outcome.Session)
		require.Equal(testInstance, []string{`python3 -m pyshrink --path "/work/proj" --readme --req`}, fixture.host.sessions[0].sentTexts)
	})

	testInstance.Run("custom_arguments_cancelled", func(testInstance *testing.T) {
		fixture := newDispatcherFixture(testInstance, availableRoot, &scriptedPrompter{})

		outcome, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionRunWithCustomArguments)
		require.ErrorIs(testInstance, dispatchError, pyshrink.ErrNoArgumentsProvided)
		require.Nil(testInstance, outcome.Session)
		require.Empty(testInstance, fixture.host.options)
		require.Len(testInstance, fixture.notifier.recordedWarnings(), 1)
	})

	testInstance.Run("full_cleanup_opens_terminal", func(testInstance *testing.T) {
		fixture := newDispatcherFixture(testInstance, availableRoot, &scriptedPrompter{})

		outcome, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionFullCleanup)
		require.NoError(testInstance, dispatchError)
		require.Equal(testInstance, pyshrink.ActionFullCleanup, outcome.Action)
		require.NotNil(testInstance, outcome.Session)
		require.Equal(testInstance, "PyShrink Full Cleanup", outcome.Session.Name())
		require.Equal(testInstance, []string{`python3 -m pyshrink --path "/work/proj" --full`}, fixture.host.sessions[0].sentTexts)
	})
}

func TestDispatcherWithoutInstallationRootShowsSingleError(testInstance *testing.T) {
	actions := []pyshrink.ActionName{
		pyshrink.ActionHelp,
		pyshrink.ActionInteractiveRun,
		pyshrink.ActionRunWithCustomArguments,
		pyshrink.ActionFullCleanup,
	}

	for _, action := range actions {
		testInstance.Run(string(action), func(testInstance *testing.T) {
			fixture := newDispatcherFixture(testInstance, staticRootResolver{}, &scriptedPrompter{text: "--readme", submitted: true})

			_, dispatchError := fixture.dispatcher.Dispatch(context.Background(), action)
			require.ErrorIs(testInstance, dispatchError, pyshrink.ErrInstallationRootUnavailable)
			require.Equal(testInstance, []string{testEngineNotFoundConstant}, fixture.notifier.recordedErrors())
			require.Empty(testInstance, fixture.spawner.recordedRequests())
			require.Empty(testInstance, fixture.host.options)
		})
	}
}

func TestDispatcherRejectsUnknownAction(testInstance *testing.T) {
	fixture := newDispatcherFixture(testInstance, staticRootResolver{}, &scriptedPrompter{})

	_, dispatchError := fixture.dispatcher.Dispatch(context.Background(), pyshrink.ActionName("bogus"))
	require.ErrorIs(testInstance, dispatchError, pyshrink.ErrUnknownAction)
	require.Empty(testInstance, fixture.notifier.recordedErrors())
}
