package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/execshell"
	"github.com/temirov/pyshrink-launcher/internal/logsink"
	"github.com/temirov/pyshrink-launcher/internal/pyshrink"
	"github.com/temirov/pyshrink-launcher/internal/terminal"
	"github.com/temirov/pyshrink-launcher/internal/ui"
	"github.com/temirov/pyshrink-launcher/internal/utils"
	flagutils "github.com/temirov/pyshrink-launcher/internal/utils/flags"
	pathutils "github.com/temirov/pyshrink-launcher/internal/utils/path"
)

const (
	applicationNameConstant                 = "pyshrink-launcher"
	applicationShortDescriptionConstant     = "Launch the PyShrink cleanup tool"
	applicationLongDescriptionConstant      = "pyshrink-launcher runs the PyShrink cleanup tool against a workspace, either as a background process streaming into a log pane or inside an interactive terminal session."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	workspaceFlagNameConstant               = "workspace"
	workspaceFlagUsageConstant              = "Workspace folder to clean (repeatable; the first one is used)."
	installationRootFlagNameConstant        = "installation-root"
	installationRootFlagUsageConstant       = "Directory containing the pyshrink module."
	interpreterFlagNameConstant             = "interpreter"
	interpreterFlagUsageConstant            = "Python interpreter executable overriding the platform default."
	environmentPrefixConstant               = "PYSHRINKLAUNCHER"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	userConfigurationDirectoryNameConstant  = applicationNameConstant
	defaultConfigurationSearchPathConstant  = "."
	logSinkNameConstant                     = "PyShrink"
	configurationInitializedMessageConstant = "configuration initialized"
	logSinkDisposeFailureMessageConstant    = "log sink dispose failed"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	logSinkOpenErrorTemplateConstant        = "unable to open log output: %w"
	unknownVersionConstant                  = "dev"
)

// applicationVersion is replaced at link time with -ldflags "-X".
var applicationVersion = ""

// Application wires the Cobra root command, configuration loader, structured logger, and shared log sink.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logSink               *logsink.Sink
	homeExpander          *pathutils.HomeExpander

	processSpawner   execshell.ProcessSpawner
	terminalHost     pyshrink.TerminalHost
	executablePath   func() (string, error)
	workingDirectory func() (string, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		logger:              zap.NewNop(),
		homeExpander:        pathutils.NewHomeExpander().WithEnvironmentLookup(os.LookupEnv),
		executablePath:      os.Executable,
		workingDirectory:    os.Getwd,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.Var(
		flagutils.NewChoiceValue(string(utils.LogLevelWarn), utils.LogLevelNames()),
		logLevelFlagNameConstant,
		flagutils.FormatChoiceUsage(string(utils.LogLevelWarn), utils.LogLevelNames(), logLevelFlagUsageConstant),
	)
	persistentFlags.Var(
		flagutils.NewChoiceValue(string(utils.LogFormatConsole), utils.LogFormatNames()),
		logFormatFlagNameConstant,
		flagutils.FormatChoiceUsage(string(utils.LogFormatConsole), utils.LogFormatNames(), logFormatFlagUsageConstant),
	)
	persistentFlags.StringSlice(workspaceFlagNameConstant, nil, workspaceFlagUsageConstant)
	persistentFlags.String(installationRootFlagNameConstant, "", installationRootFlagUsageConstant)
	persistentFlags.String(interpreterFlagNameConstant, "", interpreterFlagUsageConstant)

	configurationLoader.BindFlag(commonLogLevelConfigKeyConstant, persistentFlags.Lookup(logLevelFlagNameConstant))
	configurationLoader.BindFlag(commonLogFormatConfigKeyConstant, persistentFlags.Lookup(logFormatFlagNameConstant))
	configurationLoader.BindFlag(workspaceFoldersConfigKeyConstant, persistentFlags.Lookup(workspaceFlagNameConstant))
	configurationLoader.BindFlag(engineInstallationRootConfigKeyConstant, persistentFlags.Lookup(installationRootFlagNameConstant))
	configurationLoader.BindFlag(engineInterpreterConfigKeyConstant, persistentFlags.Lookup(interpreterFlagNameConstant))

	dispatcherProvider := application.newDispatcher
	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	actionBuilders := []ActionCommandBuilder{
		{LoggerProvider: loggerProvider, DispatcherProvider: dispatcherProvider, Action: pyshrink.ActionHelp},
		{LoggerProvider: loggerProvider, DispatcherProvider: dispatcherProvider, Action: pyshrink.ActionInteractiveRun},
		{
			LoggerProvider:     loggerProvider,
			DispatcherProvider: dispatcherProvider,
			Action:             pyshrink.ActionRunWithCustomArguments,
			BindFlag:           configurationLoader.BindFlag,
		},
		{LoggerProvider: loggerProvider, DispatcherProvider: dispatcherProvider, Action: pyshrink.ActionFullCleanup},
	}
	for builderIndex := range actionBuilders {
		actionCommand, buildError := actionBuilders[builderIndex].Build()
		if buildError == nil {
			cobraCommand.AddCommand(actionCommand)
		}
	}

	actionsBuilder := ActionsCommandBuilder{DispatcherProvider: dispatcherProvider}
	if actionsCommand, actionsBuildError := actionsBuilder.Build(); actionsBuildError == nil {
		cobraCommand.AddCommand(actionsCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the command hierarchy, then disposes the log sink and flushes the logger exactly once.
func (application *Application) Execute() error {
	return application.ExecuteContext(context.Background())
}

// ExecuteContext runs the command hierarchy with the provided context.
func (application *Application) ExecuteContext(executionContext context.Context) error {
	executionError := application.rootCommand.ExecuteContext(executionContext)
	application.deactivate()
	if syncError := utils.SyncLogger(application.logger); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes it until completion or interrupt.
func Execute() error {
	interruptContext, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewApplication().ExecuteContext(interruptContext)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, DefaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.loggerFactory == nil {
		application.loggerFactory = utils.NewLoggerFactoryWithOutput(command.ErrOrStderr())
	}
	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return application.activate(command.OutOrStdout())
}

// activate creates the shared log sink once per process.
func (application *Application) activate(standardOutput io.Writer) error {
	if application.logSink != nil {
		return nil
	}
	sink, openError := logsink.Open(logSinkNameConstant, application.homeExpander.Expand(application.configuration.Output.Path), standardOutput)
	if openError != nil {
		return fmt.Errorf(logSinkOpenErrorTemplateConstant, openError)
	}
	application.logSink = sink
	return nil
}

func (application *Application) deactivate() {
	if application.logSink == nil {
		return
	}
	if disposeError := application.logSink.Dispose(); disposeError != nil && !errors.Is(disposeError, logsink.ErrSinkDisposed) {
		application.logger.Warn(logSinkDisposeFailureMessageConstant, zap.Error(disposeError))
	}
}

// newDispatcher wires the invokers for one command run against the shared sink.
func (application *Application) newDispatcher(command *cobra.Command, prompter pyshrink.Prompter, tokenizer pyshrink.Tokenizer) (*pyshrink.Dispatcher, error) {
	notifier := ui.NewConsoleNotifier(command.ErrOrStderr(), application.logger)
	rootResolver := pyshrink.InstallationRootLocator{
		ConfiguredRoot: func() string { return application.configuration.Engine.InstallationRoot },
		ExecutablePath: application.executablePath,
		HomeExpander:   application.homeExpander,
	}
	workspaceResolver := pyshrink.WorkspaceLocator{
		ConfiguredFolders:   func() []string { return application.configuration.Workspace.Folders },
		UseWorkingDirectory: func() bool { return application.configuration.Workspace.UseWorkingDirectory },
		WorkingDirectory:    application.workingDirectory,
		HomeExpander:        application.homeExpander,
	}

	processSpawner := application.processSpawner
	if processSpawner == nil {
		processSpawner = execshell.NewOSProcessSpawner()
	}
	terminalHost := application.terminalHost
	if terminalHost == nil {
		terminalHost = terminal.NewPseudoTerminalHost(terminal.HostOptions{
			Shell:  application.configuration.Terminal.Shell,
			Input:  command.InOrStdin(),
			Output: command.OutOrStdout(),
			Logger: application.logger,
		})
	}

	processInvoker, processError := pyshrink.NewProcessInvoker(pyshrink.ProcessInvokerDependencies{
		Logger:       application.logger,
		Spawner:      processSpawner,
		Sink:         application.logSink,
		RootResolver: rootResolver,
		Notifier:     notifier,
		Observer:     ui.NewConsoleCommandEventLogger(application.logger),
		Interpreter:  application.configuration.Engine.Interpreter,
	})
	if processError != nil {
		return nil, processError
	}

	terminalInvoker, terminalError := pyshrink.NewTerminalInvoker(pyshrink.TerminalInvokerDependencies{
		Logger:            application.logger,
		Host:              terminalHost,
		RootResolver:      rootResolver,
		WorkspaceResolver: workspaceResolver,
		Notifier:          notifier,
		Interpreter:       application.configuration.Engine.Interpreter,
	})
	if terminalError != nil {
		return nil, terminalError
	}

	if prompter == nil {
		prompter = ui.NewLinePrompter(command.InOrStdin(), command.ErrOrStderr())
	}
	if tokenizer == nil {
		configuredTokenizer, tokenizerError := pyshrink.NewTokenizer(application.configuration.Arguments.Tokenizer)
		if tokenizerError != nil {
			return nil, tokenizerError
		}
		tokenizer = configuredTokenizer
	}
	collector, collectorError := pyshrink.NewArgumentCollector(application.logger, prompter, notifier, tokenizer)
	if collectorError != nil {
		return nil, collectorError
	}

	return pyshrink.NewDispatcher(application.logger, processInvoker, terminalInvoker, collector)
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func resolveVersion() string {
	if len(applicationVersion) > 0 {
		return applicationVersion
	}
	if buildInformation, available := debug.ReadBuildInfo(); available && len(buildInformation.Main.Version) > 0 {
		return buildInformation.Main.Version
	}
	return unknownVersionConstant
}
