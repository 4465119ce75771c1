package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/execshell"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s"
	commandFailedExitCodeMessageTemplateConstant   = "%s exited with code %d"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant         = " (in %s)"
	unknownFailureMessageConstant                  = "unknown error"
	emptyStringConstant                            = ""
)

// CommandEventFormatter builds human-readable messages for process lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a spawned process.
func (formatter CommandEventFormatter) BuildStartedMessage(request execshell.ProcessRequest) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, formatter.formatCommandLabel(request))
}

// BuildSuccessMessage formats the message describing a process that exited with code zero.
func (formatter CommandEventFormatter) BuildSuccessMessage(request execshell.ProcessRequest) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, formatter.formatCommandLabel(request))
}

// BuildFailureMessage formats the message describing a process that exited with a non-zero code.
func (formatter CommandEventFormatter) BuildFailureMessage(request execshell.ProcessRequest, exitCode int) string {
	return fmt.Sprintf(commandFailedExitCodeMessageTemplateConstant, formatter.formatCommandLabel(request), exitCode)
}

// BuildExecutionFailureMessage formats the message describing a process that could not be run to completion.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(request execshell.ProcessRequest, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, formatter.formatCommandLabel(request), failureMessage)
}

func (formatter CommandEventFormatter) formatCommandLabel(request execshell.ProcessRequest) string {
	return request.Label() + formatter.formatWorkingDirectorySuffix(request)
}

func (formatter CommandEventFormatter) formatWorkingDirectorySuffix(request execshell.ProcessRequest) string {
	trimmedWorkingDirectory := strings.TrimSpace(request.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

// ConsoleCommandEventLogger renders process lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging process start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(request execshell.ProcessRequest) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(request))
}

// CommandCompleted implements execshell.CommandEventObserver by logging process exit notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(request execshell.ProcessRequest, exitCode int) {
	if eventLogger == nil {
		return
	}
	if exitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(request))
		return
	}
	// The log pane's completion line is the user-facing record of the exit code.
	eventLogger.logger.Debug(eventLogger.formatter.BuildFailureMessage(request, exitCode))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging unexpected execution failures.
// The invoker already notified the user, so the entry stays at debug level.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(request execshell.ProcessRequest, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildExecutionFailureMessage(request, failure))
}
