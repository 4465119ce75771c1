package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/pyshrink"
	"github.com/temirov/pyshrink-launcher/internal/ui"
	flagutils "github.com/temirov/pyshrink-launcher/internal/utils/flags"
)

const (
	toolHelpCommandNameConstant             = "tool-help"
	toolHelpShortDescriptionConstant        = "Show the PyShrink help text in the log pane"
	interactiveShortDescriptionConstant     = "Run PyShrink interactively in a new terminal session"
	customArgumentsShortDescriptionConstant = "Prompt for PyShrink flags and run them in a new terminal session"
	fullCleanupShortDescriptionConstant     = "Run a full PyShrink cleanup in a new terminal session"
	actionsCommandNameConstant              = "actions"
	actionsShortDescriptionConstant         = "List the registered action identifiers"
	argumentsFlagNameConstant               = "arguments"
	argumentsFlagUsageConstant              = "Flags passed to PyShrink instead of prompting for them."
	tokenizerFlagNameConstant               = "tokenizer"
	tokenizerFlagUsageConstant              = "How custom argument text is split into flags."
	actionFinishedMessageConstant           = "action finished"
	logFieldActionConstant                  = "action"
	logFieldExitCodeConstant                = "exit_code"
	actionAbortedTemplateConstant           = "%w: %w"
	actionLineTemplateConstant              = "%s\n"
)

// ErrActionAborted marks action failures that were already reported to the user.
var ErrActionAborted = errors.New("action aborted")

var errDispatcherProviderMissing = errors.New("dispatcher provider not configured")

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// DispatcherProvider wires a dispatcher for one command run. Nil collaborators select the configured defaults.
type DispatcherProvider func(command *cobra.Command, prompter pyshrink.Prompter, tokenizer pyshrink.Tokenizer) (*pyshrink.Dispatcher, error)

// FlagBinder lets a command flag override a configuration key.
type FlagBinder func(configurationKey string, flag *pflag.Flag)

type actionCommandDescriptor struct {
	use              string
	shortDescription string
}

var actionCommandDescriptors = map[pyshrink.ActionName]actionCommandDescriptor{
	pyshrink.ActionHelp:                   {use: toolHelpCommandNameConstant, shortDescription: toolHelpShortDescriptionConstant},
	pyshrink.ActionInteractiveRun:         {use: string(pyshrink.ActionInteractiveRun), shortDescription: interactiveShortDescriptionConstant},
	pyshrink.ActionRunWithCustomArguments: {use: string(pyshrink.ActionRunWithCustomArguments), shortDescription: customArgumentsShortDescriptionConstant},
	pyshrink.ActionFullCleanup:            {use: string(pyshrink.ActionFullCleanup), shortDescription: fullCleanupShortDescriptionConstant},
}

// ActionCommandBuilder assembles the cobra command that dispatches one action.
type ActionCommandBuilder struct {
	LoggerProvider     LoggerProvider
	DispatcherProvider DispatcherProvider
	Action             pyshrink.ActionName
	BindFlag           FlagBinder
}

// Build constructs the cobra command for the configured action.
func (builder *ActionCommandBuilder) Build() (*cobra.Command, error) {
	if builder.DispatcherProvider == nil {
		return nil, errDispatcherProviderMissing
	}
	descriptor, known := actionCommandDescriptors[builder.Action]
	if !known {
		return nil, fmt.Errorf(actionAbortedTemplateConstant, pyshrink.ErrUnknownAction, errors.New(string(builder.Action)))
	}

	command := &cobra.Command{
		Use:   descriptor.use,
		Short: descriptor.shortDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	if builder.Action == pyshrink.ActionRunWithCustomArguments {
		command.Flags().String(argumentsFlagNameConstant, "", argumentsFlagUsageConstant)
		command.Flags().Var(
			flagutils.NewChoiceValue(pyshrink.TokenizerWhitespace, pyshrink.TokenizerNames()),
			tokenizerFlagNameConstant,
			flagutils.FormatChoiceUsage(pyshrink.TokenizerWhitespace, pyshrink.TokenizerNames(), tokenizerFlagUsageConstant),
		)
		if builder.BindFlag != nil {
			builder.BindFlag(argumentsTokenizerConfigKeyConstant, command.Flags().Lookup(tokenizerFlagNameConstant))
		}
	}

	return command, nil
}

func (builder *ActionCommandBuilder) run(command *cobra.Command, arguments []string) error {
	var prompter pyshrink.Prompter
	if command.Flags().Changed(argumentsFlagNameConstant) {
		presetArguments, _ := command.Flags().GetString(argumentsFlagNameConstant)
		prompter = ui.StaticPrompter{Response: presetArguments}
	}

	dispatcher, dispatcherError := builder.DispatcherProvider(command, prompter, nil)
	if dispatcherError != nil {
		return dispatcherError
	}

	outcome, dispatchError := dispatcher.Dispatch(command.Context(), builder.Action)
	if dispatchError != nil {
		return fmt.Errorf(actionAbortedTemplateConstant, ErrActionAborted, dispatchError)
	}

	logger := builder.resolveLogger()
	switch {
	case outcome.Invocation != nil:
		exitCode, waitError := outcome.Invocation.Wait()
		logger.Debug(actionFinishedMessageConstant, zap.String(logFieldActionConstant, string(builder.Action)), zap.Int(logFieldExitCodeConstant, exitCode))
		if waitError != nil {
			return fmt.Errorf(actionAbortedTemplateConstant, ErrActionAborted, waitError)
		}
	case outcome.Session != nil:
		if waitError := outcome.Session.Wait(); waitError != nil {
			return waitError
		}
		logger.Debug(actionFinishedMessageConstant, zap.String(logFieldActionConstant, string(builder.Action)))
	}

	return nil
}

func (builder *ActionCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// ActionsCommandBuilder assembles the command listing the registered actions.
type ActionsCommandBuilder struct {
	DispatcherProvider DispatcherProvider
}

// Build constructs the cobra command for listing actions.
func (builder *ActionsCommandBuilder) Build() (*cobra.Command, error) {
	if builder.DispatcherProvider == nil {
		return nil, errDispatcherProviderMissing
	}

	return &cobra.Command{
		Use:   actionsCommandNameConstant,
		Short: actionsShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			dispatcher, dispatcherError := builder.DispatcherProvider(command, nil, nil)
			if dispatcherError != nil {
				return dispatcherError
			}
			for _, action := range dispatcher.Actions() {
				if _, writeError := fmt.Fprintf(command.OutOrStdout(), actionLineTemplateConstant, action); writeError != nil {
					return writeError
				}
			}
			return nil
		},
	}, nil
}
