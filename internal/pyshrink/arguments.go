package pyshrink

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"github.com/temirov/pyshrink-launcher/internal/ui"
)

const (
	argumentPromptConstant            = "Enter PyShrink flags (e.g. --readme --req)"
	argumentPlaceholderConstant       = "--readme --req"
	unknownTokenizerTemplateConstant  = "%w: %s"
	argumentsCollectedMessageConstant = "collected custom arguments"
	argumentsAbortedMessageConstant   = "custom arguments not provided"
	logFieldArgumentsConstant         = "arguments"
	logFieldTokenizerConstant         = "tokenizer"
)

// Tokenizer names accepted by NewTokenizer.
const (
	TokenizerWhitespace = "whitespace"
	TokenizerShell      = "shell"
)

// TokenizerNames lists the supported tokenizer names, default first.
func TokenizerNames() []string {
	return []string{TokenizerWhitespace, TokenizerShell}
}

// Tokenizer splits free-form flag text into discrete arguments.
type Tokenizer interface {
	Name() string
	Tokenize(text string) ([]string, error)
}

// WhitespaceTokenizer splits on runs of whitespace and never fails.
type WhitespaceTokenizer struct{}

// Name identifies the tokenizer.
func (WhitespaceTokenizer) Name() string {
	return TokenizerWhitespace
}

// Tokenize returns the non-empty whitespace-separated fields.
func (WhitespaceTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// ShellTokenizer splits using POSIX-like word rules so quoted values stay together.
type ShellTokenizer struct{}

// Name identifies the tokenizer.
func (ShellTokenizer) Name() string {
	return TokenizerShell
}

// Tokenize parses the text without expanding environment variables or backquotes.
func (ShellTokenizer) Tokenize(text string) ([]string, error) {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false

	tokens, parseError := parser.Parse(text)
	if parseError != nil {
		return nil, parseError
	}

	nonEmptyTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) == 0 {
			continue
		}
		nonEmptyTokens = append(nonEmptyTokens, token)
	}
	return nonEmptyTokens, nil
}

// NewTokenizer returns the tokenizer registered under name. Blank names select the whitespace tokenizer.
func NewTokenizer(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TokenizerWhitespace:
		return WhitespaceTokenizer{}, nil
	case TokenizerShell:
		return ShellTokenizer{}, nil
	default:
		return nil, fmt.Errorf(unknownTokenizerTemplateConstant, ErrUnknownTokenizer, name)
	}
}

// ArgumentCollector obtains free-form flags from the user for the custom-arguments action.
type ArgumentCollector struct {
	prompter  Prompter
	notifier  Notifier
	tokenizer Tokenizer
	logger    *zap.Logger
}

// NewArgumentCollector validates dependencies and constructs a collector.
// A nil tokenizer selects whitespace splitting.
func NewArgumentCollector(logger *zap.Logger, prompter Prompter, notifier Notifier, tokenizer Tokenizer) (*ArgumentCollector, error) {
	if prompter == nil {
		return nil, errPrompterNotConfigured
	}
	if notifier == nil {
		return nil, errNotifierNotConfigured
	}
	if tokenizer == nil {
		tokenizer = WhitespaceTokenizer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArgumentCollector{prompter: prompter, notifier: notifier, tokenizer: tokenizer, logger: logger}, nil
}

// Collect prompts once and returns the tokens. Cancelled, empty, or unparsable input
// shows exactly one warning and returns an error.
func (collector *ArgumentCollector) Collect(executionContext context.Context) ([]string, error) {
	promptRequest := ui.PromptRequest{Prompt: argumentPromptConstant, Placeholder: argumentPlaceholderConstant}

	submittedText, submitted, promptError := collector.prompter.Prompt(executionContext, promptRequest)
	if promptError != nil {
		collector.logger.Debug(argumentsAbortedMessageConstant, zap.Error(promptError))
		submitted = false
	}

	if !submitted || len(strings.TrimSpace(submittedText)) == 0 {
		collector.notifier.ShowWarning(noArgumentsMessageConstant)
		collector.logger.Debug(argumentsAbortedMessageConstant)
		return nil, ErrNoArgumentsProvided
	}

	tokens, tokenizeError := collector.tokenizer.Tokenize(submittedText)
	if tokenizeError != nil {
		collector.notifier.ShowWarning(fmt.Sprintf(argumentParseWarningTemplateConstant, tokenizeError))
		return nil, fmt.Errorf(wrappedFailureTemplateConstant, ErrInvalidArguments, tokenizeError)
	}

	if len(tokens) == 0 {
		collector.notifier.ShowWarning(noArgumentsMessageConstant)
		return nil, ErrNoArgumentsProvided
	}

	collector.logger.Debug(
		argumentsCollectedMessageConstant,
		zap.Strings(logFieldArgumentsConstant, tokens),
		zap.String(logFieldTokenizerConstant, collector.tokenizer.Name()),
	)

	return tokens, nil
}
