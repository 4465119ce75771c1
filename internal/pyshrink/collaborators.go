package pyshrink

import (
	"context"

	"github.com/temirov/pyshrink-launcher/internal/terminal"
	"github.com/temirov/pyshrink-launcher/internal/ui"
)

// Notifier surfaces user-visible messages. Errors are blocking, warnings are not.
type Notifier interface {
	ShowError(message string)
	ShowWarning(message string)
}

// LineSink is the shared append-only output pane.
type LineSink interface {
	AppendLine(text string) error
	Show()
}

// TerminalHost creates interactive terminal sessions.
type TerminalHost interface {
	CreateSession(executionContext context.Context, options terminal.SessionOptions) (terminal.Session, error)
}

// Prompter asks the user for a single line of text. The boolean is false when the prompt was cancelled.
type Prompter interface {
	Prompt(executionContext context.Context, request ui.PromptRequest) (string, bool, error)
}
