package ui

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const (
	errorNotificationTemplateConstant   = "Error: %s\n"
	warningNotificationTemplateConstant = "Warning: %s\n"
	notificationLogMessageConstant      = "user notification"
	logFieldNotificationConstant        = "notification"
)

// ConsoleNotifier prints user-facing errors and warnings to a writer and mirrors them to the logger.
type ConsoleNotifier struct {
	writer io.Writer
	logger *zap.Logger
	mutex  sync.Mutex
}

// NewConsoleNotifier constructs a notifier writing to the provided writer.
func NewConsoleNotifier(writer io.Writer, logger *zap.Logger) *ConsoleNotifier {
	if writer == nil {
		writer = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleNotifier{writer: writer, logger: logger}
}

// ShowError prints a blocking error message.
func (notifier *ConsoleNotifier) ShowError(message string) {
	notifier.logger.Debug(notificationLogMessageConstant, zap.String(logFieldNotificationConstant, message))
	notifier.write(errorNotificationTemplateConstant, message)
}

// ShowWarning prints a non-blocking warning message.
func (notifier *ConsoleNotifier) ShowWarning(message string) {
	notifier.logger.Debug(notificationLogMessageConstant, zap.String(logFieldNotificationConstant, message))
	notifier.write(warningNotificationTemplateConstant, message)
}

func (notifier *ConsoleNotifier) write(template string, message string) {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	_, _ = fmt.Fprintf(notifier.writer, template, message)
}
