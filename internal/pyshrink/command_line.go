package pyshrink

import (
	"strings"

	"github.com/alessio/shellescape"
)

// BuildTerminalCommandLine renders the text typed into an interactive shell:
//
//	<interpreter> -m pyshrink --path "<workspace>" [flags...]
//
// The workspace path is always double quoted; every other segment is quoted
// only when it contains characters the shell would interpret.
func BuildTerminalCommandLine(interpreter string, workspacePath string, flags []string) string {
	segments := make([]string, 0, len(flags)+5)
	segments = append(segments, shellescape.Quote(interpreter), moduleInvocationFlagConstant, toolModuleNameConstant, pathFlagConstant, doubleQuote(workspacePath))
	for _, flag := range flags {
		segments = append(segments, shellescape.Quote(flag))
	}
	return strings.Join(segments, commandLineSeparatorConstant)
}

// doubleQuote wraps the value in double quotes, escaping the characters that stay special inside them.
func doubleQuote(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + 2)
	builder.WriteString(doubleQuoteConstant)
	for _, character := range value {
		if strings.ContainsRune(doubleQuoteEscapeSetConstant, character) {
			builder.WriteString(doubleQuoteEscapePrefixConstant)
		}
		builder.WriteRune(character)
	}
	builder.WriteString(doubleQuoteConstant)
	return builder.String()
}

func buildLogHeader(flags []string) string {
	headerParts := append([]string{toolModuleNameConstant}, flags...)
	return logHeaderPrefixConstant + strings.Join(headerParts, commandLineSeparatorConstant)
}
