package pyshrink

import (
	"runtime"
	"strings"
)

const (
	windowsPlatformConstant         = "windows"
	windowsInterpreterConstant      = "python"
	defaultInterpreterConstant      = "python3"
	moduleInvocationFlagConstant    = "-m"
	toolModuleNameConstant          = "pyshrink"
	pathFlagConstant                = "--path"
	helpFlagConstant                = "--help"
	fullCleanupFlagConstant         = "--full"
	commandLineSeparatorConstant    = " "
	logHeaderPrefixConstant         = "> "
	doubleQuoteConstant             = `"`
	doubleQuoteEscapeSetConstant    = "\\\"$`"
	doubleQuoteEscapePrefixConstant = `\`
)

// InterpreterForPlatform returns the interpreter executable name for the operating system.
func InterpreterForPlatform(goos string) string {
	if goos == windowsPlatformConstant {
		return windowsInterpreterConstant
	}
	return defaultInterpreterConstant
}

// ResolveInterpreter returns the configured override or the platform default.
func ResolveInterpreter(configuredInterpreter string) string {
	trimmedInterpreter := strings.TrimSpace(configuredInterpreter)
	if len(trimmedInterpreter) > 0 {
		return trimmedInterpreter
	}
	return InterpreterForPlatform(runtime.GOOS)
}

// ModuleInvocationArguments prefixes the flags with the module-invocation form of the tool.
func ModuleInvocationArguments(flags []string) []string {
	arguments := make([]string, 0, len(flags)+2)
	arguments = append(arguments, moduleInvocationFlagConstant, toolModuleNameConstant)
	return append(arguments, flags...)
}
