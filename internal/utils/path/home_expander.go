// Package pathutils normalizes user-supplied filesystem paths from configuration and flags.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant = "~"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentLookup resolves a single environment variable.
type EnvironmentLookup func(name string) (string, bool)

// HomeExpander resolves the home shortcut and environment references in configured paths,
// such as "~/tools/pyshrink" or "$PYSHRINK_HOME/engine".
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     EnvironmentLookup
	homeDirectory         string
	homeResolved          bool
	homeGuard             sync.Once
}

// NewHomeExpander constructs an expander backed by the process environment.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs an expander with a custom home lookup and no environment expansion.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// WithEnvironmentLookup enables $NAME and ${NAME} expansion through the lookup.
func (expander *HomeExpander) WithEnvironmentLookup(lookup EnvironmentLookup) *HomeExpander {
	expander.environmentLookup = lookup
	return expander
}

// Expand trims the path, substitutes environment references, and resolves a leading home shortcut.
// Unknown variables and an unresolvable home directory leave the affected text unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if expander == nil || len(trimmedPath) == 0 {
		return trimmedPath
	}

	expandedPath := expander.expandEnvironment(trimmedPath)
	if !strings.HasPrefix(expandedPath, homeShortcutConstant) {
		return expandedPath
	}

	homeDirectory, available := expander.resolveHomeDirectory()
	if !available {
		return expandedPath
	}

	remainder := strings.TrimPrefix(expandedPath, homeShortcutConstant)
	switch {
	case len(remainder) == 0:
		return homeDirectory
	case remainder[0] == '/' || remainder[0] == os.PathSeparator:
		return filepath.Join(homeDirectory, remainder[1:])
	default:
		// ~user forms are left to the shell.
		return expandedPath
	}
}

// ExpandAll expands every path and drops the ones that are blank.
func (expander *HomeExpander) ExpandAll(candidatePaths []string) []string {
	var expandedPaths []string
	for _, candidatePath := range candidatePaths {
		expandedPath := expander.Expand(candidatePath)
		if len(expandedPath) == 0 {
			continue
		}
		expandedPaths = append(expandedPaths, expandedPath)
	}
	return expandedPaths
}

func (expander *HomeExpander) expandEnvironment(candidatePath string) string {
	if expander.environmentLookup == nil || !strings.Contains(candidatePath, "$") {
		return candidatePath
	}
	return os.Expand(candidatePath, func(variableName string) string {
		if value, found := expander.environmentLookup(variableName); found {
			return value
		}
		return "${" + variableName + "}"
	})
}

func (expander *HomeExpander) resolveHomeDirectory() (string, bool) {
	expander.homeGuard.Do(func() {
		homeDirectory, lookupError := expander.homeDirectoryProvider()
		if lookupError != nil || len(homeDirectory) == 0 {
			return
		}
		expander.homeDirectory = homeDirectory
		expander.homeResolved = true
	})
	return expander.homeDirectory, expander.homeResolved
}
