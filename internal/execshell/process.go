package execshell

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	commandLabelSeparatorConstant          = " "
)

// ProcessRequest describes a single external tool invocation.
type ProcessRequest struct {
	Executable           string
	Arguments            []string
	EnvironmentVariables map[string]string
	WorkingDirectory     string
}

// Label renders the executable and its arguments for diagnostics.
func (request ProcessRequest) Label() string {
	labelParts := append([]string{request.Executable}, request.Arguments...)
	return strings.Join(labelParts, commandLabelSeparatorConstant)
}

// RunningProcess exposes the output streams and completion of a spawned process.
// Both streams must be drained before Wait is called.
type RunningProcess interface {
	StandardOutput() io.Reader
	StandardError() io.Reader
	Wait() (int, error)
}

// ProcessSpawner starts external processes.
type ProcessSpawner interface {
	Spawn(executionContext context.Context, request ProcessRequest) (RunningProcess, error)
}

// MergeEnvironment appends the overrides to the base environment in a stable order.
// Later assignments win when the environment is consumed by os/exec.
func MergeEnvironment(baseEnvironment []string, overrides map[string]string) []string {
	mergedEnvironment := append([]string{}, baseEnvironment...)
	if len(overrides) == 0 {
		return mergedEnvironment
	}

	overrideKeys := make([]string, 0, len(overrides))
	for environmentKey := range overrides {
		overrideKeys = append(overrideKeys, environmentKey)
	}
	sort.Strings(overrideKeys)

	for _, environmentKey := range overrideKeys {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, overrides[environmentKey]))
	}
	return mergedEnvironment
}
