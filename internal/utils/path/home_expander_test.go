package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/pyshrink-launcher/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/tester"

func newTestExpander() *pathutils.HomeExpander {
	environment := map[string]string{"PYSHRINK_HOME": "/opt/pyshrink", "TOOLS": "~/tools"}
	return pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	}).WithEnvironmentLookup(func(name string) (string, bool) {
		value, found := environment[name]
		return value, found
	})
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "empty", candidatePath: "", expectedPath: ""},
		{name: "blank", candidatePath: "   ", expectedPath: ""},
		{name: "absolute", candidatePath: " /opt/pyshrink ", expectedPath: "/opt/pyshrink"},
		{name: "tilde_only", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", candidatePath: "~/tools/pyshrink", expectedPath: filepath.Join(testHomeDirectoryConstant, "tools/pyshrink")},
		{name: "other_user_untouched", candidatePath: "~other/tools", expectedPath: "~other/tools"},
		{name: "environment_reference", candidatePath: "$PYSHRINK_HOME/engine", expectedPath: "/opt/pyshrink/engine"},
		{name: "braced_environment_reference", candidatePath: "${PYSHRINK_HOME}/engine", expectedPath: "/opt/pyshrink/engine"},
		{name: "environment_then_tilde", candidatePath: "$TOOLS/pyshrink", expectedPath: filepath.Join(testHomeDirectoryConstant, "tools/pyshrink")},
		{name: "unknown_variable_kept", candidatePath: "$MISSING/engine", expectedPath: "${MISSING}/engine"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, newTestExpander().Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderWithoutEnvironmentLookupKeepsReferences(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
	require.Equal(testInstance, "$PYSHRINK_HOME/engine", expander.Expand("$PYSHRINK_HOME/engine"))
}

func TestHomeExpanderLeavesPathWhenHomeUnknown(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/tools", expander.Expand("~/tools"))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/tools", nilExpander.Expand(" ~/tools "))
}

func TestHomeExpanderExpandAll(testInstance *testing.T) {
	expandedPaths := newTestExpander().ExpandAll([]string{" ", "~/proj", "/work/other", ""})
	require.Equal(testInstance, []string{filepath.Join(testHomeDirectoryConstant, "proj"), "/work/other"}, expandedPaths)

	require.Nil(testInstance, newTestExpander().ExpandAll(nil))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, []string{"/work/proj"}, nilExpander.ExpandAll([]string{" /work/proj "}))
}
