package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "whitespace",
			choices:        []string{"whitespace", "shell"},
			description:    "Split custom arguments on WHITESPACE or shell words.",
			expectedOutput: "`<WHITESPACE|shell>` Split custom arguments on WHITESPACE or shell words.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Diagnostic log encoding.",
			expectedOutput: "`<structured|CONSOLE>` Diagnostic log encoding.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "info",
			choices:        []string{"debug", "info"},
			description:    "",
			expectedOutput: "`<debug|INFO>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "shell",
			choices:        []string{"shell", "shell", "whitespace", "whitespace"},
			description:    "Select a tokenizer.",
			expectedOutput: "`<SHELL|whitespace>` Select a tokenizer.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "warn",
			choices:        []string{" warn ", " error "},
			description:    "Minimum level.",
			expectedOutput: "`<WARN|error>` Minimum level.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestChoiceValue(t *testing.T) {
	testCases := []struct {
		name             string
		arguments        []string
		expectedSelected string
		expectError      bool
	}{
		{name: "DefaultKept", arguments: []string{}, expectedSelected: "whitespace"},
		{name: "CaseInsensitiveSelection", arguments: []string{"--tokenizer", "SHELL"}, expectedSelected: "shell"},
		{name: "UnknownRejected", arguments: []string{"--tokenizer", "json"}, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			value := NewChoiceValue("whitespace", []string{"whitespace", "shell"})
			flagSet := pflag.NewFlagSet(testCase.name, pflag.ContinueOnError)
			flagSet.Var(value, "tokenizer", "")

			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
				require.Contains(t, parseError.Error(), "<whitespace|shell>")
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedSelected, value.String())
			require.Equal(t, "choice", value.Type())
		})
	}
}
