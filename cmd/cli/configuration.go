package cli

import (
	_ "embed"

	"github.com/temirov/pyshrink-launcher/internal/pyshrink"
	"github.com/temirov/pyshrink-launcher/internal/utils"
)

const (
	commonConfigurationKeyConstant                = "common"
	commonLogLevelConfigKeyConstant               = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant              = commonConfigurationKeyConstant + ".log_format"
	engineConfigurationKeyConstant                = "engine"
	engineInstallationRootConfigKeyConstant       = engineConfigurationKeyConstant + ".installation_root"
	engineInterpreterConfigKeyConstant            = engineConfigurationKeyConstant + ".interpreter"
	workspaceConfigurationKeyConstant             = "workspace"
	workspaceFoldersConfigKeyConstant             = workspaceConfigurationKeyConstant + ".folders"
	workspaceUseWorkingDirectoryConfigKeyConstant = workspaceConfigurationKeyConstant + ".use_working_directory"
	argumentsTokenizerConfigKeyConstant           = "arguments.tokenizer"
	terminalShellConfigKeyConstant                = "terminal.shell"
	outputPathConfigKeyConstant                   = "output.path"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default configuration and its type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	duplicatedContent := make([]byte, len(embeddedDefaultConfigurationContent))
	copy(duplicatedContent, embeddedDefaultConfigurationContent)
	return duplicatedContent, configurationTypeConstant
}

// ApplicationConfiguration describes the persisted configuration for the launcher.
type ApplicationConfiguration struct {
	Common    ApplicationCommonConfiguration `mapstructure:"common"`
	Engine    EngineConfiguration            `mapstructure:"engine"`
	Workspace WorkspaceConfiguration         `mapstructure:"workspace"`
	Arguments ArgumentsConfiguration         `mapstructure:"arguments"`
	Terminal  TerminalConfiguration          `mapstructure:"terminal"`
	Output    OutputConfiguration            `mapstructure:"output"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// EngineConfiguration locates the tool and the interpreter that runs it.
type EngineConfiguration struct {
	InstallationRoot string `mapstructure:"installation_root"`
	Interpreter      string `mapstructure:"interpreter"`
}

// WorkspaceConfiguration lists the workspace folders the tool operates on.
type WorkspaceConfiguration struct {
	Folders             []string `mapstructure:"folders"`
	UseWorkingDirectory bool     `mapstructure:"use_working_directory"`
}

// ArgumentsConfiguration controls how custom argument text is split.
type ArgumentsConfiguration struct {
	Tokenizer string `mapstructure:"tokenizer"`
}

// TerminalConfiguration selects the shell started for interactive sessions.
type TerminalConfiguration struct {
	Shell string `mapstructure:"shell"`
}

// OutputConfiguration redirects the log sink to a file.
type OutputConfiguration struct {
	Path string `mapstructure:"path"`
}

// DefaultConfigurationValues returns the defaults applied beneath files, environment, and flags.
func DefaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:               string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant:              string(utils.LogFormatConsole),
		engineInstallationRootConfigKeyConstant:       "",
		engineInterpreterConfigKeyConstant:            "",
		workspaceFoldersConfigKeyConstant:             []string{},
		workspaceUseWorkingDirectoryConfigKeyConstant: true,
		argumentsTokenizerConfigKeyConstant:           pyshrink.TokenizerWhitespace,
		terminalShellConfigKeyConstant:                "",
		outputPathConfigKeyConstant:                   "",
	}
}
