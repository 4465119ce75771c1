package pyshrink

import (
	"os"
	"path/filepath"
	"strings"

	pathutils "github.com/temirov/pyshrink-launcher/internal/utils/path"
)

// InstallationRootResolver locates the directory that holds the tool's module.
type InstallationRootResolver interface {
	ResolveInstallationRoot() (string, bool)
}

// WorkspaceResolver lists the open workspace folders. Only the first entry is used.
type WorkspaceResolver interface {
	ResolveWorkspaceFolders() []string
}

// InstallationRootLocator resolves the installation root from configuration, falling back to the executable's directory.
type InstallationRootLocator struct {
	ConfiguredRoot func() string
	ExecutablePath func() (string, error)
	HomeExpander   *pathutils.HomeExpander
}

// ResolveInstallationRoot returns the root when it names an existing directory.
func (locator InstallationRootLocator) ResolveInstallationRoot() (string, bool) {
	candidateRoot := ""
	if locator.ConfiguredRoot != nil {
		candidateRoot = strings.TrimSpace(locator.ConfiguredRoot())
	}

	if len(candidateRoot) == 0 {
		executablePathProvider := locator.ExecutablePath
		if executablePathProvider == nil {
			executablePathProvider = os.Executable
		}
		executablePath, executablePathError := executablePathProvider()
		if executablePathError != nil || len(executablePath) == 0 {
			return "", false
		}
		candidateRoot = filepath.Dir(executablePath)
	}

	candidateRoot = locator.HomeExpander.Expand(candidateRoot)
	if absoluteRoot, absoluteError := filepath.Abs(candidateRoot); absoluteError == nil {
		candidateRoot = absoluteRoot
	}

	rootInfo, statError := os.Stat(candidateRoot)
	if statError != nil || !rootInfo.IsDir() {
		return "", false
	}

	return candidateRoot, true
}

// WorkspaceLocator resolves workspace folders from configuration, falling back to the working directory.
type WorkspaceLocator struct {
	ConfiguredFolders   func() []string
	UseWorkingDirectory func() bool
	WorkingDirectory    func() (string, error)
	HomeExpander        *pathutils.HomeExpander
}

// ResolveWorkspaceFolders returns the configured folders, or the working directory when enabled.
func (locator WorkspaceLocator) ResolveWorkspaceFolders() []string {
	var configuredFolders []string
	if locator.ConfiguredFolders != nil {
		configuredFolders = locator.ConfiguredFolders()
	}

	resolvedFolders := locator.HomeExpander.ExpandAll(configuredFolders)
	if len(resolvedFolders) > 0 {
		return resolvedFolders
	}

	if locator.UseWorkingDirectory == nil || !locator.UseWorkingDirectory() {
		return nil
	}

	workingDirectoryProvider := locator.WorkingDirectory
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}

	workingDirectory, workingDirectoryError := workingDirectoryProvider()
	if workingDirectoryError != nil || len(workingDirectory) == 0 {
		return nil
	}

	return []string{workingDirectory}
}
