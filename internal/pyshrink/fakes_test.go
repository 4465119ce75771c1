package pyshrink_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/temirov/pyshrink-launcher/internal/execshell"
	"github.com/temirov/pyshrink-launcher/internal/terminal"
	"github.com/temirov/pyshrink-launcher/internal/ui"
)

type recordingNotifier struct {
	mutex    sync.Mutex
	errors   []string
	warnings []string
}

func (notifier *recordingNotifier) ShowError(message string) {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	notifier.errors = append(notifier.errors, message)
}

func (notifier *recordingNotifier) ShowWarning(message string) {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	notifier.warnings = append(notifier.warnings, message)
}

func (notifier *recordingNotifier) recordedErrors() []string {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	return append([]string{}, notifier.errors...)
}

func (notifier *recordingNotifier) recordedWarnings() []string {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	return append([]string{}, notifier.warnings...)
}

type recordingSink struct {
	mutex     sync.Mutex
	lines     []string
	showCount int
}

func (sink *recordingSink) AppendLine(text string) error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	sink.lines = append(sink.lines, text)
	return nil
}

func (sink *recordingSink) Show() {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	sink.showCount++
}

func (sink *recordingSink) recordedLines() []string {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	return append([]string{}, sink.lines...)
}

func (sink *recordingSink) containsLine(expectedLine string) bool {
	for _, line := range sink.recordedLines() {
		if line == expectedLine {
			return true
		}
	}
	return false
}

type staticRootResolver struct {
	root      string
	available bool
}

func (resolver staticRootResolver) ResolveInstallationRoot() (string, bool) {
	return resolver.root, resolver.available
}

type staticWorkspaceResolver struct {
	folders []string
}

func (resolver staticWorkspaceResolver) ResolveWorkspaceFolders() []string {
	return resolver.folders
}

type fakeProcess struct {
	standardOutput io.Reader
	standardError  io.Reader
	exitCode       int
	waitError      error
}

func (process *fakeProcess) StandardOutput() io.Reader {
	return process.standardOutput
}

func (process *fakeProcess) StandardError() io.Reader {
	return process.standardError
}

func (process *fakeProcess) Wait() (int, error) {
	return process.exitCode, process.waitError
}

func newFinishedProcess(standardOutput string, standardError string, exitCode int) *fakeProcess {
	return &fakeProcess{
		standardOutput: strings.NewReader(standardOutput),
		standardError:  strings.NewReader(standardError),
		exitCode:       exitCode,
	}
}

type recordingSpawner struct {
	mutex      sync.Mutex
	requests   []execshell.ProcessRequest
	process    execshell.RunningProcess
	spawnError error
}

func (spawner *recordingSpawner) Spawn(_ context.Context, request execshell.ProcessRequest) (execshell.RunningProcess, error) {
	spawner.mutex.Lock()
	defer spawner.mutex.Unlock()
	spawner.requests = append(spawner.requests, request)
	if spawner.spawnError != nil {
		return nil, spawner.spawnError
	}
	return spawner.process, nil
}

func (spawner *recordingSpawner) recordedRequests() []execshell.ProcessRequest {
	spawner.mutex.Lock()
	defer spawner.mutex.Unlock()
	return append([]execshell.ProcessRequest{}, spawner.requests...)
}

type recordingSession struct {
	name      string
	showCount int
	sentTexts []string
	showError error
	sendError error
}

func (session *recordingSession) Name() string {
	return session.name
}

func (session *recordingSession) Show() error {
	session.showCount++
	return session.showError
}

func (session *recordingSession) SendText(text string) error {
	if session.sendError != nil {
		return session.sendError
	}
	session.sentTexts = append(session.sentTexts, text)
	return nil
}

func (session *recordingSession) Wait() error {
	return nil
}

type recordingHost struct {
	options     []terminal.SessionOptions
	sessions    []*recordingSession
	createError error
	showError   error
	sendError   error
}

func (host *recordingHost) CreateSession(_ context.Context, options terminal.SessionOptions) (terminal.Session, error) {
	host.options = append(host.options, options)
	if host.createError != nil {
		return nil, host.createError
	}
	session := &recordingSession{name: options.Name, showError: host.showError, sendError: host.sendError}
	host.sessions = append(host.sessions, session)
	return session, nil
}

type scriptedPrompter struct {
	text        string
	submitted   bool
	promptError error
	requests    []ui.PromptRequest
}

func (prompter *scriptedPrompter) Prompt(_ context.Context, request ui.PromptRequest) (string, bool, error) {
	prompter.requests = append(prompter.requests, request)
	return prompter.text, prompter.submitted, prompter.promptError
}
