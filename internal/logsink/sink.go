// Package logsink provides the shared append-only output pane that collects
// text emitted by non-interactive tool invocations.
package logsink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/temirov/pyshrink-launcher/internal/utils"
)

const (
	lineTerminatorConstant        = "\n"
	revealMarkerConstant          = "── %s ──"
	outputFilePermissionsConstant = 0o644
	outputFileOpenFlagsConstant   = os.O_CREATE | os.O_WRONLY | os.O_APPEND
)

// ErrSinkDisposed indicates that the sink has already been disposed.
var ErrSinkDisposed = errors.New("log sink disposed")

// Sink is a named, append-only line stream safe for concurrent writers.
type Sink struct {
	name     string
	writer   io.Writer
	closer   io.Closer
	mutex    sync.Mutex
	visible  bool
	disposed bool
}

// New wraps the writer in a sink. The closer, when non-nil, is closed on Dispose.
func New(name string, writer io.Writer, closer io.Closer) *Sink {
	if writer == nil {
		writer = io.Discard
	}
	return &Sink{name: name, writer: utils.NewFlushingWriter(writer), closer: closer}
}

// Open creates a sink appending to the file at outputPath, or writing to the fallback writer when the path is empty.
// File output is buffered and flushed after every line.
func Open(name string, outputPath string, fallback io.Writer) (*Sink, error) {
	trimmedPath := strings.TrimSpace(outputPath)
	if len(trimmedPath) == 0 {
		return New(name, fallback, nil), nil
	}

	outputFile, openError := os.OpenFile(trimmedPath, outputFileOpenFlagsConstant, outputFilePermissionsConstant)
	if openError != nil {
		return nil, openError
	}
	return New(name, bufio.NewWriter(outputFile), outputFile), nil
}

// Name returns the pane title.
func (sink *Sink) Name() string {
	return sink.name
}

// AppendLine writes the text followed by a line terminator.
func (sink *Sink) AppendLine(text string) error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.disposed {
		return ErrSinkDisposed
	}

	_, writeError := io.WriteString(sink.writer, text+lineTerminatorConstant)
	return writeError
}

// Show brings the pane into view. The first call prints the pane title.
func (sink *Sink) Show() {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.disposed || sink.visible {
		return
	}
	sink.visible = true
	_, _ = io.WriteString(sink.writer, fmt.Sprintf(revealMarkerConstant, sink.name)+lineTerminatorConstant)
}

// Visible reports whether Show has been called.
func (sink *Sink) Visible() bool {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	return sink.visible
}

// Dispose releases the underlying writer. Only the first call has an effect.
func (sink *Sink) Dispose() error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.disposed {
		return ErrSinkDisposed
	}
	sink.disposed = true

	if sink.closer == nil {
		return nil
	}
	return sink.closer.Close()
}
