package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	promptTemplateConstant                = "%s: "
	promptWithPlaceholderTemplateConstant = "%s [%s]: "
	lineDelimiterConstant                 = '\n'
	carriageReturnConstant                = "\r"
)

// PromptRequest describes a single-line input request.
type PromptRequest struct {
	Prompt      string
	Placeholder string
}

// LinePrompter reads one line of input per prompt from a reader.
// It never consumes input past the line terminator, so the same reader can feed a terminal session afterwards.
type LinePrompter struct {
	reader io.Reader
	writer io.Writer
}

// NewLinePrompter constructs a prompter from the provided reader and writer.
func NewLinePrompter(input io.Reader, output io.Writer) *LinePrompter {
	return &LinePrompter{reader: input, writer: output}
}

type promptResponse struct {
	text      string
	submitted bool
	failure   error
}

// Prompt writes the request and reads one line. End of input with nothing typed counts as a cancellation.
func (prompter *LinePrompter) Prompt(executionContext context.Context, request PromptRequest) (string, bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, formatPrompt(request)); writeError != nil {
			return "", false, writeError
		}
	}

	// A read abandoned by cancellation finishes with the next line typed; the process exits before that matters.
	responses := make(chan promptResponse, 1)
	go func() {
		responses <- prompter.readLine()
	}()

	select {
	case <-executionContext.Done():
		return "", false, executionContext.Err()
	case response := <-responses:
		return response.text, response.submitted, response.failure
	}
}

func (prompter *LinePrompter) readLine() promptResponse {
	if prompter.reader == nil {
		return promptResponse{}
	}

	var line strings.Builder
	singleByte := make([]byte, 1)
	for {
		bytesRead, readError := prompter.reader.Read(singleByte)
		if bytesRead > 0 {
			if singleByte[0] == lineDelimiterConstant {
				return promptResponse{text: strings.TrimSuffix(line.String(), carriageReturnConstant), submitted: true}
			}
			line.WriteByte(singleByte[0])
		}
		if readError == nil {
			continue
		}
		if !errors.Is(readError, io.EOF) {
			return promptResponse{failure: readError}
		}
		if line.Len() == 0 {
			return promptResponse{}
		}
		return promptResponse{text: strings.TrimSuffix(line.String(), carriageReturnConstant), submitted: true}
	}
}

func formatPrompt(request PromptRequest) string {
	if len(request.Placeholder) == 0 {
		return fmt.Sprintf(promptTemplateConstant, request.Prompt)
	}
	return fmt.Sprintf(promptWithPlaceholderTemplateConstant, request.Prompt, request.Placeholder)
}

// StaticPrompter answers every prompt with a preconfigured value without user interaction.
type StaticPrompter struct {
	Response string
}

// Prompt returns the configured response as submitted.
func (prompter StaticPrompter) Prompt(executionContext context.Context, _ PromptRequest) (string, bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", false, contextError
	}
	return prompter.Response, true, nil
}
