package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/pyshrink-launcher/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the pyshrink-launcher command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	if !errors.Is(executionError, cli.ErrActionAborted) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(1)
}
