// Package cli constructs the pyshrink-launcher command-line interface. It wires
// the Cobra command hierarchy, the layered configuration loader, structured
// logging, and the shared log pane, and exposes one subcommand per launcher
// action.
package cli
