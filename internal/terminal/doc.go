// Package terminal hosts interactive shell sessions for tool invocations that
// need live user interaction. PseudoTerminalHost starts the user's shell in a
// pseudo-terminal, attaches the controlling terminal to it on Show, and types
// command lines into it on SendText.
package terminal
