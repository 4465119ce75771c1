// Package ui provides the console-facing collaborators of the launcher.
//
// It prompts the user for free-form input, prints blocking errors and
// non-blocking warnings, and translates process lifecycle events into concise
// messages while detailed telemetry continues to flow through structured loggers.
package ui
