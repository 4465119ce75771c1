// Package execshell provides structured helpers for spawning external tools.
//
// It wraps os/exec pipes via OSProcessSpawner, exposes RunningProcess handles
// whose output streams are consumed by callers, and defines the observer
// abstraction used to report process lifecycle events in a testable manner.
package execshell
