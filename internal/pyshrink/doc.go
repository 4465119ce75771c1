// Package pyshrink launches the external PyShrink cleanup tool.
//
// The Dispatcher maps the four user-facing actions onto two invocation
// strategies: ProcessInvoker runs the tool as a background process whose
// output is streamed into the shared log sink, and TerminalInvoker types a
// command line into a freshly created interactive terminal session.
// ArgumentCollector gathers free-form flags for the custom-arguments action.
// Host state (installation root, workspace folders) is re-resolved on every
// call through the resolver interfaces.
package pyshrink
