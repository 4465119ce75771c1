// Package utils exposes reusable helpers consumed by the launcher commands.
//
// It houses the ConfigurationLoader, which layers embedded defaults, files,
// environment variables, and flags through Viper, the zap LoggerFactory, and
// the FlushingWriter used by the log sink.
package utils
