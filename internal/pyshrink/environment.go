package pyshrink

const (
	// ModuleSearchPathVariable points the interpreter at the installation root.
	ModuleSearchPathVariable = "PYTHONPATH"
	// IOEncodingVariable forces UTF-8 standard streams.
	IOEncodingVariable = "PYTHONIOENCODING"
	// UTF8ModeVariable enables the interpreter's UTF-8 mode.
	UTF8ModeVariable = "PYTHONUTF8"

	ioEncodingValueConstant = "utf-8"
	utf8ModeValueConstant   = "1"
)

// BuildEnvironment returns the variables injected into every process and terminal session.
func BuildEnvironment(installationRoot string) map[string]string {
	return map[string]string{
		ModuleSearchPathVariable: installationRoot,
		IOEncodingVariable:       ioEncodingValueConstant,
		UTF8ModeVariable:         utf8ModeValueConstant,
	}
}
