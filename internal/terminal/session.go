package terminal

// SessionOptions describes a terminal session to create.
type SessionOptions struct {
	Name                 string
	EnvironmentVariables map[string]string
	WorkingDirectory     string
}

// Session is an interactive shell owned by the host.
type Session interface {
	// Name returns the session title.
	Name() string
	// Show brings the session into view and attaches user input to it.
	Show() error
	// SendText types the text into the shell followed by a newline.
	SendText(text string) error
	// Wait blocks until the shell exits.
	Wait() error
}
