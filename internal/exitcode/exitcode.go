// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, no TTY).
	UserError = 1

	// ConfigError indicates missing credentials or an unreadable config.
	ConfigError = 2

	// BackendError indicates an image API or network error.
	BackendError = 3
)
