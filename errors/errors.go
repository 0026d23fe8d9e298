// Package errors defines the static errors and exit-code handling for the CLI.
package errors

import "errors"

var (
	// ErrVaultFlagsConflict is returned when `--ask-vault-pass` and
	// `--vault-password-file` are both specified.
	ErrVaultFlagsConflict = errors.New("the `--ask-vault-pass` and `--vault-password-file` flags are mutually exclusive")

	// ErrPlaybookFailed is returned when `ansible-playbook` exits non-zero.
	ErrPlaybookFailed = errors.New("ansible-playbook failed")

	// ErrGalaxyFailed is returned when `ansible-galaxy` exits non-zero.
	ErrGalaxyFailed = errors.New("ansible-galaxy failed")

	// ErrCommandNotFound is returned when an external executable is not on PATH.
	ErrCommandNotFound = errors.New("executable not found")

	// ErrCreateDirectory is returned when a destination directory cannot be created.
	ErrCreateDirectory = errors.New("failed to create directory")

	// ErrReadFile is returned when an external file cannot be read.
	ErrReadFile = errors.New("failed to read file")
)
