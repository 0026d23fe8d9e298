package exec

import (
	"os"
	"os/exec"

	log "github.com/lordoftheflies/java-role/pkg/logger"
)

// ShellCommand executes the provided command with args. The extra env
// entries (`NAME=value`) are appended to the current process environment.
// The subprocess inherits stdin/stdout/stderr. With dryRun set, the
// command is logged but not executed.
//
// Declared as a variable so tests can intercept subprocess execution.
var ShellCommand = func(command string, args []string, env []string, dryRun bool) error {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debug("Executing command", "command", cmd.String())

	if dryRun {
		return nil
	}

	return cmd.Run()
}

// ShellCommandOutput executes the provided command with args and returns
// its standard output. Standard error is passed through.
//
// Declared as a variable so tests can intercept subprocess execution.
var ShellCommandOutput = func(command string, args []string, env []string, dryRun bool) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr

	log.Debug("Executing command", "command", cmd.String())

	if dryRun {
		return "", nil
	}

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return string(output), nil
}
