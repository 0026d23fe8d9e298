// Package vault resolves the Ansible vault password for a run.
//
// The password can come from an interactive prompt, a password file, an
// environment variable already set by the caller, or a helper executable
// discovered on PATH that ansible-playbook invokes itself at run time.
package vault

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	errUtils "github.com/lordoftheflies/java-role/errors"
	log "github.com/lordoftheflies/java-role/pkg/logger"
)

const (
	// PasswordEnvVar carries the resolved vault password into the
	// environment of the ansible-playbook subprocess.
	PasswordEnvVar = "JAVA_ROLE_VAULT_PASSWORD"

	// HelperName is the vault password helper executable searched for on
	// PATH. When found, ansible-playbook calls back into it to obtain the
	// password, so the resolver only passes its path on the command line.
	HelperName = "java_role-vault-password-helper"

	promptText = "Vault password: "
)

// Options are the vault-related command-line options.
type Options struct {
	AskVaultPass bool
	PasswordFile string
}

// Validate checks that the options are consistent. Prompting for the
// password and reading it from a file are mutually exclusive.
func (o Options) Validate() error {
	if o.AskVaultPass && o.PasswordFile != "" {
		return errUtils.ErrVaultFlagsConflict
	}
	return nil
}

// Resolver resolves the vault password at most once per instance. The
// prompted password is cached on the resolver, so repeated calls within
// one process never prompt twice.
type Resolver struct {
	// Prompt reads the password interactively. Replaceable in tests.
	Prompt func() (string, error)

	// LookPath searches for the helper executable. Replaceable in tests.
	LookPath func(file string) (string, error)

	cached   string
	prompted bool
}

// NewResolver returns a Resolver using the interactive terminal prompt
// and the process PATH.
func NewResolver() *Resolver {
	return &Resolver{
		Prompt:   promptPassword,
		LookPath: exec.LookPath,
	}
}

// UpdateEnvironment resolves the vault password per the option
// precedence and stores it into env under PasswordEnvVar. Exactly one
// source contributes: the interactive prompt (cached after the first
// call), the password file, or nothing when neither is requested. A
// password already set in the process environment needs no entry here;
// the subprocess inherits the parent environment and picks it up as is.
func (r *Resolver) UpdateEnvironment(opts Options, env map[string]string) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	switch {
	case opts.AskVaultPass:
		password, err := r.askVaultPass()
		if err != nil {
			return err
		}
		env[PasswordEnvVar] = password
	case opts.PasswordFile != "":
		password, err := readPasswordFile(opts.PasswordFile)
		if err != nil {
			return err
		}
		env[PasswordEnvVar] = password
	}

	return nil
}

// CommandFragment returns the `--vault-password-file` tokens to append to
// the ansible-playbook command line. An explicitly given password file
// wins; otherwise the helper executable is searched for on PATH. When the
// password was resolved into the environment instead, the helper (which
// reads PasswordEnvVar) hands it back to ansible-playbook.
func (r *Resolver) CommandFragment(opts Options) []string {
	if opts.PasswordFile != "" {
		return []string{"--vault-password-file", opts.PasswordFile}
	}

	helper, err := r.LookPath(HelperName)
	if err != nil {
		log.Debug("Vault password helper not found on PATH", "helper", HelperName)
		return nil
	}

	log.Debug("Using vault password helper", "path", helper)
	return []string{"--vault-password-file", helper}
}

// askVaultPass prompts for the vault password, at most once per resolver.
func (r *Resolver) askVaultPass() (string, error) {
	if r.prompted {
		return r.cached, nil
	}

	password, err := r.Prompt()
	if err != nil {
		return "", err
	}

	r.cached = password
	r.prompted = true
	return password, nil
}

// readPasswordFile reads the vault password from a file, stripping
// exactly one trailing newline.
func readPasswordFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: vault password file %q: %v", errUtils.ErrReadFile, path, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// promptPassword reads the password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, promptText)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
