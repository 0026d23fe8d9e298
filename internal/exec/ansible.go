// Package exec assembles and runs invocations of the external Ansible tools.
package exec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"

	errUtils "github.com/lordoftheflies/java-role/errors"
	"github.com/lordoftheflies/java-role/pkg/config"
	log "github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
	"github.com/lordoftheflies/java-role/pkg/vault"
)

const playbookCommand = "ansible-playbook"

// BuildPlaybookCommand translates the parsed arguments, caller overrides
// and vault state into the ansible-playbook argument vector and the extra
// environment for the subprocess.
//
// The token order is fixed: executable, verbosity, mode flags, vault
// password file, inventory, config vars files, parsed extra vars, override
// extra vars, boolean flags, limit, skip-tags, tags, playbooks.
func BuildPlaybookCommand(
	cfg *schema.RunConfig,
	resolver *vault.Resolver,
	vaultOpts vault.Options,
	args *schema.PlaybookArgs,
	opts *schema.RunOptions,
	playbooks []string,
) ([]string, map[string]string, error) {
	if opts == nil {
		opts = &schema.RunOptions{}
	}

	env := map[string]string{
		config.ConfigPathEnvVar: cfg.ConfigPath,
	}
	if err := resolver.UpdateEnvironment(vaultOpts, env); err != nil {
		return nil, nil, err
	}

	cmd := []string{playbookCommand}

	verboseLevel := args.VerboseLevel
	if opts.VerboseLevel != nil {
		verboseLevel = *opts.VerboseLevel
	}
	if verboseLevel > 0 {
		cmd = append(cmd, "-"+strings.Repeat("v", verboseLevel))
	}

	listTasks := args.ListTasks
	if opts.ListTasks != nil {
		listTasks = *opts.ListTasks
	}
	if listTasks {
		cmd = append(cmd, "--list-tasks")
	}

	cmd = append(cmd, resolver.CommandFragment(vaultOpts)...)

	inventory := args.Inventory
	if inventory == "" {
		inventory = cfg.InventoryPath()
	}
	cmd = append(cmd, "--inventory", inventory)

	varsFiles, err := GetVarsFiles(cfg.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	for _, varsFile := range varsFiles {
		cmd = append(cmd, "-e", "@"+varsFile)
	}

	for _, extraVar := range args.ExtraVars {
		cmd = append(cmd, "-e", extraVar)
	}
	for _, name := range sortedKeys(opts.ExtraVars) {
		cmd = append(cmd, "-e", fmt.Sprintf("%s=%s", name, quoteExtraVar(opts.ExtraVars[name])))
	}

	become := args.Become
	if opts.Become != nil {
		become = *opts.Become
	}
	if become {
		cmd = append(cmd, "--become")
	}

	check := args.Check
	if opts.Check != nil {
		check = *opts.Check
	}
	if check {
		cmd = append(cmd, "--check")
	}

	if limit := mergeLimit(args.Limit, opts); limit != "" {
		cmd = append(cmd, "--limit", limit)
	}

	skipTags := args.SkipTags
	if opts.SkipTags != nil {
		skipTags = *opts.SkipTags
	}
	if skipTags != "" {
		cmd = append(cmd, "--skip-tags", skipTags)
	}

	if tags := mergeTags(args.Tags, opts.Tags); tags != "" {
		cmd = append(cmd, "--tags", tags)
	}

	cmd = append(cmd, playbooks...)

	return cmd, env, nil
}

// RunPlaybooks builds the ansible-playbook command and executes it with
// the merged environment. A non-zero exit status is converted into
// ErrPlaybookFailed carrying the subprocess exit code.
func RunPlaybooks(
	cfg *schema.RunConfig,
	resolver *vault.Resolver,
	vaultOpts vault.Options,
	args *schema.PlaybookArgs,
	opts *schema.RunOptions,
	playbooks []string,
	dryRun bool,
) error {
	cmd, env, err := BuildPlaybookCommand(cfg, resolver, vaultOpts, args, opts, playbooks)
	if err != nil {
		return err
	}

	log.Debug("Running playbooks", "playbooks", playbooks, "config path", cfg.ConfigPath)

	err = ShellCommand(cmd[0], cmd[1:], environList(env), dryRun)
	return classifyRunError(err, errUtils.ErrPlaybookFailed)
}

// RunPlaybook runs a single playbook with the output captured instead of
// streamed, returning the subprocess standard output.
func RunPlaybook(
	cfg *schema.RunConfig,
	resolver *vault.Resolver,
	vaultOpts vault.Options,
	args *schema.PlaybookArgs,
	opts *schema.RunOptions,
	playbook string,
) (string, error) {
	cmd, env, err := BuildPlaybookCommand(cfg, resolver, vaultOpts, args, opts, []string{playbook})
	if err != nil {
		return "", err
	}

	output, err := ShellCommandOutput(cmd[0], cmd[1:], environList(env), false)
	if err != nil {
		return "", classifyRunError(err, errUtils.ErrPlaybookFailed)
	}
	return output, nil
}

// GetVarsFiles lists the variable files in the configuration directory.
// Every readable, non-hidden regular file with a YAML extension becomes
// an extra-vars file, in lexical order.
func GetVarsFiles(configPath string) ([]string, error) {
	entries, err := os.ReadDir(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: config path %q: %v", errUtils.ErrReadFile, configPath, err)
	}

	var varsFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !utils.IsYaml(name) {
			continue
		}
		varsFiles = append(varsFiles, filepath.Join(configPath, name))
	}
	return varsFiles, nil
}

// mergeLimit combines the parsed and override limits. With IgnoreLimit
// set, the parsed limit is discarded. When both are present they are
// joined with `:&` so the run is restricted to their intersection.
func mergeLimit(parsed string, opts *schema.RunOptions) string {
	if opts.IgnoreLimit {
		return opts.Limit
	}
	if parsed != "" && opts.Limit != "" {
		return parsed + ":&" + opts.Limit
	}
	if opts.Limit != "" {
		return opts.Limit
	}
	return parsed
}

// mergeTags concatenates the parsed and override tag lists, parsed first.
func mergeTags(parsed, override string) string {
	switch {
	case parsed != "" && override != "":
		return parsed + "," + override
	case override != "":
		return override
	default:
		return parsed
	}
}

// quoteExtraVar quotes an override extra-var value for the ansible
// command line. Values are always single-quoted, matching the
// `-e name='value'` form ansible documents.
func quoteExtraVar(value string) string {
	quoted := shellescape.Quote(value)
	if quoted == value {
		quoted = "'" + value + "'"
	}
	return quoted
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// environList converts the env mapping into `NAME=value` entries in
// deterministic order.
func environList(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for _, name := range sortedKeys(env) {
		entries = append(entries, fmt.Sprintf("%s=%s", name, env[name]))
	}
	return entries
}

// classifyRunError converts subprocess failures into the CLI's error
// types. A non-zero exit becomes the fatal sentinel with the exit code
// attached; a missing executable surfaces as ErrCommandNotFound. The raw
// *exec.ExitError never escapes.
func classifyRunError(err error, fatal error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errUtils.WithExitCode(fatal, exitErr.ExitCode())
	}

	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %v", errUtils.ErrCommandNotFound, err)
	}

	return err
}
