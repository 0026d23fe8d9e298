package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/lordoftheflies/java-role/internal/exec"
	"github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
	"github.com/lordoftheflies/java-role/pkg/vault"
)

var (
	playbookArgs   schema.PlaybookArgs
	vaultOpts      vault.Options
	playbookDryRun bool
)

var playbookCmd = &cobra.Command{
	Use:   "playbook <playbook.yml> [playbook.yml...]",
	Short: "Run Ansible playbooks against the configured hosts",
	Long: `Run one or more Ansible playbooks.

The command assembles the ansible-playbook invocation from the configuration
directory: variable files found there are injected as extra-vars files, the
inventory defaults to '<config-path>/inventory', and the vault password is
resolved from the prompt, a password file, the JAVA_ROLE_VAULT_PASSWORD
environment variable, or a vault password helper found on PATH.`,
	Example: `  java-role playbook site.yml
  java-role playbook -b -C --limit group1 site.yml
  java-role playbook --ask-vault-pass -e java_version=11 site.yml upgrade.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := vaultOpts.Validate(); err != nil {
			return err
		}

		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		// ansible-playbook reports missing playbooks itself, but a warning
		// up front names the file before its output scrolls past.
		for _, playbook := range args {
			if !utils.FileExists(playbook) {
				logger.Warn("Playbook file not found", "playbook", playbook)
			}
		}

		resolver := vault.NewResolver()
		return e.RunPlaybooks(cfg, resolver, vaultOpts, &playbookArgs, nil, args, playbookDryRun)
	},
}

func init() {
	f := playbookCmd.Flags()

	f.StringVarP(&playbookArgs.Inventory, "inventory", "i", "",
		"path to the Ansible inventory (default \"<config-path>/inventory\")")
	f.StringArrayVarP(&playbookArgs.ExtraVars, "extra-vars", "e", nil,
		"set additional variables as name=value (repeatable)")
	f.StringVarP(&playbookArgs.Limit, "limit", "l", "",
		"restrict the run to a subset of hosts or groups")
	f.StringVarP(&playbookArgs.Tags, "tags", "t", "",
		"only run plays and tasks tagged with these values")
	f.StringVar(&playbookArgs.SkipTags, "skip-tags", "",
		"skip plays and tasks tagged with these values")
	f.BoolVar(&playbookArgs.ListTasks, "list-tasks", false,
		"list all tasks that would be executed")
	f.BoolVarP(&playbookArgs.Become, "become", "b", false,
		"run operations with become")
	f.BoolVarP(&playbookArgs.Check, "check", "C", false,
		"don't make any changes; predict what might change")
	f.CountVarP(&playbookArgs.VerboseLevel, "verbose", "v",
		"increase ansible-playbook verbosity (repeatable)")
	f.BoolVar(&vaultOpts.AskVaultPass, "ask-vault-pass", false,
		"prompt for the vault password")
	f.StringVar(&vaultOpts.PasswordFile, "vault-password-file", "",
		"read the vault password from a file")
	f.BoolVar(&playbookDryRun, "dry-run", false,
		"print the ansible-playbook command without executing it")

	playbookCmd.MarkFlagsMutuallyExclusive("ask-vault-pass", "vault-password-file")

	RootCmd.AddCommand(playbookCmd)
}
