package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	e "github.com/lordoftheflies/java-role/internal/exec"
	"github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
	"github.com/lordoftheflies/java-role/pkg/vault"
)

var (
	dumpHostFlag   string
	dumpOutputFlag string
	dumpArgs       schema.PlaybookArgs
	dumpVaultOpts  vault.Options
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the resolved per-host configuration as YAML",
	Long: `Run the dump-config playbook and print every host's resolved variables
as a YAML mapping from host name to variables.`,
	Example: `  java-role config dump
  java-role config dump --host host1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dumpVaultOpts.Validate(); err != nil {
			return err
		}

		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}

		logger.Debug("Custom passwords file", "path", cfg.PasswordsPath(), "exists", e.PasswordsYmlExists(cfg))

		resolver := vault.NewResolver()
		hostVars, err := e.ConfigDump(cfg, resolver, dumpVaultOpts, &dumpArgs)
		if err != nil {
			return err
		}

		var out any = hostVars
		if dumpHostFlag != "" {
			vars, ok := hostVars[dumpHostFlag]
			if !ok {
				return fmt.Errorf("no configuration dumped for host %q", dumpHostFlag)
			}
			out = vars
		}

		if dumpOutputFlag != "" {
			return utils.WriteToFileAsYAML(dumpOutputFlag, out, 0o644)
		}

		y, err := utils.ConvertToYAML(out)
		if err != nil {
			return err
		}
		fmt.Print(y)
		return nil
	},
}

func init() {
	f := configDumpCmd.Flags()

	f.StringVar(&dumpHostFlag, "host", "", "dump the configuration of a single host")
	f.StringVarP(&dumpOutputFlag, "output", "o", "",
		"write the dump to a file instead of standard output")
	f.StringVarP(&dumpArgs.Inventory, "inventory", "i", "",
		"path to the Ansible inventory (default \"<config-path>/inventory\")")
	f.StringVarP(&dumpArgs.Limit, "limit", "l", "",
		"restrict the dump to a subset of hosts or groups")
	f.BoolVar(&dumpVaultOpts.AskVaultPass, "ask-vault-pass", false,
		"prompt for the vault password")
	f.StringVar(&dumpVaultOpts.PasswordFile, "vault-password-file", "",
		"read the vault password from a file")

	configDumpCmd.MarkFlagsMutuallyExclusive("ask-vault-pass", "vault-password-file")

	configCmd.AddCommand(configDumpCmd)
	RootCmd.AddCommand(configCmd)
}
