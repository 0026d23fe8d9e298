// Package cmd implements the java-role command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lordoftheflies/java-role/pkg/config"
	"github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
)

var (
	configPathFlag string
	logLevelFlag   string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "java-role",
	Short: "Deploy and configure hosts with Ansible",
	Long: `java-role wraps ansible-playbook to deploy and configure hosts from a
configuration directory. It resolves the directory's variable files, manages
the Ansible vault password, and runs the tool's playbooks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevelFlag)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPathFlag, "config-path", "",
		"path to the configuration directory (default \"/etc/java_role\", env JAVA_ROLE_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"log level (debug, info, warn, error)")
}

// loadRunConfig resolves the run configuration from the persistent flags
// and the environment. A missing configuration directory is not fatal
// here; commands that need its contents fail with their own errors.
func loadRunConfig() (*schema.RunConfig, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, err
	}

	if isDir, dirErr := utils.IsDirectory(cfg.ConfigPath); dirErr != nil || !isDir {
		logger.Warn("Configuration directory not found", "path", cfg.ConfigPath)
	}

	return cfg, nil
}
