package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/lordoftheflies/java-role/internal/exec"
)

var rolesForceFlag bool

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage Galaxy roles used by the playbooks",
}

var rolesInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Galaxy role dependencies",
	Long: `Install the built-in Galaxy role requirements, then any requirements
override found at '<config-path>/ansible/requirements.yml'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		return e.InstallGalaxyRoles(cfg, rolesForceFlag)
	},
}

var rolesPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove Galaxy roles no longer used by the playbooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		return e.PruneGalaxyRoles(cfg)
	},
}

func init() {
	rolesInstallCmd.Flags().BoolVar(&rolesForceFlag, "force", false,
		"overwrite an existing role if it is already installed")

	rolesCmd.AddCommand(rolesInstallCmd)
	rolesCmd.AddCommand(rolesPruneCmd)
	RootCmd.AddCommand(rolesCmd)
}
