package exec

import (
	"fmt"
	"os"

	errUtils "github.com/lordoftheflies/java-role/errors"
	log "github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
)

const galaxyCommand = "ansible-galaxy"

// legacyGalaxyRoles were installed by earlier releases and are removed by
// PruneGalaxyRoles.
var legacyGalaxyRoles = []string{
	"stackhpc.os-flavors",
	"stackhpc.os-projects",
	"stackhpc.parted-1-1",
	"stackhpc.timezone",
}

// InstallGalaxyRoles installs the built-in Galaxy role requirements, then
// any requirements override found in the configuration directory. The
// override's install target is created if missing.
func InstallGalaxyRoles(cfg *schema.RunConfig, force bool) error {
	err := galaxyInstall(
		cfg.DataFilePath("requirements.yml"),
		cfg.DataFilePath("ansible", "roles"),
		force,
	)
	if err != nil {
		return err
	}

	if !utils.IsRegularFileReadable(cfg.RequirementsPath()) {
		return nil
	}

	log.Info("Installing custom Galaxy role requirements", "requirements", cfg.RequirementsPath())

	if err := os.MkdirAll(cfg.RolesPath(), 0o755); err != nil {
		return fmt.Errorf("%w: %q: %v", errUtils.ErrCreateDirectory, cfg.RolesPath(), err)
	}

	return galaxyInstall(cfg.RequirementsPath(), cfg.RolesPath(), force)
}

// PruneGalaxyRoles removes the legacy Galaxy roles from the built-in
// roles directory.
func PruneGalaxyRoles(cfg *schema.RunConfig) error {
	log.Info("Removing legacy Galaxy roles", "roles", legacyGalaxyRoles)
	return galaxyRemove(legacyGalaxyRoles, "ansible/roles")
}

// PasswordsYmlExists reports whether a custom passwords file is present
// in the configuration directory.
func PasswordsYmlExists(cfg *schema.RunConfig) bool {
	return utils.IsRegularFileReadable(cfg.PasswordsPath())
}

// galaxyInstall installs Galaxy roles from a requirements file into the
// given directory.
func galaxyInstall(requirementsFile, rolesDir string, force bool) error {
	args := []string{"install", "-r", requirementsFile, "-p", rolesDir}
	if force {
		args = append(args, "--force")
	}

	err := ShellCommand(galaxyCommand, args, nil, false)
	return classifyRunError(err, errUtils.ErrGalaxyFailed)
}

// galaxyRemove removes the named Galaxy roles from the given directory.
func galaxyRemove(roles []string, rolesDir string) error {
	args := append([]string{"remove", "-p", rolesDir}, roles...)

	err := ShellCommand(galaxyCommand, args, nil, false)
	return classifyRunError(err, errUtils.ErrGalaxyFailed)
}
