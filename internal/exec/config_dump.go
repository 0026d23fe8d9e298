package exec

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"

	log "github.com/lordoftheflies/java-role/pkg/logger"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/utils"
	"github.com/lordoftheflies/java-role/pkg/vault"
)

// HostVars maps a host name to its resolved variable mapping.
type HostVars map[string]map[string]any

// ConfigDump runs the dump-config playbook against a temporary directory
// and aggregates the per-host YAML files it produces. The temporary
// directory is removed on every exit path.
func ConfigDump(
	cfg *schema.RunConfig,
	resolver *vault.Resolver,
	vaultOpts vault.Options,
	args *schema.PlaybookArgs,
) (HostVars, error) {
	dumpDir, err := os.MkdirTemp("", "java-role-dump-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(dumpDir); rmErr != nil {
			log.Warn("Failed to remove config dump directory", "dir", dumpDir, "error", rmErr)
		}
	}()

	disabled := false
	opts := &schema.RunOptions{
		ExtraVars: map[string]string{"dump_path": dumpDir},
		Check:     &disabled,
		ListTasks: &disabled,
	}

	dumpPlaybook := cfg.DataFilePath("ansible", "dump-config.yml")
	if _, err := RunPlaybook(cfg, resolver, vaultOpts, args, opts, dumpPlaybook); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dumpDir)
	if err != nil {
		return nil, err
	}

	hostVars := HostVars{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !utils.IsYaml(name) {
			continue
		}

		vars, err := utils.ReadYAMLFile(filepath.Join(dumpDir, name))
		if err != nil {
			return nil, err
		}

		host := strings.TrimSuffix(name, filepath.Ext(name))
		if existing, ok := hostVars[host]; ok {
			if err := mergo.Merge(&existing, vars, mergo.WithOverride); err != nil {
				return nil, err
			}
			hostVars[host] = existing
		} else {
			hostVars[host] = vars
		}
	}

	return hostVars, nil
}
