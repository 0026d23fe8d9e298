// Package config resolves the CLI configuration from flags, environment
// variables and built-in defaults.
package config

import (
	"github.com/spf13/viper"

	"github.com/lordoftheflies/java-role/pkg/schema"
)

const (
	// ConfigPathEnvVar overrides the configuration directory. It is also
	// exported into the environment of every ansible-playbook subprocess.
	ConfigPathEnvVar = "JAVA_ROLE_CONFIG_PATH"

	// DataFilesPathEnvVar overrides the location of the installed data files.
	DataFilesPathEnvVar = "JAVA_ROLE_DATA_FILES_PATH"

	// DefaultConfigPath is used when no flag or environment override is given.
	DefaultConfigPath = "/etc/java_role"

	// DefaultDataFilesPath is where the packaged playbooks and role
	// requirements are installed.
	DefaultDataFilesPath = "/usr/share/java_role"

	configPathKey    = "config-path"
	dataFilesPathKey = "data-files-path"
)

// Load resolves the run configuration. Precedence for the config path:
// command-line flag, JAVA_ROLE_CONFIG_PATH, built-in default.
func Load(configPathFlag string) (*schema.RunConfig, error) {
	v := viper.New()

	v.SetDefault(configPathKey, DefaultConfigPath)
	v.SetDefault(dataFilesPathKey, DefaultDataFilesPath)

	if err := v.BindEnv(configPathKey, ConfigPathEnvVar); err != nil {
		return nil, err
	}
	if err := v.BindEnv(dataFilesPathKey, DataFilesPathEnvVar); err != nil {
		return nil, err
	}

	if configPathFlag != "" {
		v.Set(configPathKey, configPathFlag)
	}

	return &schema.RunConfig{
		ConfigPath:    v.GetString(configPathKey),
		DataFilesPath: v.GetString(dataFilesPathKey),
	}, nil
}
