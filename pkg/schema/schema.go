package schema

import "path/filepath"

// RunConfig is the resolved per-invocation configuration.
type RunConfig struct {
	// ConfigPath is the root of the configuration directory
	// (default `/etc/java_role`).
	ConfigPath string

	// DataFilesPath is the root of the installed data files
	// (built-in playbooks and role requirements).
	DataFilesPath string
}

// InventoryPath returns the default inventory location under the config path.
func (c *RunConfig) InventoryPath() string {
	return filepath.Join(c.ConfigPath, "inventory")
}

// RequirementsPath returns the path to the optional Galaxy role
// requirements override in the config directory.
func (c *RunConfig) RequirementsPath() string {
	return filepath.Join(c.ConfigPath, "ansible", "requirements.yml")
}

// RolesPath returns the install target for Galaxy roles from the
// requirements override.
func (c *RunConfig) RolesPath() string {
	return filepath.Join(c.ConfigPath, "ansible", "roles")
}

// PasswordsPath returns the location of the custom passwords file.
func (c *RunConfig) PasswordsPath() string {
	return filepath.Join(c.ConfigPath, "lordoftheflies", "passwords.yml")
}

// DataFilePath returns the path to a file shipped with the tool's data files.
func (c *RunConfig) DataFilePath(elem ...string) string {
	return filepath.Join(append([]string{c.DataFilesPath}, elem...)...)
}

// PlaybookArgs holds the playbook options parsed from the command line.
type PlaybookArgs struct {
	Inventory    string
	ExtraVars    []string // literal `name=value` tokens
	Limit        string
	Tags         string
	SkipTags     string
	Become       bool
	Check        bool
	ListTasks    bool
	VerboseLevel int
}

// RunOptions are caller-supplied overrides merged over PlaybookArgs.
// Boolean and scalar overrides are pointers so an explicit zero value
// still replaces the parsed value.
type RunOptions struct {
	// ExtraVars entries are appended as additional `-e name='value'`
	// tokens after the parsed extra-vars tokens.
	ExtraVars map[string]string

	// Limit is combined with the parsed limit using `:&` unless
	// IgnoreLimit is set, in which case the parsed limit is discarded.
	Limit       string
	IgnoreLimit bool

	// Tags are concatenated after the parsed tags.
	Tags string

	// SkipTags replaces the parsed value when non-nil.
	SkipTags *string

	// VerboseLevel replaces the parsed value when non-nil.
	VerboseLevel *int

	Become    *bool
	Check     *bool
	ListTasks *bool
}
