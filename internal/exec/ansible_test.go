package exec

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/lordoftheflies/java-role/errors"
	"github.com/lordoftheflies/java-role/pkg/schema"
	"github.com/lordoftheflies/java-role/pkg/vault"
)

type shellCall struct {
	command string
	args    []string
	env     []string
	dryRun  bool
}

// interceptShellCommand replaces the subprocess runner for the duration
// of the test and records every invocation.
func interceptShellCommand(t *testing.T, result error) *[]shellCall {
	t.Helper()

	orig := ShellCommand
	calls := &[]shellCall{}
	ShellCommand = func(command string, args []string, env []string, dryRun bool) error {
		*calls = append(*calls, shellCall{command, args, env, dryRun})
		return result
	}
	t.Cleanup(func() { ShellCommand = orig })

	return calls
}

// testConfig returns a run config rooted in a temp dir seeded with two
// variable files, a hidden file and an inventory directory.
func testConfig(t *testing.T) *schema.RunConfig {
	t.Helper()

	configPath := t.TempDir()
	for _, name := range []string{"vars-file1.yml", "vars-file2.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(configPath, name), []byte("---\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(configPath, ".hidden.yml"), []byte("---\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(configPath, "inventory"), 0o755))

	return &schema.RunConfig{ConfigPath: configPath, DataFilesPath: "/usr/share/java_role"}
}

// noHelperResolver never finds the vault password helper on PATH.
func noHelperResolver() *vault.Resolver {
	return &vault.Resolver{
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
	}
}

func TestRunPlaybooksDefaults(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml", "playbook2.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "ansible-playbook", call.command)
	assert.Equal(t, []string{
		"--inventory", filepath.Join(cfg.ConfigPath, "inventory"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"playbook1.yml",
		"playbook2.yml",
	}, call.args)
	assert.Equal(t, []string{"JAVA_ROLE_CONFIG_PATH=" + cfg.ConfigPath}, call.env)
	assert.False(t, call.dryRun)
}

func TestRunPlaybooksAllArgs(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	args := &schema.PlaybookArgs{
		Inventory:    "/path/to/inventory",
		ExtraVars:    []string{"ev_name1=ev_value1"},
		Limit:        "group1:host",
		Tags:         "tag1,tag2",
		SkipTags:     "tag3,tag4",
		Become:       true,
		Check:        true,
		ListTasks:    true,
		VerboseLevel: 2,
	}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, nil,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"-vv",
		"--list-tasks",
		"--inventory", "/path/to/inventory",
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"-e", "ev_name1=ev_value1",
		"--become",
		"--check",
		"--limit", "group1:host",
		"--skip-tags", "tag3,tag4",
		"--tags", "tag1,tag2",
		"playbook1.yml",
	}, (*calls)[0].args)
}

func TestRunPlaybooksVaultPasswordFile(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	passwordFile := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(passwordFile, []byte("test-pass\n"), 0o600))

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{PasswordFile: passwordFile},
		&schema.PlaybookArgs{}, nil, []string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, []string{
		"--vault-password-file", passwordFile,
		"--inventory", filepath.Join(cfg.ConfigPath, "inventory"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"playbook1.yml",
	}, call.args)
	assert.Contains(t, call.env, "JAVA_ROLE_VAULT_PASSWORD=test-pass")
}

func TestRunPlaybooksVaultPasswordHelper(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	helper := "/path/to/" + vault.HelperName
	resolver := &vault.Resolver{
		LookPath: func(string) (string, error) { return helper, nil },
	}

	err := RunPlaybooks(cfg, resolver, vault.Options{}, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"--vault-password-file", helper,
		"--inventory", filepath.Join(cfg.ConfigPath, "inventory"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"playbook1.yml",
	}, (*calls)[0].args)
}

func TestRunPlaybooksOverrides(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	args := &schema.PlaybookArgs{
		ExtraVars: []string{"ev_name1=ev_value1"},
		Limit:     "group1:host1",
		Tags:      "tag1,tag2",
	}
	verboseLevel := 0
	check := true
	opts := &schema.RunOptions{
		ExtraVars:    map[string]string{"ev_name2": "ev_value2"},
		Limit:        "group2:host2",
		Tags:         "tag3,tag4",
		VerboseLevel: &verboseLevel,
		Check:        &check,
	}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, opts,
		[]string{"playbook1.yml", "playbook2.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"--inventory", filepath.Join(cfg.ConfigPath, "inventory"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"-e", "ev_name1=ev_value1",
		"-e", "ev_name2='ev_value2'",
		"--check",
		"--limit", "group1:host1:&group2:host2",
		"--tags", "tag1,tag2,tag3,tag4",
		"playbook1.yml",
		"playbook2.yml",
	}, (*calls)[0].args)
}

func TestRunPlaybooksSkipTagsAndVerbosityOverride(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	args := &schema.PlaybookArgs{
		SkipTags:     "tag3,tag4",
		VerboseLevel: 1,
	}
	skipTags := "tag5"
	verboseLevel := 3
	opts := &schema.RunOptions{
		SkipTags:     &skipTags,
		VerboseLevel: &verboseLevel,
	}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, opts,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	// The overrides replace the parsed values instead of merging.
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"-vvv",
		"--inventory", filepath.Join(cfg.ConfigPath, "inventory"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		"-e", "@" + filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
		"--skip-tags", "tag5",
		"playbook1.yml",
	}, (*calls)[0].args)
}

func TestRunPlaybooksIgnoreLimit(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	args := &schema.PlaybookArgs{Limit: "group1:host"}
	opts := &schema.RunOptions{IgnoreLimit: true}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, opts,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.NotContains(t, (*calls)[0].args, "--limit")
}

func TestRunPlaybooksIgnoreLimitWithOverride(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	args := &schema.PlaybookArgs{Limit: "group1:host"}
	opts := &schema.RunOptions{Limit: "foo", IgnoreLimit: true}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, opts,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	callArgs := (*calls)[0].args
	limitIdx := -1
	for i, a := range callArgs {
		if a == "--limit" {
			limitIdx = i
		}
	}
	require.GreaterOrEqual(t, limitIdx, 0)
	assert.Equal(t, "foo", callArgs[limitIdx+1])
}

func TestRunPlaybooksListTasksOverrideFalse(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	listTasks := false
	args := &schema.PlaybookArgs{ListTasks: true}
	opts := &schema.RunOptions{ListTasks: &listTasks}

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, args, opts,
		[]string{"playbook1.yml"}, false)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.NotContains(t, (*calls)[0].args, "--list-tasks")
}

func TestRunPlaybooksDryRun(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml"}, true)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.True(t, (*calls)[0].dryRun)
}

// exitError produces a real *exec.ExitError with the given status.
func exitError(t *testing.T, status int) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit "+strconv.Itoa(status)).Run()
	require.Error(t, err)
	return err
}

func TestRunPlaybooksFailure(t *testing.T) {
	interceptShellCommand(t, exitError(t, 2))
	cfg := testConfig(t)

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml"}, false)
	require.Error(t, err)

	assert.ErrorIs(t, err, errUtils.ErrPlaybookFailed)
	assert.Equal(t, 2, errUtils.GetExitCode(err))

	// The raw subprocess error type must not escape.
	var rawExitErr *exec.ExitError
	assert.False(t, errors.As(err, &rawExitErr))
}

func TestRunPlaybooksCommandNotFound(t *testing.T) {
	interceptShellCommand(t, &exec.Error{Name: "ansible-playbook", Err: exec.ErrNotFound})
	cfg := testConfig(t)

	err := RunPlaybooks(cfg, noHelperResolver(), vault.Options{}, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml"}, false)
	assert.ErrorIs(t, err, errUtils.ErrCommandNotFound)
}

func TestRunPlaybooksVaultConflict(t *testing.T) {
	calls := interceptShellCommand(t, nil)
	cfg := testConfig(t)

	opts := vault.Options{AskVaultPass: true, PasswordFile: "/path/to/file"}
	err := RunPlaybooks(cfg, noHelperResolver(), opts, &schema.PlaybookArgs{}, nil,
		[]string{"playbook1.yml"}, false)

	assert.ErrorIs(t, err, errUtils.ErrVaultFlagsConflict)
	assert.Empty(t, *calls)
}

func TestGetVarsFiles(t *testing.T) {
	cfg := testConfig(t)

	varsFiles, err := GetVarsFiles(cfg.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(cfg.ConfigPath, "vars-file1.yml"),
		filepath.Join(cfg.ConfigPath, "vars-file2.yaml"),
	}, varsFiles)
}

func TestGetVarsFilesMissingDir(t *testing.T) {
	_, err := GetVarsFiles(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, errUtils.ErrReadFile)
}

func TestQuoteExtraVar(t *testing.T) {
	assert.Equal(t, "'ev_value2'", quoteExtraVar("ev_value2"))
	assert.Equal(t, "'a b'", quoteExtraVar("a b"))
}
