package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	dir := writeProject(t, `
[networks.localhost]
rpc_url = "http://127.0.0.1:8545"
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("network", "", "")
	flags.StringSlice("tags", nil, "")
	flags.Bool("non-interactive", false, "")
	require.NoError(t, flags.Parse([]string{"--network", "localhost", "--tags", "SmartBridge,Other", "--non-interactive"}))

	v := SetupViper(dir, flags)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, "localhost", cfg.Network)
	assert.Equal(t, []string{"SmartBridge", "Other"}, cfg.Tags)
	assert.True(t, cfg.NonInteractive)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Project)
	assert.Contains(t, cfg.Project.Networks, "localhost")
}

func TestProviderMissingProjectFile(t *testing.T) {
	v := SetupViper(t.TempDir(), nil)
	_, err := Provider(v)
	assert.Error(t, err)
}

func TestFindProjectRoot(t *testing.T) {
	root := writeProject(t, "")
	nested := filepath.Join(root, "contracts", "src")
	require.NoError(t, os.MkdirAll(nested, 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(nested))

	found, err := FindProjectRoot()
	require.NoError(t, err)

	// Resolve symlinks (macOS /var -> /private/var)
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, want, got)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitTags([]string{"a, b", "c", ""}))
	assert.Nil(t, splitTags(nil))
}
