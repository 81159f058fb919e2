package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, c := range rootCommand().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestSeedCommand_Validate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"tenants:\n  - id: 0b7c6f1e-8f3e-4c1a-9d2e-3f4a5b6c7d8e\n    plan: pro\nflags:\n  - key: new-gradebook\n    type: boolean\n    default: true\n",
	), 0o600))

	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"seed", "--validate", "--file", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 tenants, 1 flags")
}

func TestSeedCommand_ValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags:\n  - key: a\n    type: toggle\n    default: 1\n"), 0o600))

	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed", "--validate", "--file", path})

	assert.Error(t, cmd.Execute())
}
