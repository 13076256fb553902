package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ConfigFile(t *testing.T) {
	newTestCommand(t)
	path := filepath.Join(t.TempDir(), "vibe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"variant": "minimal",
		"radar_size": 400,
		"assets": {"Tidal Sage": {"front": "/a.png", "side": "/b.png"}}
	}`), 0644))
	setFlag(t, &configPath, path)

	require.NoError(t, setup(&cobra.Command{}, nil))

	assert.Equal(t, "minimal", cfg.Variant)
	assert.Equal(t, 400, cfg.RadarSize)
	assert.Equal(t, "/a.png", assetTable().Lookup("Tidal Sage").Front)
	assert.Equal(t, elements.DefaultAssets().Lookup("Solar Nomad"), assetTable().Lookup("Solar Nomad"))
}

func TestSetup_InvalidConfig(t *testing.T) {
	newTestCommand(t)
	path := filepath.Join(t.TempDir(), "vibe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tier": "turbo"}`), 0644))
	setFlag(t, &configPath, path)

	err := setup(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestSetup_VerboseEnablesDebug(t *testing.T) {
	newTestCommand(t)
	setFlag(t, &configPath, "")
	setFlag(t, &verboseFlag, true)

	require.NoError(t, setup(&cobra.Command{}, nil))

	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json", "text", "json"))
	assert.ErrorContains(t, checkFormat("yaml", "text", "json"), "unsupported format")
}

func TestCLI_RequiredFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	for _, args := range [][]string{
		{"profile"},
		{"reading", "--api-key", "x"},
	} {
		t.Run(args[0], func(t *testing.T) {
			output, err := exec.Command(binaryPath, args...).CombinedOutput()
			assert.Error(t, err)
			assert.Contains(t, string(output), "required")
		})
	}
}
