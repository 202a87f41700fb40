package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pubmanifest-go/internal/config"
	"github.com/quantmind-br/pubmanifest-go/internal/fetcher"
	"github.com/quantmind-br/pubmanifest-go/internal/processor"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"output", "base", "language", "direction", "timeout", "user-agent", "canonical-only", "no-toc", "strict"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag %s not registered", name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["config"])
}

func TestInitConfigDoesNotPanic(t *testing.T) {
	cfgFile = ""
	assert.NotPanics(t, initConfig)

	cfgFile = "/tmp/does-not-exist.yaml"
	assert.NotPanics(t, initConfig)
	cfgFile = ""
}

func TestFlagBindingsReachConfig(t *testing.T) {
	require.NoError(t, rootCmd.Flags().Set("language", "fr"))
	require.NoError(t, rootCmd.Flags().Set("direction", "rtl"))
	require.NoError(t, rootCmd.Flags().Set("timeout", "45s"))
	require.NoError(t, rootCmd.Flags().Set("user-agent", "custom/1.0"))
	defer func() {
		_ = rootCmd.Flags().Set("language", "")
		_ = rootCmd.Flags().Set("direction", "")
		_ = rootCmd.Flags().Set("timeout", config.DefaultTimeout.String())
		_ = rootCmd.Flags().Set("user-agent", "")
	}()

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Defaults.Language)
	assert.Equal(t, "rtl", cfg.Defaults.Direction)
	assert.Equal(t, 45*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "custom/1.0", cfg.Fetch.UserAgent)
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	"@context": ["https://schema.org", "https://www.w3.org/ns/pub-context"],
	"name": "Local Book",
	"readingOrder": ["c1.html"]
}`), 0644))

	client := fetcher.NewClient(fetcher.ClientOptions{Timeout: time.Second})
	logger := utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json"})
	proc := processor.New(client, logger, processor.Options{})

	result, err := convertFile(proc, rootCmd, path)
	require.NoError(t, err)
	require.NotNil(t, result.Publication)

	// Relative references resolve against the file's own location.
	require.Len(t, result.Publication.ReadingOrder, 1)
	assert.Contains(t, result.Publication.ReadingOrder[0].URL, "file://")
	assert.Contains(t, result.Publication.ReadingOrder[0].URL, "c1.html")
}

func TestWriteJSON(t *testing.T) {
	log = utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json"})

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, map[string]any{"name": "ok"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "ok"}`, string(data))
}
