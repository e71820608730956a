package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, ".", cfg.Source)
	assert.Equal(t, "dist", cfg.Output)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.True(t, cfg.Autolink.IsEnabled())
	assert.Equal(t, config.DefaultBaseURL, cfg.Autolink.BaseURL)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestAutolinkIsEnabled(t *testing.T) {
	t.Parallel()

	off := false
	assert.True(t, config.AutolinkConfig{}.IsEnabled())
	assert.False(t, config.AutolinkConfig{Enabled: &off}.IsEnabled())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"drafts/**", "vendor/**"}
		original.Jobs = 4
		original.Watch = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		*clone.Autolink.Enabled = false
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.True(t, original.Autolink.IsEnabled())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("CLI fields are not written", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Flavor: config.FlavorGFM, Jobs: 8, Watch: true}
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.NotContains(t, string(data), "jobs")
		assert.NotContains(t, string(data), "watch")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
source: docs
flavor: gfm
ignore: ["drafts/**"]
autolink:
  enabled: false
  index: symbols.yml
codemo:
  trigger_title: Run
`))
		require.NoError(t, err)
		assert.Equal(t, "docs", cfg.Source)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
		assert.False(t, cfg.Autolink.IsEnabled())
		assert.Equal(t, "symbols.yml", cfg.Autolink.Index)
		assert.Equal(t, "Run", cfg.Codemo.TriggerTitle)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("\n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("severity_default: error\n"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.True(t, cfg.Autolink.IsEnabled())

	data, err = config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "dist", decoded["output"])
}
