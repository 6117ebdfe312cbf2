package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgshrink/svgshrink/pass"
)

func TestDefaultConfigEnablesEveryRegisteredPass(t *testing.T) {
	cfg := DefaultConfig()
	for id := range pass.Registry {
		assert.True(t, cfg.Passes[id].Enabled, "expected %q enabled in default config", id)
	}
}

func TestSafeConfigExcludesHiddenElemsRemoval(t *testing.T) {
	cfg := SafeConfig()
	assert.False(t, cfg.Passes["removeHiddenElems"].Enabled)
	assert.False(t, cfg.Passes["removeOffCanvasPaths"].Enabled)
	assert.True(t, cfg.Passes["removeComments"].Enabled)
}

func TestNoneConfigEnablesNothing(t *testing.T) {
	cfg := NoneConfig()
	for id, setting := range cfg.Passes {
		assert.False(t, setting.Enabled, "expected %q disabled in none config", id)
	}
}

func TestPresetResolvesKnownNames(t *testing.T) {
	for _, name := range []string{PresetDefault, PresetSafe, PresetNone} {
		cfg, err := Preset(name)
		require.NoError(t, err)
		require.NotNil(t, cfg)
	}
}

func TestPresetRejectsUnknownName(t *testing.T) {
	_, err := Preset("bogus")
	require.Error(t, err)
}
