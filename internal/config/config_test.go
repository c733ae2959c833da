package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafner-go/goigo/internal/config"
)

func TestDefaultConfigLoads(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Tree.ExpandAfter)
	assert.Equal(t, 0.9, cfg.Playout.AtariCheck)
	assert.Greater(t, cfg.Threads, 0)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	cfg, err := config.Load(`
[tree]
expand_after = 20
`)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Tree.ExpandAfter)
	// untouched sections keep their default values.
	assert.Equal(t, 0.9, cfg.Playout.AtariCheck)
	assert.Equal(t, 3500.0, cfg.Tree.RaveEquiv)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := config.Load("not valid = = toml")
	assert.Error(t, err)
}
