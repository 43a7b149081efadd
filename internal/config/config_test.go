package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
)

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(`
scenario: landmark_rendezvous
agents: 8
seed: 42
steps: 10
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, scenario.LandmarkRendezvousName, c.Scenario)
	assert.Equal(t, 8, c.Agents)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, 10, c.Steps)
	assert.Equal(t, 1, c.Episodes)
	assert.Equal(t, log.LevelDebug, c.Level())
	assert.Len(t, c.ScenarioOptions(), 1)
}

func TestLoadYAMLEmptyIsDefault(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Empty(t, c.ScenarioOptions())
}

func TestLoadYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("scenario: rendezvous\nvelocity_damping: 0.25\n"))
	assert.Error(t, err)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := &Config{
		Scenario: "simple_tag",
		Agents:   -1,
		Episodes: 0,
		Steps:    -3,
		LogLevel: "loud",
	}
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, want := range []string{"simple_tag", "agents", "episodes", "steps", "loud"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: pursuit_evasion\nagents: 6\nevaders: 2\ncomm_dim: 3\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Agents)
	assert.Equal(t, 2, c.Evaders)
	assert.Len(t, c.ScenarioOptions(), 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedConfigsAreValid(t *testing.T) {
	paths, err := filepath.Glob("../../configs/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		_, err := Load(p)
		assert.NoError(t, err, p)
	}
}
