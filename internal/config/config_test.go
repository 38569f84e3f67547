package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/montyhall/internal/trial"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("simulation:\n  trial_count: 500\n  strategy: always-stay\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Simulation.TrialCount)
	assert.Equal(t, "always-stay", cfg.Simulation.Strategy)
	assert.Equal(t, 3, cfg.Simulation.DoorCount)
	assert.Equal(t, "~/.montyhall/runs.db", cfg.Storage.DBPath)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  trial_count: 500\n"), 0o600))

	t.Setenv("MONTYHALL_TRIALS", "42")
	t.Setenv("MONTYHALL_SEED", "1234")
	t.Setenv("MONTYHALL_DOORS", "5")
	t.Setenv("MONTYHALL_STRATEGY", "random")
	t.Setenv("MONTYHALL_DB", "/tmp/runs.db")
	t.Setenv("MONTYHALL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Simulation.TrialCount)
	assert.Equal(t, int64(1234), cfg.Simulation.Seed)
	assert.Equal(t, 5, cfg.Simulation.DoorCount)
	assert.Equal(t, "random", cfg.Simulation.Strategy)
	assert.Equal(t, "/tmp/runs.db", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadBadEnvironmentValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))
	t.Setenv("MONTYHALL_TRIALS", "lots")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadSearchPathBrokenYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	userPath := filepath.Join(home, ".montyhall", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte("simulation: [unclosed"), 0o600))

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), userPath)
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("configs", 0o755))

	require.NoError(t, os.WriteFile(filepath.Join("configs", "montyhall.yaml"), []byte("simulation:\n  door_count: 7\n"), 0o600))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.DoorCount)

	require.NoError(t, os.WriteFile(filepath.Join("configs", "montyhall.yaml"), []byte("simulation: [unclosed"), 0o600))
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Simulation.TrialCount = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Simulation.DoorCount = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Logging.Level = "chatty"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Simulation.Strategy = "sometimes"
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, trial.ErrInvalidConfig)
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "warn"
	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, lvl)

	cfg.Logging.Level = ""
	lvl, err = cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, lvl)
}
