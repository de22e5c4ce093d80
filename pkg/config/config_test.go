package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursegrid/pkg/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	params, err := cfg.Parameters()
	require.NoError(t, err)
	defaults := model.DefaultParameters()
	assert.Equal(t, defaults.MaxClassesPerDay, params.MaxClassesPerDay)
	assert.Equal(t, defaults.CoreAttempts, params.CoreAttempts)
	assert.Equal(t, defaults.ElectiveAttempts, params.ElectiveAttempts)
	assert.Equal(t, "*", params.OverbookMarker)
	assert.Equal(t, model.RandomStrategy, params.Strategy)
	assert.False(t, params.ElectiveRoomLedger)
}

func TestLoadFromFileAndEnvironment(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), ".env")
	content := "MAX_CLASSES_PER_DAY=3\nSTRATEGY=Exhaustive\nSEED=99\nOVERBOOK_MARKER=!\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	// Empty variables keep the .env values out of the process environment once the test ends
	for _, key := range []string{"MAX_CLASSES_PER_DAY", "STRATEGY", "SEED", "OVERBOOK_MARKER"} {
		t.Setenv(key, "")
	}
	t.Setenv("CORE_ATTEMPTS", "250")
	t.Setenv("ELECTIVE_ROOM_LEDGER", "true")

	//** Act
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	params, err := cfg.Parameters()

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 3, params.MaxClassesPerDay)
	assert.Equal(t, model.ExhaustiveStrategy, params.Strategy)
	assert.Equal(t, uint64(99), params.Seed)
	assert.Equal(t, "!", params.OverbookMarker)
	assert.Equal(t, 250, params.CoreAttempts)
	assert.True(t, params.ElectiveRoomLedger)
}

func TestParametersRejectsInvalidValues(t *testing.T) {
	t.Setenv("STRATEGY", "genetic")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	_, err = cfg.Parameters()
	assert.ErrorIs(t, err, model.ErrInvalidParameters)
}
