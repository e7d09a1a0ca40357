package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoad_OverridesSection(t *testing.T) {
	path := writeYAML(t, `
combo:
  decay_time: 8
endless:
  max_enemy_count: 50
weapons:
  - name: Spear
    damage: 2
    range: 2
    cooldown: 0.7
    effect: NONE
    damage_type: PHYSICAL
`)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, got.Combo.DecayTime)
	assert.Equal(t, Default().Combo.Thresholds, got.Combo.Thresholds, "untouched keys keep defaults")
	assert.Equal(t, 50, got.Endless.MaxEnemyCount)
	assert.Equal(t, 64, got.Endless.ChunkSize)
	require.Len(t, got.Weapons, 1)
	assert.Equal(t, "Spear", got.Weapons[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read tuning")

	_, err = Load(writeYAML(t, "combo:\n  decay_tme: 3\n"))
	assert.ErrorContains(t, err, "decode tuning", "unknown keys are rejected")

	_, err = Load(writeYAML(t, "rage:\n  thresholds: [0, 50]\n"))
	assert.ErrorIs(t, err, ErrInvalidTuning)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *Tuning)
	}{
		{"combo thresholds not ascending", func(t *Tuning) { t.Combo.Thresholds = []int{0, 5, 5, 20, 50} }},
		{"combo decay", func(t *Tuning) { t.Combo.DecayTime = 0 }},
		{"wave tables mismatch", func(t *Tuning) { t.Wave.SpawnIntervals = []float64{1} }},
		{"boss interval", func(t *Tuning) { t.Wave.BossInterval = 0 }},
		{"chunk bigger than map", func(t *Tuning) { t.Endless.ChunkSize = 1000 }},
		{"spawn range inverted", func(t *Tuning) { t.Endless.SpawnMinDistance = 60 }},
		{"no weapons", func(t *Tuning) { t.Weapons = nil }},
		{"level loot over one", func(t *Tuning) { t.Loot.LevelWeapon = 0.9 }},
		{"level loot negative", func(t *Tuning) { t.Loot.LevelArmor = -0.1 }},
		{"level coins inverted", func(t *Tuning) { t.Loot.LevelCoinMax = 0 }},
		{"moving trap hold inverted", func(t *Tuning) { t.Combat.MovingTrapMinHold = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := Default()
			tt.mutate(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidTuning)
		})
	}
}
