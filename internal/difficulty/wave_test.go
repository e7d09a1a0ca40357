package difficulty

import (
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWaves() (*WaveScheduler, *domain.EventQueue) {
	q := &domain.EventQueue{}
	return NewWaveScheduler(config.Default().Wave, q), q
}

func TestWaveScheduler_WaveIndex(t *testing.T) {
	w, _ := newWaves()

	tests := []struct {
		t    float64
		want int
	}{
		{0, 0},
		{89.9, 0},
		{90, 1},
		{239.99, 1},
		{240, 2},
		{600, 4},
		{900, 5},
		{10000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.WaveIndex(tt.t), "t=%v", tt.t)
	}
}

func TestWaveScheduler_SafePeriod(t *testing.T) {
	w, q := newWaves()

	for i := 0; i < 14; i++ {
		w.Update(1)
	}
	assert.Empty(t, eventsOf(q, domain.EventSpawnEnemyRequested))
	assert.True(t, w.InSafePeriod())

	w.Update(1)
	assert.Len(t, eventsOf(q, domain.EventSpawnEnemyRequested), 1)
	assert.InDelta(t, 19, w.NextSpawn(), 1e-9)

	// До следующего интервала запросов нет
	w.Update(1)
	assert.Len(t, eventsOf(q, domain.EventSpawnEnemyRequested), 1)
}

func TestWaveScheduler_WaveChangedEvent(t *testing.T) {
	w, q := newWaves()
	w.SetSurvivalTime(89.5)

	w.Update(0.5)

	events := eventsOf(q, domain.EventWaveChanged)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, 3.0, events[0].Value)
	assert.Equal(t, 1.1, events[0].Extra)
}

func TestWaveScheduler_BossTiming(t *testing.T) {
	w, q := newWaves()
	w.SetSurvivalTime(719)

	w.Update(1)

	require.Len(t, eventsOf(q, domain.EventSpawnBossRequested), 1)
	assert.InDelta(t, 840, w.NextBoss(), 1e-9)

	q.Drain()
	w.Update(60)
	assert.Empty(t, eventsOf(q, domain.EventSpawnBossRequested))
}

func TestWaveScheduler_SetSurvivalTime(t *testing.T) {
	w, q := newWaves()

	w.SetSurvivalTime(500)
	assert.Equal(t, 3, w.CurrentWave())
	assert.InDelta(t, 502, w.NextSpawn(), 1e-9)
	assert.InDelta(t, 720, w.NextBoss(), 1e-9)

	w.SetSurvivalTime(900)
	assert.Equal(t, 5, w.CurrentWave())
	assert.InDelta(t, 960, w.NextBoss(), 1e-9)
	assert.Equal(t, 2.0, w.HealthMultiplier())

	w.SetSurvivalTime(720)
	assert.InDelta(t, 840, w.NextBoss(), 1e-9)

	assert.Empty(t, q.Pending(), "restore is silent")
}
