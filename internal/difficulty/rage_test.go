package difficulty

import (
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggressionMeter_Update(t *testing.T) {
	q := &domain.EventQueue{}
	rage := NewAggressionMeter(config.Default().Rage, q)

	rage.Update(30, 60)

	assert.InDelta(t, 50, rage.Rage(), 1e-9)
	assert.Equal(t, 2, rage.Level())
	assert.Equal(t, "Aggressive", rage.LevelName())
	assert.Equal(t, 1.2, rage.SpeedMultiplier())
	assert.Equal(t, 1.0, rage.DamageMultiplier())

	events := eventsOf(q, domain.EventRageLevelChanged)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].Index)
	assert.Equal(t, "Aggressive", events[0].Name)
}

func TestAggressionMeter_ZeroTimeGuard(t *testing.T) {
	q := &domain.EventQueue{}
	rage := NewAggressionMeter(config.Default().Rage, q)

	rage.Update(0, 0)
	assert.Zero(t, rage.Rage())
	assert.Empty(t, q.Pending())

	rage.Update(5, 0)
	assert.Equal(t, 100.0, rage.Rage(), "clamped")
	assert.Equal(t, "Berserk", rage.LevelName())
	assert.Equal(t, 1.5, rage.DamageMultiplier())
}

func TestAggressionMeter_LevelDropFiresEvent(t *testing.T) {
	q := &domain.EventQueue{}
	rage := NewAggressionMeter(config.Default().Rage, q)

	rage.Update(50, 60)
	q.Drain()

	rage.Update(50, 600)

	events := eventsOf(q, domain.EventRageLevelChanged)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Index)
	assert.Equal(t, "Calm", events[0].Name)
}

func TestAggressionMeter_SetRageIsSilent(t *testing.T) {
	q := &domain.EventQueue{}
	rage := NewAggressionMeter(config.Default().Rage, q)

	rage.SetRage(150)
	assert.Equal(t, 100.0, rage.Rage())
	assert.Equal(t, 4, rage.Level())

	rage.SetRage(-3)
	assert.Zero(t, rage.Rage())
	assert.Equal(t, 0, rage.Level())
	assert.Empty(t, q.Pending())
}
