package engine

import (
	"math"
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"maze-core/pkg/dungeon"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_LevelRoundTrip(t *testing.T) {
	place := func(b *dungeon.LevelBuilder) {
		b.Place(7, 6, domain.ObjectEnemy)
	}
	src := newTestLevelSession(place)
	src.Step(stepDt, move(1, 0))

	p := src.Player
	p.Coins = 12
	p.WeaponBonus = 2
	p.HasKey = true
	p.WeaponIndex = 2
	p.Health.HP = 2
	p.Armor = &domain.Armor{Type: domain.DamageMagical, Durability: 3}
	src.kills = 9
	src.score = 1234

	snap := src.Snapshot()
	assert.Equal(t, domain.SnapshotVersion, snap.Version)
	assert.Equal(t, "level", snap.Mode)
	assert.Equal(t, "test_level", snap.LevelID)
	assert.Equal(t, "Crossbow", snap.EquippedWeapon)
	assert.Len(t, snap.UnlockedWeapons, 4)
	assert.Equal(t, "MAGICAL", snap.ArmorType)

	dst := newTestLevelSession(place)
	dst.Step(stepDt, move(1, 0))
	dst.Step(stepDt, move(1, 0))
	require.NoError(t, dst.Restore(snap))

	q := dst.Player
	assert.Equal(t, domain.Vec2{X: 3, Y: 2}, q.Pos)
	assert.Equal(t, 2, q.Health.HP)
	assert.Equal(t, 12, q.Coins)
	assert.Equal(t, 2, q.WeaponBonus)
	assert.True(t, q.HasKey)
	assert.Equal(t, 2, q.WeaponIndex)
	require.NotNil(t, q.Armor)
	assert.Equal(t, 3, q.Armor.Durability)
	assert.Equal(t, 9, dst.Kills())
	assert.Equal(t, 1234, dst.Score())

	// Враги уровня пересоздаются с нуля
	require.Len(t, dst.Enemies, 1)
	assert.Equal(t, domain.Vec2{X: 7, Y: 6}, dst.Enemies[0].Pos)
	assert.True(t, dst.ConsumeMapDirty())
}

func TestSnapshot_RestoreClampsValues(t *testing.T) {
	s := newTestLevelSession(nil)
	snap := s.Snapshot()

	snap.MaxLives = 0
	snap.Lives = 99
	snap.Coins = -5
	snap.Score = -1
	snap.TotalKills = -3
	snap.CurrentCombo = 7
	snap.MaxCombo = 2
	snap.PlayerX = 0 // рамка
	snap.PlayerY = 0
	snap.UnlockedWeapons = []string{"Sword", "Banana"}
	snap.EquippedWeapon = "Banana"

	require.NoError(t, s.Restore(snap))

	p := s.Player
	lives := config.Default().Combat.PlayerLives
	assert.Equal(t, lives, p.Health.MaxHP)
	assert.Equal(t, lives, p.Health.HP)
	assert.Equal(t, 0, p.Coins)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Kills())
	assert.Equal(t, 7, s.Combo().Count())
	assert.Equal(t, 7, s.Combo().Max())
	assert.Equal(t, s.Level().Entry().Vec(), p.Pos)

	require.Len(t, p.Weapons, 1)
	assert.Equal(t, "Sword", p.Weapons[0].Name)
	assert.Equal(t, 0, p.WeaponIndex)
}

func TestSnapshot_RestoreRejectsMismatch(t *testing.T) {
	level := newTestLevelSession(nil)
	survival := NewSurvivalSession("survival", 3, config.Default())

	err := level.Restore(survival.Snapshot())
	assert.ErrorIs(t, err, ErrSnapshotMismatch)

	snap := level.Snapshot()
	snap.Version = domain.SnapshotVersion + 1
	assert.ErrorIs(t, level.Restore(snap), ErrSnapshotMismatch)
}

func TestSnapshot_SurvivalRecomputesDifficulty(t *testing.T) {
	src := NewSurvivalSession("survival", 11, config.Default())
	snap := src.Snapshot()
	snap.SurvivalTime = 300
	snap.TotalKills = 40
	snap.RageLevel = 99 // игнорируется: ярость считается из убийств и времени
	snap.WaveIndex = 0

	dst := NewSurvivalSession("restored", 11, config.Default())
	require.NoError(t, dst.Restore(snap))

	assert.Equal(t, 300.0, dst.SurvivalTime())
	assert.Equal(t, 2, dst.Waves().CurrentWave())
	assert.Empty(t, dst.Enemies)
	assert.True(t, dst.positionValid(dst.Player.Pos))

	fresh := NewSurvivalSession("fresh", 11, config.Default())
	fresh.rage.Update(40, 300)
	assert.InDelta(t, fresh.Rage().Rage(), dst.Rage().Rage(), 1e-9)
}

func TestSnapshot_RestoreNonFiniteValues(t *testing.T) {
	s := NewSurvivalSession("survival", 5, config.Default())
	snap := s.Snapshot()
	snap.SurvivalTime = math.NaN()
	snap.PlayerX = math.Inf(1)

	require.NoError(t, s.Restore(snap))
	assert.Equal(t, 0.0, s.SurvivalTime())
	assert.True(t, s.positionValid(s.Player.Pos))
}
