package systems

import (
	"maze-core/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepProjectile(t *testing.T) {
	bow := domain.Weapon{Name: "Ice Bow", Damage: 1, Range: 5, Effect: domain.EffectFreeze, Ranged: true, ProjectileSpeed: 10}

	t.Run("stops at wall", func(t *testing.T) {
		world := createTestWorld(10, 10, domain.Tile{X: 3, Y: 1})
		p := SpawnProjectile(domain.Vec2{X: 1.5, Y: 1.5}, 0, bow, 0, true, 3, 0.15)

		StepProjectile(&p, world, 0.1)
		assert.True(t, p.Alive)
		assert.InDelta(t, 2.5, p.Pos.X, 1e-9)

		StepProjectile(&p, world, 0.1)
		assert.False(t, p.Alive)
	})

	t.Run("ttl", func(t *testing.T) {
		world := createTestWorld(10, 10)
		p := SpawnProjectile(domain.Vec2{X: 1.5, Y: 1.5}, 90, bow, 0, true, 0.05, 0.15)
		StepProjectile(&p, world, 0.1)
		assert.False(t, p.Alive)
	})

	t.Run("range limit", func(t *testing.T) {
		world := createTestWorld(30, 3)
		short := bow
		short.Range = 1
		p := SpawnProjectile(domain.Vec2{X: 1.5, Y: 1.5}, 0, short, 0, true, 3, 0.15)

		StepProjectile(&p, world, 0.1)
		StepProjectile(&p, world, 0.1)
		assert.True(t, p.Alive)
		StepProjectile(&p, world, 0.1)
		assert.False(t, p.Alive)
	})
}

func TestSpawnProjectile_CarriesWeapon(t *testing.T) {
	wand := domain.Weapon{Damage: 1, Range: 5, Effect: domain.EffectBurn, DamageType: domain.DamageMagical, ProjectileSpeed: 10}
	p := SpawnProjectile(domain.Vec2{}, 90, wand, 2, true, 3, 0.15)

	assert.Equal(t, 3, p.Damage)
	assert.Equal(t, domain.EffectBurn, p.Effect)
	assert.Equal(t, domain.DamageMagical, p.DamageType)
	assert.InDelta(t, 10, p.Vel.Y, 1e-9)
	assert.InDelta(t, 0, p.Vel.X, 1e-9)
}

func TestHitsCircle(t *testing.T) {
	p := domain.Projectile{Pos: domain.Vec2{X: 1, Y: 1}, Radius: 0.15, Alive: true}
	assert.True(t, HitsCircle(&p, domain.Vec2{X: 1.5, Y: 1}, 0.45))
	assert.False(t, HitsCircle(&p, domain.Vec2{X: 2, Y: 1}, 0.45))

	p.Alive = false
	assert.False(t, HitsCircle(&p, domain.Vec2{X: 1, Y: 1}, 0.45))
}

func TestCompactProjectiles(t *testing.T) {
	ps := []domain.Projectile{
		{Damage: 1, Alive: false},
		{Damage: 2, Alive: true},
		{Damage: 3, Alive: false},
		{Damage: 4, Alive: true},
	}

	ps = CompactProjectiles(ps)

	assert.Len(t, ps, 2)
	var dmg []int
	for _, p := range ps {
		assert.True(t, p.Alive)
		dmg = append(dmg, p.Damage)
	}
	assert.ElementsMatch(t, []int{2, 4}, dmg)
}
