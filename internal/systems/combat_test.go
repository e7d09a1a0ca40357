package systems

import (
	"math"
	"maze-core/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSword = domain.Weapon{Name: "Sword", Damage: 1, Range: 1.5, Cooldown: 0.5, DamageType: domain.DamagePhysical}

func TestInMeleeZone(t *testing.T) {
	p := defaultMeleeParams()
	// range 1.5: inner 1.2, outer 1.8

	tests := []struct {
		name      string
		distance  float64
		deviation float64
		want      bool
	}{
		{"inside inner circle behind the player", 1.19, 180, true},
		{"mid ring inside cone", 1.5, 30, true},
		{"mid ring just outside cone", 1.5, 31, false},
		{"outer radius is exclusive", 1.8, 0, false},
		{"far away", 5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InMeleeZone(tt.distance, tt.deviation, 1.5, p))
		})
	}
}

func TestComputeDamage(t *testing.T) {
	assert.Equal(t, 0, ComputeDamage(2, 1, domain.DamageMagical, domain.DamageMagical))
	assert.Equal(t, 3, ComputeDamage(2, 1, domain.DamagePhysical, domain.DamageMagical))
	assert.Equal(t, 2, ComputeDamage(2, 0, domain.DamageMagical, domain.DamageNone))
}

func TestDamageAgainst_ShieldAbsorbsMatchingHits(t *testing.T) {
	e := newTestEnemy(1, 1)
	e.Shield = 2
	e.ShieldType = domain.DamageMagical

	assert.Equal(t, 0, DamageAgainst(e, 1, 0, domain.DamageMagical))
	assert.Equal(t, 1, DamageAgainst(e, 1, 0, domain.DamagePhysical))
	assert.Equal(t, 0, DamageAgainst(e, 1, 0, domain.DamageMagical))
	assert.Equal(t, 1, DamageAgainst(e, 1, 0, domain.DamageMagical), "shield depleted")
	assert.Zero(t, e.Shield)
}

func TestKnockbackMultiplier_AlwaysClamped(t *testing.T) {
	for d := 0.0; d <= 3; d += 0.1 {
		for _, running := range []bool{false, true} {
			kb := KnockbackMultiplier(d, 1.5, running, 1, 4)
			assert.GreaterOrEqual(t, kb, 1.0)
			assert.LessOrEqual(t, kb, 4.0)
		}
	}

	assert.InDelta(t, 2.0, KnockbackMultiplier(0, 1.5, false, 1, 4), 1e-9)
	assert.InDelta(t, 4.0, KnockbackMultiplier(0, 1.5, true, 1, 4), 1e-9)
	assert.InDelta(t, 1.0, KnockbackMultiplier(1.8, 1.5, false, 1, 4), 1e-9)
}

func TestResolveMelee(t *testing.T) {
	p := defaultMeleeParams()
	origin := domain.Vec2{X: 5.5, Y: 5.5}

	// Центр (6.5, 5.5): дистанция 1.0, внутри inner
	near := domain.NewEnemy(domain.PackEntityID(domain.KindEnemy, 0, 1), domain.Vec2{X: 6.05, Y: 5.05}, 1, 1)
	// Центр (4.0, 5.5): дистанция 1.5, за спиной
	behind := domain.NewEnemy(domain.PackEntityID(domain.KindEnemy, 0, 2), domain.Vec2{X: 3.55, Y: 5.05}, 1, 1)
	// Центр (7.0, 5.5): дистанция 1.5, в конусе
	ahead := domain.NewEnemy(domain.PackEntityID(domain.KindEnemy, 0, 3), domain.Vec2{X: 6.55, Y: 5.05}, 3, 1)

	hits := ResolveMelee(MeleeAttack{Origin: origin, AimAngle: 0, Weapon: testSword}, []*domain.Enemy{near, behind, ahead}, p)

	require.Len(t, hits, 2)

	assert.True(t, near.Health.IsDead)
	assert.InDelta(t, 0.5, near.DeathTimer, 1e-9)
	assert.Equal(t, domain.Vec2{}, near.Knockback, "dead enemies are not pushed")

	assert.False(t, behind.Health.IsDead)

	assert.Equal(t, 2, ahead.Health.HP)
	assert.Greater(t, ahead.Knockback.X, 0.0)
	assert.InDelta(t, 0.2, ahead.HurtTimer, 1e-9)
}

func TestResolveMelee_ResistanceStillPushes(t *testing.T) {
	p := defaultMeleeParams()
	boss := domain.NewEnemy(domain.PackEntityID(domain.KindBoss, 0, 1), domain.Vec2{X: 6.05, Y: 5.05}, 10, 2)
	boss.Resistance = domain.DamagePhysical

	hits := ResolveMelee(MeleeAttack{Origin: domain.Vec2{X: 5.5, Y: 5.5}, Weapon: testSword}, []*domain.Enemy{boss}, p)

	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Damage)
	assert.Equal(t, 10, boss.Health.HP)
	assert.Greater(t, boss.Knockback.Len(), 0.0)
}

func TestResolveMelee_ConeEdgeIsInclusive(t *testing.T) {
	p := defaultMeleeParams()
	origin := domain.Vec2{X: 10.5, Y: 10.5}

	for aim := -180.0; aim < 180; aim += 45 {
		for _, side := range []float64{-30, 30} {
			rad := (aim + side) * math.Pi / 180
			center := domain.Vec2{X: origin.X + 1.5*math.Cos(rad), Y: origin.Y + 1.5*math.Sin(rad)}
			e := domain.NewEnemy(domain.PackEntityID(domain.KindEnemy, 0, 1),
				domain.Vec2{X: center.X - domain.EnemyBoxSize/2, Y: center.Y - domain.EnemyBoxSize/2}, 3, 1)

			hits := ResolveMelee(MeleeAttack{Origin: origin, AimAngle: aim, Weapon: testSword}, []*domain.Enemy{e}, p)
			assert.Len(t, hits, 1, "aim %.0f, edge %+.0f", aim, side)
		}
	}
}

func TestApplyHit_AppliesEffect(t *testing.T) {
	p := defaultMeleeParams()
	e := newTestEnemy(1, 1)

	killed := ApplyHit(e, 1, domain.Vec2{X: 1}, domain.EffectBurn, p)

	assert.False(t, killed)
	assert.Equal(t, domain.EffectBurn, e.Effect)
	assert.InDelta(t, 3.0, e.EffectTimer, 1e-9)
}

func TestDamagePlayer(t *testing.T) {
	newPlayer := func() *domain.Player {
		return domain.NewPlayer(domain.PackEntityID(domain.KindPlayer, 0, 1), domain.Vec2{}, 3, nil)
	}

	t.Run("plain hit grants invincibility", func(t *testing.T) {
		pl := newPlayer()
		res := DamagePlayer(pl, 1, domain.DamagePhysical, 1, 0.3)
		assert.True(t, res.Applied)
		assert.Equal(t, 2, pl.Health.HP)
		assert.Equal(t, 1.0, pl.Invincible)

		res = DamagePlayer(pl, 1, domain.DamagePhysical, 1, 0.3)
		assert.False(t, res.Applied)
		assert.Equal(t, 2, pl.Health.HP)
	})

	t.Run("shield absorbs once", func(t *testing.T) {
		pl := newPlayer()
		pl.Shield = true
		res := DamagePlayer(pl, 1, domain.DamagePhysical, 1, 0.3)
		assert.True(t, res.Absorbed)
		assert.False(t, pl.Shield)
		assert.Equal(t, 3, pl.Health.HP)
	})

	t.Run("armor absorbs matching type only", func(t *testing.T) {
		pl := newPlayer()
		pl.Armor = &domain.Armor{Type: domain.DamageMagical, Durability: 1}

		res := DamagePlayer(pl, 1, domain.DamagePhysical, 0, 0)
		assert.True(t, res.Applied)

		res = DamagePlayer(pl, 1, domain.DamageMagical, 0, 0)
		assert.True(t, res.Absorbed)
		assert.Equal(t, 0, pl.Armor.Durability)
	})

	t.Run("lethal hit", func(t *testing.T) {
		pl := newPlayer()
		res := DamagePlayer(pl, 5, domain.DamagePhysical, 1, 0.3)
		assert.True(t, res.Died)
		assert.True(t, pl.Health.IsDead)
	})
}

func TestContactDamage(t *testing.T) {
	assert.Equal(t, 1, ContactDamage(1, 0.5))
	assert.Equal(t, 1, ContactDamage(0, 2))
	assert.Equal(t, 3, ContactDamage(2, 1.5))
}
