package systems

import (
	"math"
	"maze-core/internal/domain"
)

// EffectParams - длительности таймеров врага.
type EffectParams struct {
	EffectDuration     float64
	EffectTickInterval float64
	HurtFlash          float64
	DeathTime          float64
}

const (
	// knockbackDamping - доля скорости отбрасывания, теряемая за секунду (линейно по dt).
	knockbackDamping = 8.0
	knockbackEpsilon = 0.05
)

// TimerResult - что произошло с врагом за кадр вне ИИ.
type TimerResult struct {
	DotDamage int
	Died      bool // умер от периодического урона в этом кадре
	Expired   bool // таймер смерти истек, врага можно удалять
}

// UpdateEnemyTimers обновляет независимые таймеры врага каждый кадр, в любом состоянии:
// вспышку урона, отбрасывание, статус-эффект, таймер смерти.
func UpdateEnemyTimers(e *domain.Enemy, c Collider, p EffectParams, dt float64) TimerResult {
	var res TimerResult

	if e.HurtTimer > 0 {
		e.HurtTimer = math.Max(0, e.HurtTimer-dt)
	}

	if !e.IsAlive() {
		e.DeathTimer -= dt
		res.Expired = e.DeathTimer <= 0
		return res
	}

	applyKnockback(&e.Pos, &e.Knockback, e.Size, domain.EnemyBoxPadding, c, dt)

	if e.Effect != domain.EffectNone {
		e.EffectTimer -= dt

		if e.Effect.IsDamageOverTime() && p.EffectTickInterval > 0 {
			e.EffectTick += dt
			for e.EffectTick >= p.EffectTickInterval && e.IsAlive() {
				e.EffectTick -= p.EffectTickInterval
				res.DotDamage++
				if e.Health.TakeDamage(1) {
					res.Died = true
					e.DeathTimer = p.DeathTime
				}
			}
		}

		if e.EffectTimer <= 0 {
			e.Effect = domain.EffectNone
			e.EffectTimer = 0
			e.EffectTick = 0
		}
	}

	return res
}

// applyKnockback сдвигает коробку по скорости отбрасывания и гасит скорость.
// Стена на пути обнуляет отбрасывание.
func applyKnockback(pos *domain.Vec2, vel *domain.Vec2, size, padding float64, c Collider, dt float64) {
	if vel.Len() < knockbackEpsilon {
		*vel = domain.Vec2{}
		return
	}

	next := pos.Add(vel.Scale(dt))
	if CanMoveBoxTo(c, next.X, next.Y, size, size, padding) {
		*pos = next
	} else {
		*vel = domain.Vec2{}
		return
	}

	*vel = vel.Scale(math.Max(0, 1-knockbackDamping*dt))
}

// ApplyPlayerKnockback - то же для игрока.
func ApplyPlayerKnockback(p *domain.Player, c Collider, dt float64) {
	applyKnockback(&p.Pos, &p.Knockback, domain.PlayerBoxSize, domain.PlayerBoxPadding, c, dt)
}
