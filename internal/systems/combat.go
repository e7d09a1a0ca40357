package systems

import (
	"math"
	"maze-core/internal/domain"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MeleeParams - геометрия удара ближнего боя.
type MeleeParams struct {
	InnerFactor      float64 // innerRadius = range * InnerFactor
	OuterFactor      float64 // outerRadius = range * OuterFactor
	ConeHalfAngleDeg float64
	KnockbackMin     float64
	KnockbackMax     float64
	EffectDuration   float64
	HurtFlash        float64
	DeathTime        float64
}

// KnockbackImpulse переводит множитель отбрасывания в скорость (клеток/с).
const KnockbackImpulse = 4.0

// coneEpsilon гасит ошибку округления atan2 на границе конуса.
const coneEpsilon = 1e-9

// MeleeAttack - параметры одного удара.
type MeleeAttack struct {
	Origin              domain.Vec2
	AimAngle            float64
	Weapon              domain.Weapon
	Bonus               int
	Running             bool
	KnockbackMultiplier float64
}

// Hit - результат попадания по одному врагу.
type Hit struct {
	Enemy     *domain.Enemy
	Distance  float64
	Damage    int
	Knockback float64
	Killed    bool
}

// InMeleeZone классифицирует цель: ближе innerRadius - попадание при любом прицеле,
// от inner до outer - только внутри конуса вокруг направления прицела.
func InMeleeZone(distance, angleDeviation, weaponRange float64, p MeleeParams) bool {
	inner := weaponRange * p.InnerFactor
	outer := weaponRange * p.OuterFactor

	if distance < inner {
		return true
	}
	if distance < outer {
		return angleDeviation <= p.ConeHalfAngleDeg+coneEpsilon
	}
	return false
}

// ComputeDamage: база оружия + бонус, ноль при совпадении сопротивления с типом урона.
func ComputeDamage(weaponDamage, bonus int, incoming, resistance domain.DamageType) int {
	if resistance != domain.DamageNone && resistance == incoming {
		return 0
	}
	dmg := weaponDamage + bonus
	if dmg < 0 {
		return 0
	}
	return dmg
}

// DamageAgainst - урон по конкретному врагу: сопротивление, затем щит.
func DamageAgainst(e *domain.Enemy, weaponDamage, bonus int, incoming domain.DamageType) int {
	dmg := ComputeDamage(weaponDamage, bonus, incoming, e.Resistance)
	if dmg > 0 && e.AbsorbShield(incoming) {
		return 0
	}
	return dmg
}

// KnockbackMultiplier = clamp(1 + (1 - d/range), min, max), удваивается на бегу и снова зажимается.
func KnockbackMultiplier(distance, weaponRange float64, running bool, min, max float64) float64 {
	kb := 1 + (1 - distance/math.Max(0.1, weaponRange))
	if running {
		kb *= 2
	}
	return clamp(kb, min, max)
}

// ResolveMelee применяет удар ко всем живым врагам в зоне.
// Возвращает попадания; наступившая смерть отмечается в Hit.Killed.
func ResolveMelee(att MeleeAttack, enemies []*domain.Enemy, p MeleeParams) []Hit {
	var hits []Hit
	outer := att.Weapon.Range * p.OuterFactor

	for _, e := range enemies {
		if !e.IsAlive() {
			continue
		}

		center := e.Center()
		dist := att.Origin.DistanceTo(center)
		if dist >= outer {
			continue
		}

		deviation := domain.AngleDiff(att.Origin.AngleTo(center), att.AimAngle)
		if !InMeleeZone(dist, deviation, att.Weapon.Range, p) {
			continue
		}

		dmg := DamageAgainst(e, att.Weapon.Damage, att.Bonus, att.Weapon.DamageType)
		kb := KnockbackMultiplier(dist, att.Weapon.Range, att.Running, p.KnockbackMin, p.KnockbackMax)
		personal := att.KnockbackMultiplier
		if personal <= 0 {
			personal = 1
		}
		kb *= personal

		dir := domain.Vec2{X: center.X - att.Origin.X, Y: center.Y - att.Origin.Y}.Normalize()
		killed := ApplyHit(e, dmg, dir.Scale(kb*KnockbackImpulse), att.Weapon.Effect, p)

		hits = append(hits, Hit{Enemy: e, Distance: dist, Damage: dmg, Knockback: kb, Killed: killed})
	}

	if len(hits) > 0 {
		logger.Component("combat_system").WithFields(logrus.Fields{
			"weapon": att.Weapon.Name,
			"hits":   len(hits),
			"aim":    att.AimAngle,
		}).Debug("Melee attack resolved")
	}

	return hits
}

// ApplyHit наносит урон, отбрасывание и эффект. Возвращает true, если враг погиб этим ударом.
// Заблокированный сопротивлением удар (0 урона) все равно толкает и мигает.
func ApplyHit(e *domain.Enemy, damage int, knockback domain.Vec2, effect domain.WeaponEffect, p MeleeParams) bool {
	if !e.IsAlive() {
		return false
	}

	e.HurtTimer = p.HurtFlash
	e.Knockback = knockback
	if damage > 0 {
		e.ApplyEffect(effect, p.EffectDuration)
	}

	if e.Health.TakeDamage(damage) {
		e.DeathTimer = p.DeathTime
		e.Knockback = domain.Vec2{}
		return true
	}
	return false
}

// PlayerHitResult - итог попытки ранить игрока.
type PlayerHitResult struct {
	Applied  bool // урон прошел
	Absorbed bool // поглощен броней или щитом
	Died     bool
}

// DamagePlayer - контактный урон или снаряд по игроку. Учитывает неуязвимость, щит и броню.
func DamagePlayer(p *domain.Player, amount int, dtype domain.DamageType, invincibility, hurtFlash float64) PlayerHitResult {
	if p.Invincible > 0 || p.Health.IsDead || amount <= 0 {
		return PlayerHitResult{}
	}

	p.Invincible = invincibility
	p.HurtTimer = hurtFlash

	if p.Shield {
		p.Shield = false
		return PlayerHitResult{Absorbed: true}
	}
	if p.Armor.Absorbs(dtype) {
		return PlayerHitResult{Absorbed: true}
	}

	died := p.Health.TakeDamage(amount)
	return PlayerHitResult{Applied: true, Died: died}
}

// ContactDamage = int(base * rageDamageMultiplier), минимум 1.
func ContactDamage(base int, rageDamageMultiplier float64) int {
	dmg := int(float64(base) * rageDamageMultiplier)
	if dmg < 1 {
		return 1
	}
	return dmg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
