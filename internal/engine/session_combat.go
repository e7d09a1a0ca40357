package engine

import (
	"maze-core/internal/domain"
	"maze-core/internal/systems"

	"github.com/sirupsen/logrus"
)

// Выстрелы босса.
const (
	bossFireInterval    = 2.0
	bossFireRange       = 8.0
	bossProjectileSpeed = 6.0
	bossScoreFactor     = 10
)

func (s *Session) meleeParams() systems.MeleeParams {
	c := s.tuning.Combat
	return systems.MeleeParams{
		InnerFactor:      c.InnerRadiusFactor,
		OuterFactor:      c.OuterRadiusFactor,
		ConeHalfAngleDeg: c.ConeHalfAngleDeg,
		KnockbackMin:     c.KnockbackMin,
		KnockbackMax:     c.KnockbackMax,
		EffectDuration:   c.EffectDuration,
		HurtFlash:        c.EnemyHurtFlash,
		DeathTime:        c.EnemyDeathTime,
	}
}

func (s *Session) effectParams() systems.EffectParams {
	c := s.tuning.Combat
	return systems.EffectParams{
		EffectDuration:     c.EffectDuration,
		EffectTickInterval: c.EffectTickInterval,
		HurtFlash:          c.EnemyHurtFlash,
		DeathTime:          c.EnemyDeathTime,
	}
}

func (s *Session) aiContext() systems.AIContext {
	c := s.tuning.Combat
	ctx := systems.AIContext{
		Target:          s.Player.Pos,
		Collider:        s.collider,
		Safe:            s.safe,
		OpenWorld:       s.Mode == ModeSurvival,
		SpeedMultiplier: 1,
		Rng:             s.rng,
		Params: systems.AIParams{
			DetectionRadius: c.DetectionRadius,
			PatrolCooldown:  c.PatrolCooldown,
			ChaseCooldown:   c.ChaseCooldown,
			PatrolMinHold:   c.PatrolMinHold,
			PatrolMaxHold:   c.PatrolMaxHold,
		},
	}
	if s.Mode == ModeSurvival {
		ctx.SpeedMultiplier = s.rage.SpeedMultiplier()
	}
	return ctx
}

func (s *Session) updateEnemies(dt float64) {
	ctx := s.aiContext()
	ep := s.effectParams()

	for _, e := range s.Enemies {
		res := systems.UpdateEnemyTimers(e, s.collider, ep, dt)
		if res.DotDamage > 0 {
			s.addText(damageText(res.DotDamage), e.Center())
		}
		if res.Died {
			s.onEnemyKilled(e)
			continue
		}
		if !e.IsAlive() {
			continue
		}

		systems.UpdateEnemy(e, ctx, dt)

		if e.IsBoss() {
			s.bossFire(e, dt)
		}
	}
}

// bossFire: босс стреляет магическим снарядом, если видит игрока на дистанции.
func (s *Session) bossFire(e *domain.Enemy, dt float64) {
	e.AttackCooldown -= dt
	if e.AttackCooldown > 0 {
		return
	}

	from := e.Center()
	to := s.Player.Center()
	if from.DistanceTo(to) > bossFireRange {
		return
	}
	if !systems.HasLineOfSight(s.collider, from.Tile(), to.Tile()) {
		return
	}

	e.AttackCooldown = bossFireInterval
	w := domain.Weapon{
		Name:            "Boss Orb",
		Damage:          e.Damage,
		Range:           bossFireRange,
		DamageType:      domain.DamageMagical,
		Ranged:          true,
		ProjectileSpeed: bossProjectileSpeed,
	}
	c := s.tuning.Combat
	s.Projectiles = append(s.Projectiles, systems.SpawnProjectile(from, from.AngleTo(to), w, 0, false, c.ProjectileTTL, c.ProjectileRadius))
}

// updateContactDamage: живой враг, подошедший вплотную, ранит и отталкивает игрока.
// Порог контакта растет с размером коробки врага.
func (s *Session) updateContactDamage() {
	p := s.Player
	if p.Health.IsDead || p.Invincible > 0 {
		return
	}

	mult := 1.0
	if s.Mode == ModeSurvival {
		mult = s.rage.DamageMultiplier()
	}
	base := s.tuning.Combat.ContactDistance
	center := p.Center()

	for _, e := range s.Enemies {
		if !e.IsAlive() {
			continue
		}
		threshold := base + (e.Size-domain.EnemyBoxSize)/2
		if center.DistanceTo(e.Center()) >= threshold {
			continue
		}

		if s.hurtPlayer(systems.ContactDamage(e.Damage, mult), e.AttackType) {
			dir := domain.Vec2{X: center.X - e.Center().X, Y: center.Y - e.Center().Y}.Normalize()
			p.Knockback = dir.Scale(systems.KnockbackImpulse)
		}
		return
	}
}

func (s *Session) updateProjectiles(dt float64) {
	p := s.Player
	mp := s.meleeParams()

	for i := range s.Projectiles {
		pr := &s.Projectiles[i]
		systems.StepProjectile(pr, s.collider, dt)
		if !pr.Alive {
			continue
		}

		if !pr.FromPlayer {
			if systems.HitsCircle(pr, p.Center(), domain.PlayerBoxSize/2) {
				pr.Alive = false
				s.hurtPlayer(pr.Damage, pr.DamageType)
			}
			continue
		}

		for _, e := range s.Enemies {
			if !e.IsAlive() || !systems.HitsCircle(pr, e.Center(), e.Size/2) {
				continue
			}
			pr.Alive = false

			dmg := systems.DamageAgainst(e, pr.Damage, 0, pr.DamageType)
			push := pr.Vel.Normalize().Scale(systems.KnockbackImpulse)
			s.addText(damageText(dmg), e.Center())
			if systems.ApplyHit(e, dmg, push, pr.Effect, mp) {
				s.onEnemyKilled(e)
			}
			break
		}
	}
}

// onEnemyKilled: счетчик убийств, комбо, очки с множителем комбо и дроп.
func (s *Session) onEnemyKilled(e *domain.Enemy) {
	s.kills++
	s.combo.OnKill()

	gain := int(float64(s.tuning.Endless.ScorePerKill) * s.combo.Multiplier())
	if e.IsBoss() {
		gain *= bossScoreFactor
	}
	s.score += gain

	at := e.Center()
	s.events.Push(domain.Event{
		Type:   domain.EventEnemyKilled,
		Count:  s.kills,
		Amount: gain,
		Name:   e.Kind.String(),
		Pos:    domain.At(at),
	})

	drops := s.rollLoot()
	for _, d := range drops {
		item := domain.NewEntity(s.ids.Next(d.Kind, e.ID.Zone()), d.Kind, at)
		switch d.Kind {
		case domain.KindCoin:
			item.Value = d.Amount
		case domain.KindArmor:
			item.Value = int(d.Armor)
		}
		s.Drops = append(s.Drops, item)
		s.events.Push(domain.Event{Type: domain.EventLootDropped, Name: d.Kind.String(), Amount: d.Amount, Pos: domain.At(at)})
	}

	s.log.WithFields(logrus.Fields{
		"enemy": e.ID.String(),
		"kills": s.kills,
		"combo": s.combo.Count(),
		"drops": len(drops),
	}).Debug("Enemy killed")
}

// rollLoot выбирает таблицу дропа по режиму.
func (s *Session) rollLoot() []systems.LootDrop {
	l := s.tuning.Loot
	if s.Mode == ModeLevel {
		return systems.RollLevelLoot(s.rng, systems.LevelLootTable{
			Nothing: l.LevelNothing,
			Armor:   l.LevelArmor,
			Weapon:  l.LevelWeapon,
			Potion:  l.LevelPotion,
			CoinMin: l.LevelCoinMin,
			CoinMax: l.LevelCoinMax,
		}, s.levelNum)
	}

	kinds := systems.RollLoot(s.rng, systems.LootTable{
		HealthPotion:  l.HealthPotion,
		WeaponUpgrade: l.WeaponUpgrade,
		ComboExtender: l.ComboExtender,
	})
	drops := make([]systems.LootDrop, 0, len(kinds))
	for _, k := range kinds {
		drops = append(drops, systems.LootDrop{Kind: k})
	}
	return drops
}
