package engine

import (
	"maze-core/internal/domain"
	"maze-core/internal/systems"

	"github.com/sirupsen/logrus"
)

// empRadius - радиус зачистки наградой EMP (боссы не затрагиваются).
const empRadius = 12.0

// movingTrapPush - отбрасывание от блуждающей ловушки, вчетверо слабее удара врага.
const movingTrapPush = systems.KnockbackImpulse / 4

// updateMovingTraps двигает блуждающие ловушки и ранит игрока при касании.
func (s *Session) updateMovingTraps(dt float64) {
	if len(s.Traps) == 0 {
		return
	}

	c := s.tuning.Combat
	params := systems.MovingTrapParams{
		Speed:   c.MovingTrapSpeed,
		MinHold: c.MovingTrapMinHold,
		MaxHold: c.MovingTrapMaxHold,
	}
	p := s.Player

	for _, t := range s.Traps {
		systems.StepMovingTrap(t, s.collider, s.rng, params, dt)
		if p.Health.IsDead || s.over {
			continue
		}

		center := p.Center()
		tc := t.Center()
		if center.DistanceTo(tc) >= c.TrapDistance {
			continue
		}
		if s.hurtPlayer(1, domain.DamagePhysical) {
			p.Knockback = domain.Vec2{X: center.X - tc.X, Y: center.Y - tc.Y}.Normalize().Scale(movingTrapPush)
			s.events.Push(domain.Event{
				Type: domain.EventTrapTriggered,
				Name: domain.KindMovingTrap.String(),
				Pos:  domain.At(t.Pos),
			})
		}
	}
}

// checkInteractions проверяет контакт игрока с объектами карты и дропом.
func (s *Session) checkInteractions() {
	if s.Player.Health.IsDead || s.over {
		return
	}

	if s.level != nil {
		s.interactAll(s.level.World.Objects)
	}
	if s.stream != nil {
		for _, c := range s.stream.LoadedChunks() {
			if c.Grid != nil {
				s.interactAll(c.Grid.Objects)
			}
		}
	}
	s.interactAll(s.Drops)
}

func (s *Session) interactAll(objects []*domain.Entity) {
	center := s.Player.Center()
	for _, o := range objects {
		if !o.Active || s.over {
			continue
		}
		oc := domain.Vec2{X: o.Pos.X + 0.5, Y: o.Pos.Y + 0.5}
		if center.DistanceTo(oc) >= s.reachFor(o.Kind) {
			continue
		}
		s.interact(o)
	}
}

func (s *Session) reachFor(kind domain.EntityKind) float64 {
	c := s.tuning.Combat
	switch kind {
	case domain.KindTrap:
		return c.TrapDistance
	case domain.KindChest:
		return c.ChestDistance
	}
	return c.PotionDistance
}

func (s *Session) interact(o *domain.Entity) {
	p := s.Player

	switch o.Kind {
	case domain.KindTrap:
		// Ловушка остается на месте, повторный урон гасит неуязвимость.
		if s.hurtPlayer(1, domain.DamagePhysical) {
			s.events.Push(domain.Event{Type: domain.EventTrapTriggered, Pos: domain.At(o.Pos)})
		}
		return

	case domain.KindExit:
		if !p.HasKey {
			return
		}
		s.victory()
		return

	case domain.KindChest:
		o.Active = false
		s.openChest(o)
		return

	case domain.KindPotion:
		if p.Health.IsFull() {
			s.score += s.tuning.Combat.PotionFullHealthBonus
		} else {
			p.Health.Heal(1)
		}
		p.Potions++
	case domain.KindKey:
		p.HasKey = true
	case domain.KindCoin:
		amount := max(o.Value, 1)
		p.Coins += amount
	case domain.KindWeaponUpgrade:
		p.WeaponBonus++
	case domain.KindComboExtender:
		s.combo.ExtendDecayTime(s.tuning.Loot.ExtendSeconds)
	case domain.KindArmor:
		// Новая броня заменяет старую целиком.
		s.equipArmor(domain.DamageType(o.Value))
	default:
		return
	}

	o.Active = false
	s.events.Push(domain.Event{Type: domain.EventItemCollected, Name: o.Kind.String(), Pos: domain.At(o.Pos)})
}

func (s *Session) equipArmor(dtype domain.DamageType) {
	durability := s.tuning.Loot.PhysicalArmor
	if dtype == domain.DamageMagical {
		durability = s.tuning.Loot.MagicalArmor
	}
	s.Player.Armor = &domain.Armor{Type: dtype, Durability: durability}
	s.addText(dtype.String()+" ARMOR", s.Player.Center())
}

func (s *Session) openChest(o *domain.Entity) {
	p := s.Player
	ch := s.tuning.Chests
	r := systems.RollChestReward(s.rng, systems.ChestWeights{
		LevelWeapon:        ch.LevelWeapon,
		LevelCoin:          ch.LevelCoin,
		LevelHealth:        ch.LevelHealth,
		LevelInvincibility: ch.LevelInvincibility,
		EndlessMedkit:      ch.EndlessMedkit,
		EndlessSpeed:       ch.EndlessSpeed,
		EndlessRage:        ch.EndlessRage,
		EndlessShield:      ch.EndlessShield,
		EndlessEMP:         ch.EndlessEMP,
	}, s.Mode == ModeSurvival)

	switch r.Kind {
	case systems.RewardWeapon:
		p.WeaponBonus += r.Amount
	case systems.RewardCoins:
		p.Coins += r.Amount
	case systems.RewardHealth:
		p.Health.Heal(r.Amount)
	case systems.RewardInvincibility:
		p.Invincible = max(p.Invincible, r.Duration)
	case systems.RewardMedkit:
		p.Health.Heal(p.Health.MaxHP)
	case systems.RewardSpeed:
		p.SpeedBuff = r.Duration
	case systems.RewardRage:
		p.DamageBuff = r.Duration
	case systems.RewardShield:
		p.Shield = true
	case systems.RewardEMP:
		s.emp()
	}

	s.events.Push(domain.Event{
		Type:   domain.EventChestOpened,
		Name:   r.Kind.String(),
		Amount: r.Amount,
		Value:  r.Duration,
		Pos:    domain.At(o.Pos),
	})
	s.addText(r.Kind.String(), o.Pos)
}

// emp убивает обычных врагов вокруг игрока. Убийства засчитываются.
func (s *Session) emp() {
	mp := s.meleeParams()
	for _, e := range systems.EnemiesWithin(s.Player.Center(), s.Enemies, empRadius) {
		if e.IsBoss() {
			continue
		}
		if systems.ApplyHit(e, e.Health.HP, domain.Vec2{}, domain.EffectNone, mp) {
			s.onEnemyKilled(e)
		}
	}
}

func (s *Session) victory() {
	s.won = true
	s.over = true
	s.events.Push(domain.Event{Type: domain.EventVictory, Name: s.LevelName})
	s.log.WithFields(logrus.Fields{
		"level": s.LevelName,
		"kills": s.kills,
		"coins": s.Player.Coins,
		"time":  s.survivalTime,
	}).Info("Level completed")
}
