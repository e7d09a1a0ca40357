package engine

import (
	"math"
	"maze-core/internal/domain"
	"maze-core/internal/systems"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	// speedBuffFactor - во сколько раз бафф скорости сокращает задержку шага.
	speedBuffFactor = 1.5
	textTTL         = 1.0
)

func (s *Session) updatePlayerTimers(dt float64) {
	p := s.Player
	p.Invincible = math.Max(0, p.Invincible-dt)
	p.AttackCooldown = math.Max(0, p.AttackCooldown-dt)
	p.HurtTimer = math.Max(0, p.HurtTimer-dt)
	p.MoveCooldown = math.Max(0, p.MoveCooldown-dt)
	p.SpeedBuff = math.Max(0, p.SpeedBuff-dt)
	p.DamageBuff = math.Max(0, p.DamageBuff-dt)

	systems.ApplyPlayerKnockback(p, s.collider, dt)
}

func (s *Session) handleInput(in domain.Intent) {
	p := s.Player
	if p.Health.IsDead {
		return
	}

	p.Running = in.Running
	if in.MoveX != 0 || in.MoveY != 0 {
		p.Facing = domain.Tile{X: in.MoveX, Y: in.MoveY}
	}
	if in.HasAim {
		p.AimAngle = in.AimAngle
	} else if in.MoveX != 0 || in.MoveY != 0 {
		p.AimAngle = math.Atan2(float64(in.MoveY), float64(in.MoveX)) * 180 / math.Pi
	}

	s.movePlayer(in.MoveX, in.MoveY)

	if in.SwitchWeapon && len(p.Weapons) > 1 {
		p.SwitchWeapon()
		w, _ := p.CurrentWeapon()
		s.events.Push(domain.Event{Type: domain.EventWeaponSwitched, Index: p.WeaponIndex, Name: w.Name})
	}

	if in.Attack {
		s.playerAttack()
	}
}

// movePlayer - пошаговое движение на клетку с задержкой. Диагональ, упершаяся
// в стену, скользит вдоль одной из осей.
func (s *Session) movePlayer(dx, dy int) {
	p := s.Player
	if (dx == 0 && dy == 0) || p.MoveCooldown > 0 {
		return
	}

	res := systems.CalculateMove(p.Pos, domain.PlayerBoxSize, domain.PlayerBoxPadding, dx, dy, s.collider)
	if !res.HasMoved && dx != 0 && dy != 0 {
		res = systems.CalculateMove(p.Pos, domain.PlayerBoxSize, domain.PlayerBoxPadding, dx, 0, s.collider)
		if !res.HasMoved {
			res = systems.CalculateMove(p.Pos, domain.PlayerBoxSize, domain.PlayerBoxPadding, 0, dy, s.collider)
		}
	}
	if !res.HasMoved {
		return
	}

	p.Pos = res.NewPos
	cd := s.tuning.Combat.WalkCooldown
	if p.Running {
		cd = s.tuning.Combat.RunCooldown
	}
	if p.SpeedBuff > 0 {
		cd /= speedBuffFactor
	}
	p.MoveCooldown = cd
}

func (s *Session) playerAttack() {
	p := s.Player
	if p.AttackCooldown > 0 {
		return
	}
	w, ok := p.CurrentWeapon()
	if !ok {
		return
	}

	cd := w.Cooldown
	if p.DamageBuff > 0 {
		cd /= 2
	}
	p.AttackCooldown = cd

	if w.Ranged {
		c := s.tuning.Combat
		pr := systems.SpawnProjectile(p.Center(), p.AimAngle, w, p.DamageBonus(), true, c.ProjectileTTL, c.ProjectileRadius)
		s.Projectiles = append(s.Projectiles, pr)
		return
	}

	hits := systems.ResolveMelee(systems.MeleeAttack{
		Origin:              p.Center(),
		AimAngle:            p.AimAngle,
		Weapon:              w,
		Bonus:               p.DamageBonus(),
		Running:             p.Running,
		KnockbackMultiplier: p.KnockbackMultiplier,
	}, s.Enemies, s.meleeParams())

	for _, h := range hits {
		s.addText(damageText(h.Damage), h.Enemy.Center())
		if h.Killed {
			s.onEnemyKilled(h.Enemy)
		}
	}
}

// hurtPlayer - единая точка урона по игроку (контакт, ловушка, снаряд босса).
func (s *Session) hurtPlayer(amount int, dtype domain.DamageType) bool {
	p := s.Player
	c := s.tuning.Combat
	res := systems.DamagePlayer(p, amount, dtype, c.InvincibilityTime, c.PlayerHurtFlash)
	if res.Absorbed {
		s.addText("BLOCK", p.Center())
		return false
	}
	if !res.Applied {
		return false
	}

	s.events.Push(domain.Event{
		Type:   domain.EventPlayerDamaged,
		Amount: amount,
		Count:  p.Health.HP,
		Pos:    domain.At(p.Pos),
	})
	s.addText(damageText(amount), p.Center())

	if res.Died {
		s.gameOver()
	}
	return true
}

func (s *Session) gameOver() {
	s.over = true
	s.events.Push(domain.Event{Type: domain.EventGameOver, Count: s.kills})
	s.log.WithFields(logrus.Fields{
		"kills":         s.kills,
		"score":         s.score,
		"survival_time": s.survivalTime,
		"max_combo":     s.combo.Max(),
	}).Info("Game over")
}

func (s *Session) addText(text string, at domain.Vec2) {
	s.Texts = append(s.Texts, domain.FloatingText{Text: text, Pos: at, TTL: textTTL})
}

func damageText(amount int) string {
	if amount <= 0 {
		return "0"
	}
	return "-" + strconv.Itoa(amount)
}
