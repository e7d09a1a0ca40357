package engine

import (
	"errors"
	"fmt"
	"math"
	"maze-core/internal/domain"
	"maze-core/internal/systems"
	"maze-core/pkg/dungeon"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrSnapshotMismatch - снапшот от другой версии формата или другого режима.
var ErrSnapshotMismatch = errors.New("snapshot does not match session")

// Snapshot собирает сохраняемое состояние. Враги, снаряды и таймеры не сохраняются.
func (s *Session) Snapshot() domain.Snapshot {
	p := s.Player
	snap := domain.Snapshot{
		Version:      domain.SnapshotVersion,
		SavedAt:      time.Now().Unix(),
		SessionID:    s.ID,
		Mode:         s.Mode.String(),
		LevelID:      s.LevelName,
		Seed:         s.Seed,
		PlayerX:      p.Pos.X,
		PlayerY:      p.Pos.Y,
		Lives:        p.Health.HP,
		MaxLives:     p.Health.MaxHP,
		WeaponBonus:  p.WeaponBonus,
		HasKey:       p.HasKey,
		SurvivalTime: s.survivalTime,
		TotalKills:   s.kills,
		CurrentCombo: s.combo.Count(),
		MaxCombo:     s.combo.Max(),
		RageLevel:    s.rage.Rage(),
		WaveIndex:    s.waves.CurrentWave(),
		Score:        s.score,
		Coins:        p.Coins,
		Potions:      p.Potions,
	}

	if w, ok := p.CurrentWeapon(); ok {
		snap.EquippedWeapon = w.Name
	}
	for _, w := range p.Weapons {
		snap.UnlockedWeapons = append(snap.UnlockedWeapons, w.Name)
	}
	if p.Armor != nil && p.Armor.Durability > 0 {
		snap.ArmorType = p.Armor.Type.String()
		snap.ArmorDurability = p.Armor.Durability
	}

	if s.stream != nil {
		snap.ChunkX, snap.ChunkY = s.stream.ChunkCoords(p.Pos.X, p.Pos.Y)
		t := p.Pos.Tile()
		snap.Zone = s.gen.ThemeAt(t.X, t.Y).String()
	} else if s.level != nil {
		snap.Zone = s.level.World.Theme.String()
	}
	return snap
}

// Restore загружает снапшот в сессию того же режима. Значения вне допустимых
// диапазонов приводятся к ближайшим корректным, каждое исправление логируется.
// Ярость и волна пересчитываются из времени выживания и убийств.
func (s *Session) Restore(snap domain.Snapshot) error {
	if snap.Version > domain.SnapshotVersion {
		return fmt.Errorf("%w: version %d is newer than %d", ErrSnapshotMismatch, snap.Version, domain.SnapshotVersion)
	}
	if ParseMode(snap.Mode) != s.Mode {
		return fmt.Errorf("%w: mode %q, session is %s", ErrSnapshotMismatch, snap.Mode, s.Mode)
	}

	p := s.Player
	warn := func(field string, got, used any) {
		s.log.WithFields(logrus.Fields{
			"field": field,
			"got":   got,
			"used":  used,
		}).Warn("Snapshot value clamped")
	}

	// Здоровье
	maxLives := snap.MaxLives
	if maxLives < 1 {
		warn("max_lives", maxLives, s.tuning.Combat.PlayerLives)
		maxLives = s.tuning.Combat.PlayerLives
	}
	lives := snap.Lives
	if lives < 1 || lives > maxLives {
		fixed := max(1, min(lives, maxLives))
		warn("lives", lives, fixed)
		lives = fixed
	}
	p.Health = domain.Health{HP: lives, MaxHP: maxLives}

	t := snap.SurvivalTime
	if t < 0 || !finite(t) {
		warn("survival_time", t, 0)
		t = 0
	}

	// Позиция: чанки под ней подгружаются до проверки проходимости
	pos := domain.Vec2{X: snap.PlayerX, Y: snap.PlayerY}
	if s.stream != nil && finite(pos.X) && finite(pos.Y) {
		s.stream.UpdateActiveChunks(pos.X, pos.Y, t)
	}
	if !s.positionValid(pos) {
		fallback := s.spawnPoint()
		warn("player_pos", pos, fallback)
		pos = fallback
		if s.stream != nil {
			s.stream.UpdateActiveChunks(pos.X, pos.Y, t)
		}
	}
	p.Pos = pos
	p.Knockback = domain.Vec2{}

	// Оружие: только известные имена, порядок из снапшота
	known := make(map[string]domain.Weapon, len(p.Weapons))
	for _, w := range s.allWeapons() {
		known[w.Name] = w
	}
	var weapons []domain.Weapon
	for _, name := range snap.UnlockedWeapons {
		if w, ok := known[name]; ok {
			weapons = append(weapons, w)
		} else {
			warn("unlocked_weapons", name, nil)
		}
	}
	if len(weapons) == 0 {
		weapons = s.allWeapons()
	}
	p.Weapons = weapons
	p.WeaponIndex = 0
	for i, w := range weapons {
		if w.Name == snap.EquippedWeapon {
			p.WeaponIndex = i
			break
		}
	}
	if w := weapons[p.WeaponIndex]; w.Name != snap.EquippedWeapon {
		warn("equipped_weapon", snap.EquippedWeapon, w.Name)
	}

	p.Armor = nil
	if snap.ArmorDurability > 0 {
		p.Armor = &domain.Armor{Type: domain.ParseDamageType(snap.ArmorType), Durability: snap.ArmorDurability}
	}

	p.WeaponBonus = nonNegative("weapon_bonus", snap.WeaponBonus, warn)
	p.Coins = nonNegative("coins", snap.Coins, warn)
	p.Potions = nonNegative("potions", snap.Potions, warn)
	p.HasKey = snap.HasKey
	p.Invincible, p.HurtTimer, p.AttackCooldown, p.MoveCooldown = 0, 0, 0, 0
	p.SpeedBuff, p.DamageBuff, p.Shield = 0, 0, false

	// Прогресс
	s.kills = nonNegative("total_kills", snap.TotalKills, warn)
	s.score = nonNegative("score", snap.Score, warn)

	combo := nonNegative("current_combo", snap.CurrentCombo, warn)
	maxCombo := snap.MaxCombo
	if maxCombo < combo {
		warn("max_combo", maxCombo, combo)
		maxCombo = combo
	}
	s.combo.Reset()
	s.combo.SetMax(maxCombo)
	s.combo.SetCurrentCombo(combo)

	s.survivalTime = t
	s.rage.Reset()
	if s.Mode == ModeSurvival {
		s.waves.SetSurvivalTime(t)
		s.rage.Update(s.kills, t)
	}

	// Мир
	s.Projectiles = s.Projectiles[:0]
	s.Drops = s.Drops[:0]
	s.Texts = s.Texts[:0]
	if s.level != nil {
		s.spawnLevelEnemies()
	} else {
		s.Enemies = s.Enemies[:0]
	}
	s.events.Drain()
	s.over, s.won = false, false
	s.lastChunk = s.playerChunk()
	s.mapDirty = true

	s.log.WithFields(logrus.Fields{
		"from":  snap.SessionID,
		"time":  t,
		"kills": s.kills,
		"wave":  s.waves.CurrentWave(),
	}).Info("Snapshot restored")
	return nil
}

func nonNegative(field string, v int, warn func(string, any, any)) int {
	if v < 0 {
		warn(field, v, 0)
		return 0
	}
	return v
}

func (s *Session) positionValid(pos domain.Vec2) bool {
	if !finite(pos.X) || !finite(pos.Y) {
		return false
	}
	return systems.CanMoveBoxTo(s.collider, pos.X, pos.Y, domain.PlayerBoxSize, domain.PlayerBoxSize, domain.PlayerBoxPadding)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *Session) spawnPoint() domain.Vec2 {
	if s.level != nil {
		return s.level.Entry().Vec()
	}
	return s.gen.PlayerSpawn()
}

func (s *Session) allWeapons() []domain.Weapon {
	return dungeon.Weapons(s.tuning.Weapons)
}
