package domain

// Player - состояние игрока. Жизни хранятся в Health.
type Player struct {
	ID  EntityID `json:"id"`
	Pos Vec2     `json:"pos"`

	Health Health `json:"health"`
	Armor  *Armor `json:"armor,omitempty"`

	Invincible     float64 `json:"invincible"`
	AttackCooldown float64 `json:"attackCooldown"`
	HurtTimer      float64 `json:"hurtTimer"`
	MoveCooldown   float64 `json:"-"`

	Running  bool    `json:"running"`
	AimAngle float64 `json:"aimAngle"`
	Facing   Tile    `json:"facing"`

	Weapons     []Weapon `json:"weapons"`
	WeaponIndex int      `json:"weaponIndex"`
	WeaponBonus int      `json:"weaponBonus"`

	KnockbackMultiplier float64 `json:"knockbackMultiplier"`
	Knockback           Vec2    `json:"knockback"`

	HasKey  bool `json:"hasKey"`
	Coins   int  `json:"coins"`
	Potions int  `json:"potions"`

	// Временные баффы из сундуков бесконечного режима.
	SpeedBuff  float64 `json:"speedBuff,omitempty"`
	DamageBuff float64 `json:"damageBuff,omitempty"`
	Shield     bool    `json:"shield,omitempty"`
}

// NewPlayer создает игрока с полным здоровьем и первым оружием в руках.
func NewPlayer(id EntityID, pos Vec2, lives int, weapons []Weapon) *Player {
	return &Player{
		ID:                  id,
		Pos:                 pos,
		Health:              NewHealth(lives),
		Facing:              Tile{X: 1},
		Weapons:             weapons,
		KnockbackMultiplier: 1,
	}
}

// CurrentWeapon возвращает экипированное оружие. ok=false, если арсенал пуст.
func (p *Player) CurrentWeapon() (Weapon, bool) {
	if p.WeaponIndex < 0 || p.WeaponIndex >= len(p.Weapons) {
		return Weapon{}, false
	}
	return p.Weapons[p.WeaponIndex], true
}

// SwitchWeapon переключает на следующее оружие по кругу.
func (p *Player) SwitchWeapon() {
	if len(p.Weapons) == 0 {
		return
	}
	p.WeaponIndex = (p.WeaponIndex + 1) % len(p.Weapons)
}

// Center - центр клетки игрока.
func (p *Player) Center() Vec2 {
	return Vec2{X: p.Pos.X + 0.5, Y: p.Pos.Y + 0.5}
}

// DamageBonus: постоянный бонус оружия + временный бафф ярости.
func (p *Player) DamageBonus() int {
	bonus := p.WeaponBonus
	if p.DamageBuff > 0 {
		bonus++
	}
	return bonus
}
