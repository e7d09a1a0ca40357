package domain

// Enemy - враг или босс (различаются тегом Kind).
type Enemy struct {
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Pos  Vec2       `json:"pos"`
	Size float64    `json:"size"`

	Health Health `json:"health"`
	Damage int    `json:"damage"`

	State AIState `json:"state"`

	// Патруль: текущее направление и сколько его еще держать.
	Dir      Tile    `json:"dir"`
	DirTimer float64 `json:"-"`

	MoveCooldown   float64 `json:"-"`
	AttackCooldown float64 `json:"-"` // выстрелы босса
	Knockback      Vec2    `json:"knockback"`

	Effect      WeaponEffect `json:"effect"`
	EffectTimer float64      `json:"-"`
	EffectTick  float64      `json:"-"`

	HurtTimer  float64 `json:"-"`
	DeathTimer float64 `json:"-"`

	AttackType DamageType `json:"attackType"`
	Resistance DamageType `json:"resistance"`

	// Щит уровня: поглощает Shield попаданий типа ShieldType.
	Shield     int        `json:"shield,omitempty"`
	ShieldType DamageType `json:"shieldType,omitempty"`
}

// NewEnemy создает обычного врага в патруле.
func NewEnemy(id EntityID, pos Vec2, hp, damage int) *Enemy {
	return &Enemy{
		ID:         id,
		Kind:       KindEnemy,
		Pos:        pos,
		Size:       EnemyBoxSize,
		Health:     NewHealth(hp),
		Damage:     damage,
		State:      AIStatePatrol,
		AttackType: DamagePhysical,
	}
}

// IsBoss - тег варианта.
func (e *Enemy) IsBoss() bool {
	return e.Kind == KindBoss
}

// IsAlive - живой враг участвует в ИИ и бою. Мертвый ждет DeathTimer и удаляется.
func (e *Enemy) IsAlive() bool {
	return !e.Health.IsDead
}

// Center - центр коробки (для дистанций).
func (e *Enemy) Center() Vec2 {
	return Vec2{X: e.Pos.X + e.Size/2, Y: e.Pos.Y + e.Size/2}
}

// ApplyEffect накладывает эффект, сбрасывая длительность.
func (e *Enemy) ApplyEffect(effect WeaponEffect, duration float64) {
	if effect == EffectNone {
		return
	}
	e.Effect = effect
	e.EffectTimer = duration
	e.EffectTick = 0
}

// AbsorbShield тратит одно очко щита, если тип урона совпадает.
func (e *Enemy) AbsorbShield(incoming DamageType) bool {
	if e.Shield <= 0 || e.ShieldType != incoming {
		return false
	}
	e.Shield--
	return true
}
