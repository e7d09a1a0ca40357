package domain

import "strings"

// DamageType - тип урона. DamageNone у врага означает "нет сопротивления".
type DamageType uint8

const (
	DamageNone DamageType = iota
	DamagePhysical
	DamageMagical
)

func (d DamageType) String() string {
	switch d {
	case DamagePhysical:
		return "PHYSICAL"
	case DamageMagical:
		return "MAGICAL"
	}
	return "NONE"
}

func ParseDamageType(s string) DamageType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PHYSICAL":
		return DamagePhysical
	case "MAGICAL":
		return DamageMagical
	}
	return DamageNone
}

// WeaponEffect - статус-эффект, накладываемый попаданием.
type WeaponEffect uint8

const (
	EffectNone WeaponEffect = iota
	EffectFreeze
	EffectBurn
	EffectPoison
	EffectSlow
)

var effectNames = [...]string{"NONE", "FREEZE", "BURN", "POISON", "SLOW"}

func (e WeaponEffect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "NONE"
}

func ParseWeaponEffect(s string) WeaponEffect {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range effectNames {
		if name == upper {
			return WeaponEffect(i)
		}
	}
	return EffectNone
}

// IsDamageOverTime - эффекты, наносящие периодический урон.
func (e WeaponEffect) IsDamageOverTime() bool {
	return e == EffectBurn || e == EffectPoison
}

// Weapon - характеристики оружия. Значение, не указатель: оружие не разделяется между сущностями.
type Weapon struct {
	Name            string       `json:"name"`
	Damage          int          `json:"damage"`
	Range           float64      `json:"range"`
	Cooldown        float64      `json:"cooldown"`
	Effect          WeaponEffect `json:"effect"`
	DamageType      DamageType   `json:"damageType"`
	Ranged          bool         `json:"ranged"`
	ProjectileSpeed float64      `json:"projectileSpeed,omitempty"`
}

// Armor поглощает попадания своего типа урона, пока есть прочность.
type Armor struct {
	Type       DamageType `json:"type"`
	Durability int        `json:"durability"`
}

// Absorbs пытается поглотить удар. Возвращает true, если урон заблокирован.
func (a *Armor) Absorbs(incoming DamageType) bool {
	if a == nil || a.Durability <= 0 || a.Type != incoming {
		return false
	}
	a.Durability--
	return true
}
