package domain

import "strings"

// EntityKind - явный тег варианта сущности вместо иерархии классов.
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindEnemy
	KindBoss
	KindTrap
	KindChest
	KindPotion
	KindKey
	KindExit
	KindCoin
	KindWeaponUpgrade
	KindComboExtender
	KindProjectile
	KindArmor
	KindMovingTrap
)

var kindToString = map[EntityKind]string{
	KindPlayer:        "PLAYER",
	KindEnemy:         "ENEMY",
	KindBoss:          "BOSS",
	KindTrap:          "TRAP",
	KindChest:         "CHEST",
	KindPotion:        "POTION",
	KindKey:           "KEY",
	KindExit:          "EXIT",
	KindCoin:          "COIN",
	KindWeaponUpgrade: "WEAPON_UPGRADE",
	KindComboExtender: "COMBO_EXTENDER",
	KindProjectile:    "PROJECTILE",
	KindArmor:         "ARMOR",
	KindMovingTrap:    "MOVING_TRAP",
}

func (k EntityKind) String() string {
	if s, ok := kindToString[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseKind - обратное преобразование (для дебаг-эндпоинтов).
func ParseKind(s string) EntityKind {
	upper := strings.ToUpper(s)
	for k, v := range kindToString {
		if v == upper {
			return k
		}
	}
	return KindUnknown
}

// IsPickup - подбираемый предмет (исчезает при контакте).
func (k EntityKind) IsPickup() bool {
	switch k {
	case KindPotion, KindKey, KindCoin, KindWeaponUpgrade, KindComboExtender, KindArmor:
		return true
	}
	return false
}

// Entity - статический нестеновой объект мира: ловушка, сундук, предмет, ключ, выход.
// Враги и игрок - отдельные структуры (Enemy, Player) с тем же тегом Kind.
type Entity struct {
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Pos  Vec2       `json:"pos"`

	// Active = false: сундук открыт, предмет подобран.
	Active bool `json:"active"`

	// Value - количество монет, тип урона брони и т.п.
	Value int `json:"value,omitempty"`
}

// NewEntity создает активный объект.
func NewEntity(id EntityID, kind EntityKind, pos Vec2) *Entity {
	return &Entity{ID: id, Kind: kind, Pos: pos, Active: true}
}
