package domain

import "encoding/json"

// InternalCommand - команда для движка после разбора action-строки.
type InternalCommand struct {
	Action    ActionType
	SessionID string
	Token     string // Токен клиента (для ответов)
	Payload   json.RawMessage
}

// Intent - намерение игрока на один кадр. Входы ввода приходят только в таком виде.
type Intent struct {
	MoveX, MoveY int
	Running      bool
	Attack       bool
	SwitchWeapon bool
	HasAim       bool
	AimAngle     float64
}
