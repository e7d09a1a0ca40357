package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды клиента.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionIntent
	ActionSave
	ActionRestore
	ActionPause
	ActionResume

	// Отладочные команды
	ActionSetRage
	ActionSetTime
	ActionSpawn
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"INTENT":   ActionIntent,
	"SAVE":     ActionSave,
	"RESTORE":  ActionRestore,
	"PAUSE":    ActionPause,
	"RESUME":   ActionResume,
	"SET_RAGE": ActionSetRage,
	"SET_TIME": ActionSetTime,
	"SPAWN":    ActionSpawn,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:    "INIT",
	ActionIntent:  "INTENT",
	ActionSave:    "SAVE",
	ActionRestore: "RESTORE",
	ActionPause:   "PAUSE",
	ActionResume:  "RESUME",
	ActionSetRage: "SET_RAGE",
	ActionSetTime: "SET_TIME",
	ActionSpawn:   "SPAWN",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
