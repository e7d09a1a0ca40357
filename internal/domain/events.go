package domain

import "strings"

// EventType - внутренний числовой идентификатор события симуляции.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventEnemyKilled
	EventPlayerDamaged
	EventComboIncreased
	EventComboReset
	EventComboMilestone
	EventRageLevelChanged
	EventWaveChanged
	EventSpawnEnemyRequested
	EventSpawnBossRequested
	EventVictory
	EventGameOver
	EventChunkGenerated
	EventLootDropped
	EventChestOpened
	EventItemCollected
	EventTrapTriggered
	EventWeaponSwitched
)

// Маппинг для логов и протокола Domain -> String
var eventTypeToString = map[EventType]string{
	EventEnemyKilled:         "ENEMY_KILLED",
	EventPlayerDamaged:       "PLAYER_DAMAGED",
	EventComboIncreased:      "COMBO_INCREASED",
	EventComboReset:          "COMBO_RESET",
	EventComboMilestone:      "COMBO_MILESTONE",
	EventRageLevelChanged:    "RAGE_LEVEL_CHANGED",
	EventWaveChanged:         "WAVE_CHANGED",
	EventSpawnEnemyRequested: "SPAWN_ENEMY_REQUESTED",
	EventSpawnBossRequested:  "SPAWN_BOSS_REQUESTED",
	EventVictory:             "VICTORY",
	EventGameOver:            "GAME_OVER",
	EventChunkGenerated:      "CHUNK_GENERATED",
	EventLootDropped:         "LOOT_DROPPED",
	EventChestOpened:         "CHEST_OPENED",
	EventItemCollected:       "ITEM_COLLECTED",
	EventTrapTriggered:       "TRAP_TRIGGERED",
	EventWeaponSwitched:      "WEAPON_SWITCHED",
}

// ParseEvent конвертирует строку в EventType (регистр не важен).
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	for k, v := range eventTypeToString {
		if v == upper {
			return k
		}
	}
	return EventUnknown
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - дискретное событие для рендера/HUD/аудио.
// Поля используются в зависимости от типа:
//
//	COMBO_INCREASED:    Count=комбо, Value=множитель
//	COMBO_RESET:        Count=сгоревшее комбо
//	COMBO_MILESTONE:    Count=порог, Name=надпись
//	RAGE_LEVEL_CHANGED: Index=уровень, Name=название, Value=ярость
//	WAVE_CHANGED:       Index=волна, Value=интервал спавна, Extra=множитель здоровья
//	ENEMY_KILLED:       Count=всего убийств, Pos, Name=вид
//	PLAYER_DAMAGED:     Amount=урон, Count=осталось жизней
//	GAME_OVER:          Count=убийств
//	VICTORY:            Name=уровень
//	CHUNK_GENERATED:    Index=cx, Count=cy, Name=тема, Pos=угол чанка
type Event struct {
	Type   EventType `json:"type" msgpack:"type"`
	Frame  uint64    `json:"frame" msgpack:"frame"`
	Count  int       `json:"count,omitempty" msgpack:"count,omitempty"`
	Index  int       `json:"index,omitempty" msgpack:"index,omitempty"`
	Amount int       `json:"amount,omitempty" msgpack:"amount,omitempty"`
	Value  float64   `json:"value,omitempty" msgpack:"value,omitempty"`
	Extra  float64   `json:"extra,omitempty" msgpack:"extra,omitempty"`
	Name   string    `json:"name,omitempty" msgpack:"name,omitempty"`
	Pos    *Vec2     `json:"pos,omitempty" msgpack:"pos,omitempty"`
}

// EventSink - то, куда подсистемы складывают события во время Update.
type EventSink interface {
	Push(Event)
}

// EventQueue - исходящая очередь кадра. Заполняется во время шага,
// вычитывается один раз после него (Drain).
type EventQueue struct {
	frame  uint64
	events []Event
}

// SetFrame задает номер кадра, которым штампуются новые события.
func (q *EventQueue) SetFrame(frame uint64) {
	q.frame = frame
}

func (q *EventQueue) Push(e Event) {
	e.Frame = q.frame
	q.events = append(q.events, e)
}

// Drain возвращает накопленные события и очищает очередь.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

// Pending - события без очистки (только чтение).
func (q *EventQueue) Pending() []Event {
	return q.events
}

// At - позиция события.
func At(v Vec2) *Vec2 {
	return &v
}
