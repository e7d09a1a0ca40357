package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// UPDATE уходит после каждого кадра симуляции, INIT - полный снимок со стенами.
type ServerResponse struct {
	// Type тип сообщения: INIT, UPDATE, SAVED, ERROR.
	Type string `json:"type"`

	// Frame номер кадра симуляции сессии.
	Frame uint64 `json:"frame"`

	SessionID string `json:"sessionId,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Paused    bool   `json:"paused,omitempty"`
	GameOver  bool   `json:"gameOver,omitempty"`
	Victory   bool   `json:"victory,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Walls только в полных снимках (INIT и после подгрузки чанков).
	Walls []WallView `json:"walls,omitempty"`

	Player      *PlayerView      `json:"player,omitempty"`
	Enemies     []EnemyView      `json:"enemies,omitempty"`
	Projectiles []ProjectileView `json:"projectiles,omitempty"`
	Objects     []ObjectView     `json:"objects,omitempty"`
	Texts       []TextView       `json:"texts,omitempty"`
	Difficulty  *DifficultyView  `json:"difficulty,omitempty"`

	// Events дискретные события кадра (HUD, звук, эффекты).
	Events []EventView `json:"events,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`

	// Snapshot - имя файла сохранения (для SAVED).
	Snapshot string `json:"snapshot,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты.
type GridMeta struct {
	Width     int    `json:"w"`
	Height    int    `json:"h"`
	ChunkSize int    `json:"chunkSize,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// WallView - один сегмент стены.
type WallView struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	W      int  `json:"w"`
	H      int  `json:"h"`
	TypeID int  `json:"typeId"`
	Border bool `json:"border,omitempty"`
}

// PlayerView - состояние игрока, видимое владельцу сессии.
type PlayerView struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Lives       int     `json:"lives"`
	MaxLives    int     `json:"maxLives"`
	Invincible  bool    `json:"invincible,omitempty"`
	Hurt        bool    `json:"hurt,omitempty"`
	Running     bool    `json:"running,omitempty"`
	AimAngle    float64 `json:"aimAngle"`
	Weapon      string  `json:"weapon"`
	Weapons     int     `json:"weapons"`
	WeaponBonus int     `json:"weaponBonus,omitempty"`
	Coins       int     `json:"coins"`
	Potions     int     `json:"potions,omitempty"`
	HasKey      bool    `json:"hasKey,omitempty"`
	Shield      bool    `json:"shield,omitempty"`
	Armor       string  `json:"armor,omitempty"`
}

// EnemyView - DTO врага или босса.
type EnemyView struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	HP     int     `json:"hp"`
	MaxHP  int     `json:"maxHp"`
	State  string  `json:"state"`
	Effect string  `json:"effect,omitempty"`
	Shield int     `json:"shield,omitempty"`
	Hurt   bool    `json:"hurt,omitempty"`
	IsDead bool    `json:"isDead,omitempty"`
}

type ProjectileView struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FromPlayer bool    `json:"fromPlayer"`
	Effect     string  `json:"effect,omitempty"`
}

// ObjectView - ловушка, сундук, предмет, ключ, выход.
type ObjectView struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// TextView - всплывающая надпись ("-1", "GREAT!").
type TextView struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DifficultyView - показатели HUD бесконечного режима.
type DifficultyView struct {
	SurvivalTime    float64 `json:"survivalTime"`
	Kills           int     `json:"kills"`
	Score           int     `json:"score"`
	Combo           int     `json:"combo"`
	MaxCombo        int     `json:"maxCombo"`
	ComboMultiplier float64 `json:"comboMultiplier"`
	ComboTier       string  `json:"comboTier,omitempty"`
	ComboTimeLeft   float64 `json:"comboTimeLeft,omitempty"`
	Rage            float64 `json:"rage"`
	RageLevel       int     `json:"rageLevel"`
	RageName        string  `json:"rageName"`
	Wave            int     `json:"wave"`
	NextBossIn      float64 `json:"nextBossIn"`
	Enemies         int     `json:"enemies"`
	LoadedChunks    int     `json:"loadedChunks,omitempty"`
}

// EventView - событие кадра в протоколе.
type EventView struct {
	Type   string   `json:"type"`
	Frame  uint64   `json:"frame"`
	Count  int      `json:"count,omitempty"`
	Index  int      `json:"index,omitempty"`
	Amount int      `json:"amount,omitempty"`
	Value  float64  `json:"value,omitempty"`
	Extra  float64  `json:"extra,omitempty"`
	Name   string   `json:"name,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, LOOT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// SessionSummary - строка списка сессий (/sessions).
type SessionSummary struct {
	ID           string  `json:"id"`
	Mode         string  `json:"mode"`
	Level        string  `json:"level,omitempty"`
	Frame        uint64  `json:"frame"`
	Paused       bool    `json:"paused"`
	Finished     bool    `json:"finished"`
	SurvivalTime float64 `json:"survivalTime"`
	Enemies      int     `json:"enemies"`
	Subscribers  int     `json:"subscribers"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор подключения. Проставляется сервером.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, INTENT, SAVE, RESTORE, PAUSE, RESUME.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// IntentPayload - ввод игрока. Движение удерживается до следующего INTENT,
// атака и смена оружия срабатывают один раз.
type IntentPayload struct {
	Dx     int      `json:"dx"` // -1, 0, 1
	Dy     int      `json:"dy"` // -1, 0, 1
	Run    bool     `json:"run,omitempty"`
	Attack bool     `json:"attack,omitempty"`
	Switch bool     `json:"switch,omitempty"`
	Aim    *float64 `json:"aim,omitempty"` // градусы
}

// RestorePayload: { "snapshot": "abc_1700000000.mzsv" }
type RestorePayload struct {
	Snapshot string `json:"snapshot"`
}

// RagePayload: { "rage": 75 } - отладочная установка ярости.
type RagePayload struct {
	Rage float64 `json:"rage"`
}

// TimePayload: { "time": 720 } - отладочная перемотка времени выживания.
type TimePayload struct {
	Time float64 `json:"time"`
}

// SpawnPayload: { "boss": true }
type SpawnPayload struct {
	Boss bool `json:"boss,omitempty"`
}

// CreateSessionRequest - тело POST /sessions.
type CreateSessionRequest struct {
	Mode  string `json:"mode"`            // survival | level
	Level string `json:"level,omitempty"` // путь к .properties для режима level
	Seed  int64  `json:"seed,omitempty"`  // 0 - от мастер-зерна
}

// CreateSessionResponse - ответ POST /sessions.
type CreateSessionResponse struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
	Seed int64  `json:"seed"`
}
