package handlers

import (
	"encoding/json"
	"maze-core/internal/domain"
)

// SessionControl - то, чем хендлер может управлять в сессии.
// Session неявно реализует этот интерфейс.
type SessionControl interface {
	SetIntent(in domain.Intent)
	Pause()
	Resume()
	Snapshot() domain.Snapshot
	Restore(snap domain.Snapshot) error
	SetRage(v float64)
	SetSurvivalTime(t float64)
	ForceSpawn(boss bool) bool
}

// SnapshotStore сохраняет и загружает снапшоты по имени файла.
type SnapshotStore interface {
	Save(snap domain.Snapshot) (string, error)
	Load(name string) (domain.Snapshot, error)
}

// Context передает хендлеру сессию и хранилище.
type Context struct {
	Session SessionControl
	Store   SnapshotStore
	Token   string // подключение, приславшее команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, LOOT, ERROR)

	// Reply - тип личного ответа отправителю (INIT, SAVED); пусто - без ответа.
	Reply string
	// Full - ответ содержит стены и метаданные карты.
	Full bool
	// Snapshot - имя файла для SAVED.
	Snapshot string
}

// HandlerFunc - это контракт для любой команды (INTENT, SAVE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
