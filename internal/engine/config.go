package engine

import (
	"strings"
	"time"
)

// Mode - режим сессии.
type Mode uint8

const (
	ModeSurvival Mode = iota // бесконечная карта из чанков, волны, ярость
	ModeLevel                // фиксированный уровень из файла .properties
)

func (m Mode) String() string {
	if m == ModeLevel {
		return "level"
	}
	return "survival"
}

// ParseMode: неизвестное значение -> survival.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "level") {
		return ModeLevel
	}
	return ModeSurvival
}

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Сессия без явного зерна получает Seed + порядковый номер.
	Seed int64

	// TickRate - кадров симуляции в секунду на сессию.
	TickRate int

	// BroadcastEvery - рассылать UPDATE каждые N кадров.
	BroadcastEvery int

	SnapshotDir string
	TuningPath  string

	// LevelPath и Mode описывают сессию, создаваемую при старте сервера.
	LevelPath string
	Mode      Mode

	// Bots - сколько сессий выживания с автопилотом запустить.
	Bots int

	// CommandBuffer - размер очереди команд одной сессии.
	CommandBuffer int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		TickRate:       60,
		BroadcastEvery: 3,
		SnapshotDir:    "saves",
		Mode:           ModeSurvival,
		CommandBuffer:  100,
	}
}

// FrameDuration - фиксированный шаг симуляции.
func (c Config) FrameDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// FrameDelta - тот же шаг в секундах (dt для Step).
func (c Config) FrameDelta() float64 {
	return c.FrameDuration().Seconds()
}
