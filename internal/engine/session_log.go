package engine

import (
	"fmt"
	"maze-core/pkg/api"
	"maze-core/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// Типы записей игрового лога.
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogLoot   = "LOOT"
	LogError  = "ERROR"
)

// AddLog добавляет запись в игровой лог сессии. Лог уходит клиенту со следующим UPDATE.
func (s *Session) AddLog(text, logType string) {
	now := time.Now()
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", s.ID, now.UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"session":   s.ID,
		"component": "game_log",
		"log_type":  logType,
	}).Debug(text)
}

// TakeLogs забирает накопленные записи.
func (s *Session) TakeLogs() []api.LogEntry {
	out := s.Logs
	s.Logs = nil
	return out
}
