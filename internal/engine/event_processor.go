package engine

import (
	"fmt"
	"maze-core/internal/domain"
	"maze-core/pkg/api"
)

// processEvents переводит события кадра в протокол и пишет заметные из них в игровой лог.
func (s *Session) processEvents(events []domain.Event) []api.EventView {
	if len(events) == 0 {
		return nil
	}

	views := make([]api.EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, eventView(ev))
		s.logEvent(ev)
	}
	return views
}

func (s *Session) logEvent(ev domain.Event) {
	switch ev.Type {
	case domain.EventGameOver:
		s.AddLog(fmt.Sprintf("Вы погибли. Убито врагов: %d, счет: %d.", ev.Count, s.score), LogInfo)
	case domain.EventVictory:
		s.AddLog(fmt.Sprintf("Уровень %q пройден!", ev.Name), LogInfo)
	case domain.EventWaveChanged:
		s.AddLog(fmt.Sprintf("Волна %d: враги крепче в %.2f раза.", ev.Index+1, ev.Extra), LogCombat)
	case domain.EventRageLevelChanged:
		s.AddLog(fmt.Sprintf("Ярость врагов: %s.", ev.Name), LogCombat)
	case domain.EventComboMilestone:
		s.AddLog(fmt.Sprintf("%s Серия из %d.", ev.Name, ev.Count), LogCombat)
		s.addText(ev.Name, s.Player.Center())
	case domain.EventSpawnBossRequested:
		s.AddLog("Приближается босс!", LogCombat)
	case domain.EventChestOpened:
		s.AddLog(fmt.Sprintf("Сундук: %s.", ev.Name), LogLoot)
	}
}

func eventView(ev domain.Event) api.EventView {
	v := api.EventView{
		Type:   ev.Type.String(),
		Frame:  ev.Frame,
		Count:  ev.Count,
		Index:  ev.Index,
		Amount: ev.Amount,
		Value:  ev.Value,
		Extra:  ev.Extra,
		Name:   ev.Name,
	}
	if ev.Pos != nil {
		x, y := ev.Pos.X, ev.Pos.Y
		v.X, v.Y = &x, &y
	}
	return v
}
