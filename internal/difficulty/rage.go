package difficulty

import (
	"math"
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AggressionMeter переводит темп убийств в уровень ярости врагов.
// rage = kills/t*100, зажатое в [0, 100].
type AggressionMeter struct {
	cfg  config.RageTuning
	sink domain.EventSink

	rage  float64
	level int
}

func NewAggressionMeter(cfg config.RageTuning, sink domain.EventSink) *AggressionMeter {
	return &AggressionMeter{cfg: cfg, sink: sink}
}

// Update пересчитывает ярость. Смена уровня в любую сторону порождает событие.
func (m *AggressionMeter) Update(totalKills int, survivalTime float64) {
	t := math.Max(survivalTime, 1)
	m.rage = clampRage(float64(totalKills) / t * 100)

	level := m.levelFor(m.rage)
	if level == m.level {
		return
	}

	prev := m.level
	m.level = level

	m.sink.Push(domain.Event{
		Type:  domain.EventRageLevelChanged,
		Index: level,
		Name:  m.LevelName(),
		Value: m.rage,
	})

	logger.Component("aggression").WithFields(logrus.Fields{
		"from": prev,
		"to":   level,
		"rage": m.rage,
	}).Info("Rage level changed")
}

// SetRage выставляет ярость напрямую (загрузка, отладка). Уровень пересчитывается без события.
func (m *AggressionMeter) SetRage(v float64) {
	m.rage = clampRage(v)
	m.level = m.levelFor(m.rage)
}

func (m *AggressionMeter) levelFor(rage float64) int {
	idx := 0
	for i, threshold := range m.cfg.Thresholds {
		if rage >= threshold {
			idx = i
		}
	}
	return idx
}

func (m *AggressionMeter) Rage() float64 { return m.rage }
func (m *AggressionMeter) Level() int    { return m.level }

func (m *AggressionMeter) LevelName() string {
	if m.level < len(m.cfg.Names) {
		return m.cfg.Names[m.level]
	}
	return ""
}

// SpeedMultiplier ускоряет шаги врагов.
func (m *AggressionMeter) SpeedMultiplier() float64 {
	return pick(m.cfg.SpeedMultipliers, m.level)
}

// DamageMultiplier усиливает контактный урон.
func (m *AggressionMeter) DamageMultiplier() float64 {
	return pick(m.cfg.DamageMultipliers, m.level)
}

func (m *AggressionMeter) Reset() {
	m.rage = 0
	m.level = 0
}

func clampRage(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func pick(table []float64, i int) float64 {
	if i < 0 || i >= len(table) {
		return 1
	}
	return table[i]
}
