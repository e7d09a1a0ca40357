package difficulty

import (
	"math"
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// WaveScheduler ведет время выживания, волны и расписание спавна.
type WaveScheduler struct {
	cfg  config.WaveTuning
	sink domain.EventSink

	survivalTime float64
	index        int
	nextSpawn    float64
	nextBoss     float64
}

func NewWaveScheduler(cfg config.WaveTuning, sink domain.EventSink) *WaveScheduler {
	w := &WaveScheduler{cfg: cfg, sink: sink}
	w.Reset()
	return w
}

// Reset - начало забега.
func (w *WaveScheduler) Reset() {
	w.survivalTime = 0
	w.index = 0
	w.nextSpawn = 0
	w.nextBoss = w.cfg.FirstBossTime
}

// WaveIndex - наибольший индекс с порогом <= t.
func (w *WaveScheduler) WaveIndex(t float64) int {
	idx := 0
	for i, threshold := range w.cfg.TimeThresholds {
		if t >= threshold {
			idx = i
		}
	}
	return idx
}

// Update продвигает время и выставляет запросы на спавн в очередь событий.
func (w *WaveScheduler) Update(dt float64) {
	w.survivalTime += dt
	t := w.survivalTime

	if idx := w.WaveIndex(t); idx != w.index {
		w.index = idx
		w.sink.Push(domain.Event{
			Type:  domain.EventWaveChanged,
			Index: idx,
			Value: w.SpawnInterval(),
			Extra: w.HealthMultiplier(),
		})
		logger.Component("waves").WithFields(logrus.Fields{
			"wave":     idx,
			"interval": w.SpawnInterval(),
			"health":   w.HealthMultiplier(),
			"time":     t,
		}).Info("Wave changed")
	}

	if t >= w.cfg.SafePeriod && t >= w.nextSpawn {
		w.sink.Push(domain.Event{Type: domain.EventSpawnEnemyRequested, Index: w.index})
		w.nextSpawn = t + w.SpawnInterval()
	}

	if t >= w.cfg.FirstBossTime && t >= w.nextBoss {
		w.sink.Push(domain.Event{Type: domain.EventSpawnBossRequested, Index: w.index})
		w.nextBoss = t + w.cfg.BossInterval
	}
}

// SetSurvivalTime восстанавливает расписание из сохранения, без событий.
func (w *WaveScheduler) SetSurvivalTime(t float64) {
	if t < 0 {
		t = 0
	}
	w.survivalTime = t
	w.index = w.WaveIndex(t)
	w.nextSpawn = t + w.SpawnInterval()

	first := w.cfg.FirstBossTime
	if t >= first {
		w.nextBoss = first + (math.Floor((t-first)/w.cfg.BossInterval)+1)*w.cfg.BossInterval
	} else {
		w.nextBoss = first
	}
}

func (w *WaveScheduler) SurvivalTime() float64 { return w.survivalTime }
func (w *WaveScheduler) CurrentWave() int      { return w.index }
func (w *WaveScheduler) NextSpawn() float64    { return w.nextSpawn }
func (w *WaveScheduler) NextBoss() float64     { return w.nextBoss }

// SpawnInterval - пауза между спавнами в текущей волне.
func (w *WaveScheduler) SpawnInterval() float64 {
	return pick(w.cfg.SpawnIntervals, w.index)
}

// HealthMultiplier - множитель здоровья врагов текущей волны.
func (w *WaveScheduler) HealthMultiplier() float64 {
	return pick(w.cfg.HealthMultipliers, w.index)
}

// InSafePeriod - первые секунды забега без врагов.
func (w *WaveScheduler) InSafePeriod() bool {
	return w.survivalTime < w.cfg.SafePeriod
}
