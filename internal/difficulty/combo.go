package difficulty

import (
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ComboTracker считает серию убийств с таймером затухания.
type ComboTracker struct {
	cfg  config.ComboTuning
	sink domain.EventSink

	count  int
	max    int
	timer  float64
	active bool
}

func NewComboTracker(cfg config.ComboTuning, sink domain.EventSink) *ComboTracker {
	return &ComboTracker{cfg: cfg, sink: sink}
}

// OnKill продлевает серию и взводит таймер заново.
// Событие рубежа срабатывает только при точном совпадении счетчика с порогом.
func (c *ComboTracker) OnKill() {
	c.count++
	c.timer = c.cfg.DecayTime
	c.active = true
	if c.count > c.max {
		c.max = c.count
	}

	c.sink.Push(domain.Event{
		Type:  domain.EventComboIncreased,
		Count: c.count,
		Value: c.Multiplier(),
	})

	for i, threshold := range c.cfg.Thresholds {
		if threshold > 0 && c.count == threshold {
			c.sink.Push(domain.Event{
				Type:  domain.EventComboMilestone,
				Count: threshold,
				Name:  c.cfg.Names[i],
			})
			logger.Component("combo").WithFields(logrus.Fields{
				"combo": c.count,
				"name":  c.cfg.Names[i],
			}).Info("Combo milestone")
			break
		}
	}
}

// Update тикает таймер. По истечении серия сгорает с событием сброса.
func (c *ComboTracker) Update(dt float64) {
	if !c.active || c.count == 0 {
		return
	}

	c.timer -= dt
	if c.timer > 0 {
		return
	}

	final := c.count
	c.count = 0
	c.timer = 0
	c.active = false

	c.sink.Push(domain.Event{Type: domain.EventComboReset, Count: final})
}

// ExtendDecayTime добавляет время к активной серии. Неактивную не трогает.
func (c *ComboTracker) ExtendDecayTime(seconds float64) {
	if !c.active {
		return
	}
	c.timer += seconds
}

// tier - индекс наибольшего порога, не превышающего счетчик.
func (c *ComboTracker) tier() int {
	idx := 0
	for i, threshold := range c.cfg.Thresholds {
		if c.count >= threshold {
			idx = i
		}
	}
	return idx
}

// Multiplier - множитель очков по ступенчатой таблице.
func (c *ComboTracker) Multiplier() float64 {
	if len(c.cfg.Multipliers) == 0 {
		return 1
	}
	return c.cfg.Multipliers[c.tier()]
}

// TierName - надпись текущей ступени ("" для базовой).
func (c *ComboTracker) TierName() string {
	if len(c.cfg.Names) == 0 {
		return ""
	}
	return c.cfg.Names[c.tier()]
}

func (c *ComboTracker) Count() int        { return c.count }
func (c *ComboTracker) Max() int          { return c.max }
func (c *ComboTracker) IsActive() bool    { return c.active }
func (c *ComboTracker) TimeLeft() float64 { return c.timer }

// SetCurrentCombo восстанавливает серию из сохранения, без событий.
func (c *ComboTracker) SetCurrentCombo(n int) {
	if n < 0 {
		n = 0
	}
	c.count = n
	c.active = n > 0
	c.timer = 0
	if c.active {
		c.timer = c.cfg.DecayTime
	}
	if n > c.max {
		c.max = n
	}
}

// SetMax восстанавливает рекорд серии.
func (c *ComboTracker) SetMax(n int) {
	if n > c.max {
		c.max = n
	}
}

// Reset - новая игра.
func (c *ComboTracker) Reset() {
	c.count = 0
	c.max = 0
	c.timer = 0
	c.active = false
}
