package engine

import (
	"math"
	"math/rand"
	"maze-core/internal/domain"
	"maze-core/internal/systems"
	"maze-core/pkg/config"
	"maze-core/pkg/dungeon"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SpawnArea - карта, на которой можно спавнить: проходимость и номер зоны для ID.
type SpawnArea interface {
	systems.Collider
	ZoneAt(x, y float64) uint16
}

// Spawner размещает врагов и боссов кольцом вокруг игрока.
type Spawner struct {
	cfg     config.EndlessTuning
	area    SpawnArea
	factory *dungeon.EnemyFactory
	rng     *rand.Rand
	log     *logrus.Entry
}

func NewSpawner(cfg config.EndlessTuning, area SpawnArea, factory *dungeon.EnemyFactory, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:     cfg,
		area:    area,
		factory: factory,
		rng:     rng,
		log:     logger.Component("spawner"),
	}
}

// SpawnEnemy пытается поставить обычного врага на дистанции [min, max] от игрока.
// nil, если достигнут лимит врагов или все попытки уперлись в стены.
func (sp *Spawner) SpawnEnemy(around domain.Vec2, alive int, healthMult float64) *domain.Enemy {
	if alive >= sp.cfg.MaxEnemyCount {
		return nil
	}
	pos, ok := sp.findPosition(around, false)
	if !ok {
		return nil
	}
	return sp.factory.Enemy(pos, sp.area.ZoneAt(pos.X, pos.Y), healthMult)
}

// SpawnBoss - то же для босса, всегда на максимальной дистанции.
func (sp *Spawner) SpawnBoss(around domain.Vec2, alive int, healthMult float64) *domain.Enemy {
	if alive >= sp.cfg.MaxEnemyCount {
		return nil
	}
	pos, ok := sp.findPosition(around, true)
	if !ok {
		return nil
	}
	boss := sp.factory.Boss(pos, sp.area.ZoneAt(pos.X, pos.Y), healthMult)
	sp.log.WithFields(logrus.Fields{
		"id":  boss.ID.String(),
		"pos": pos,
		"hp":  boss.Health.MaxHP,
	}).Info("Boss spawned")
	return boss
}

func (sp *Spawner) findPosition(around domain.Vec2, far bool) (domain.Vec2, bool) {
	attempts := max(sp.cfg.SpawnAttempts, 1)
	margin := sp.cfg.SpawnEdgeMargin
	maxX := float64(sp.cfg.MapWidth) - margin
	maxY := float64(sp.cfg.MapHeight) - margin

	for i := 0; i < attempts; i++ {
		angle := sp.rng.Float64() * 2 * math.Pi
		dist := sp.cfg.SpawnMaxDistance
		if !far {
			dist = sp.cfg.SpawnMinDistance + sp.rng.Float64()*(sp.cfg.SpawnMaxDistance-sp.cfg.SpawnMinDistance)
		}

		x := math.Floor(clampFloat(around.X+math.Cos(angle)*dist, margin, maxX))
		y := math.Floor(clampFloat(around.Y+math.Sin(angle)*dist, margin, maxY))
		if systems.CanSpawnAt(sp.area, x, y) {
			return domain.Vec2{X: x, Y: y}, true
		}
	}

	sp.log.WithFields(logrus.Fields{
		"around":   around,
		"attempts": attempts,
		"boss":     far,
	}).Debug("No free spawn position")
	return domain.Vec2{}, false
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
