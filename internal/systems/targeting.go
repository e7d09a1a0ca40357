package systems

import "maze-core/internal/domain"

// NearestEnemy ищет ближайшего живого врага в радиусе maxDist. nil, если никого.
func NearestEnemy(from domain.Vec2, enemies []*domain.Enemy, maxDist float64) *domain.Enemy {
	var best *domain.Enemy
	bestDist := maxDist * maxDist

	for _, e := range enemies {
		if !e.IsAlive() {
			continue
		}
		d := from.DistanceSquaredTo(e.Center())
		if d <= bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// EnemiesWithin возвращает живых врагов в радиусе (для контактного урона и EMP).
func EnemiesWithin(from domain.Vec2, enemies []*domain.Enemy, radius float64) []*domain.Enemy {
	var out []*domain.Enemy
	r2 := radius * radius
	for _, e := range enemies {
		if e.IsAlive() && from.DistanceSquaredTo(e.Center()) < r2 {
			out = append(out, e)
		}
	}
	return out
}
