package systems

import (
	"maze-core/internal/domain"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками.
// Алгоритм Брезенхэма, только целочисленная арифметика. Стартовая и конечная клетки не проверяются.
func HasLineOfSight(c Collider, p1, p2 domain.Tile) bool {
	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := domain.Sign(float64(x1 - x0))
	sy := domain.Sign(float64(y1 - y0))

	err := dx - dy

	for {
		isStart := x0 == p1.X && y0 == p1.Y
		isEnd := x0 == p2.X && y0 == p2.Y

		if !isStart && !isEnd && !c.IsWalkable(x0, y0) {
			logger.Component("physics_system").WithFields(logrus.Fields{
				"start":    p1,
				"end":      p2,
				"blocking": domain.Tile{X: x0, Y: y0},
			}).Debug("Line of sight blocked")
			return false
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
