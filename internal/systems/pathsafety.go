package systems

import (
	"maze-core/internal/domain"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SafeGrid - карта клеток, достижимых от точки входа.
// Строится один раз при загрузке уровня; ИИ использует ее как подсказку,
// чтобы не забредать в недостижимые карманы.
type SafeGrid struct {
	OriginX, OriginY int
	Width, Height    int
	cells            []bool
	count            int
}

// BuildSafeGrid - один BFS по 4-соседству от start, через IsWalkable.
// Непроходимый старт дает пустую сетку.
func BuildSafeGrid(c Collider, originX, originY, width, height int, start domain.Tile) *SafeGrid {
	g := &SafeGrid{
		OriginX: originX,
		OriginY: originY,
		Width:   width,
		Height:  height,
		cells:   make([]bool, width*height),
	}

	if !g.inBounds(start.X, start.Y) || !c.IsWalkable(start.X, start.Y) {
		logger.Component("path_safety").WithField("start", start).Warn("Entry tile is not walkable, safe grid is empty")
		return g
	}

	neighbours := [4]domain.Tile{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	queue := []domain.Tile{start}
	g.mark(start.X, start.Y)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range neighbours {
			next := cur.Shift(d.X, d.Y)
			if !g.inBounds(next.X, next.Y) || g.IsSafe(next.X, next.Y) {
				continue
			}
			if !c.IsWalkable(next.X, next.Y) {
				continue
			}
			g.mark(next.X, next.Y)
			queue = append(queue, next)
		}
	}

	logger.Component("path_safety").WithFields(logrus.Fields{
		"start":     start,
		"reachable": g.count,
		"area":      width * height,
	}).Debug("Safe grid built")

	return g
}

func (g *SafeGrid) inBounds(x, y int) bool {
	return x >= g.OriginX && x < g.OriginX+g.Width &&
		y >= g.OriginY && y < g.OriginY+g.Height
}

func (g *SafeGrid) index(x, y int) int {
	return (y-g.OriginY)*g.Width + (x - g.OriginX)
}

func (g *SafeGrid) mark(x, y int) {
	g.cells[g.index(x, y)] = true
	g.count++
}

// IsSafe: false вне границ. Nil-сетка считается "все безопасно" (бесконечный режим).
func (g *SafeGrid) IsSafe(x, y int) bool {
	if g == nil {
		return true
	}
	if !g.inBounds(x, y) {
		return false
	}
	return g.cells[g.index(x, y)]
}

// Count - количество достижимых клеток.
func (g *SafeGrid) Count() int {
	if g == nil {
		return 0
	}
	return g.count
}
