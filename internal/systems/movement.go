package systems

import (
	"math"
	"maze-core/internal/domain"
)

// Collider - любой источник проходимости клеток: фиксированный уровень (GridWorld)
// или поток чанков бесконечной карты.
type Collider interface {
	IsWalkable(x, y int) bool
}

// CanMoveBoxTo проверяет, свободна ли коробка w*h в точке (x, y).
// Проверяются только четыре угла, каждый сдвинут внутрь на padding.
// Очень тонкие диагональные щели в 1 клетку так проскочить можно - это известное ограничение.
func CanMoveBoxTo(c Collider, x, y, w, h, padding float64) bool {
	left := x + padding
	right := x + w - padding
	bottom := y + padding
	top := y + h - padding

	return isWalkableAt(c, left, bottom) &&
		isWalkableAt(c, right, bottom) &&
		isWalkableAt(c, left, top) &&
		isWalkableAt(c, right, top)
}

func isWalkableAt(c Collider, x, y float64) bool {
	return c.IsWalkable(int(math.Floor(x)), int(math.Floor(y)))
}

// MovementResult - результат вычисления шага
type MovementResult struct {
	NewPos   domain.Vec2
	HasMoved bool
	IsWall   bool // Если врезались в стену
}

// CalculateMove вычисляет шаг на одну клетку. Не меняет состояние мира!
func CalculateMove(pos domain.Vec2, size, padding float64, dx, dy int, c Collider) MovementResult {
	target := domain.Vec2{X: pos.X + float64(dx), Y: pos.Y + float64(dy)}
	res := MovementResult{NewPos: pos}

	if dx == 0 && dy == 0 {
		return res
	}

	if !CanMoveBoxTo(c, target.X, target.Y, size, size, padding) {
		res.IsWall = true
		return res
	}

	res.NewPos = target
	res.HasMoved = true
	return res
}
