package systems

import "maze-core/internal/domain"

// CanSpawnAt - строже обычной коллизии движения: центральная клетка и ее четыре
// соседа должны быть свободны, плюс коробка 1x1 с отступом 0.1 по четырем углам.
func CanSpawnAt(c Collider, x, y float64) bool {
	center := domain.Vec2{X: x, Y: y}.Tile()
	if !c.IsWalkable(center.X, center.Y) {
		return false
	}
	for _, d := range cardinals {
		n := center.Shift(d.X, d.Y)
		if !c.IsWalkable(n.X, n.Y) {
			return false
		}
	}
	return CanMoveBoxTo(c, x, y, domain.SpawnBoxSize, domain.SpawnBoxSize, domain.SpawnBoxPadding)
}
