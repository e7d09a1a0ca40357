package domain

import "math"

// Tile - целочисленная координата клетки. Единица коллизий и занятости.
type Tile struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// TileKey упаковывает координату в ключ карты стен.
// Гарантирует только уникальность для 0 <= x < 65536, порядок не сохраняется.
func TileKey(x, y int) int {
	return x + y<<16
}

func (t Tile) Key() int {
	return TileKey(t.X, t.Y)
}

// Shift возвращает соседнюю клетку со смещением.
func (t Tile) Shift(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Vec returns the tile origin as a continuous position.
func (t Tile) Vec() Vec2 {
	return Vec2{X: float64(t.X), Y: float64(t.Y)}
}

// Vec2 - непрерывная позиция. Сущности живут на сетке, но хранят float-смещения
// (отбрасывание, снаряды).
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// DistanceTo возвращает евклидово расстояние.
func (v Vec2) DistanceTo(other Vec2) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// DistanceSquaredTo - для сравнений без корня.
func (v Vec2) DistanceSquaredTo(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// AngleTo возвращает угол направления на other в градусах, (-180, 180].
func (v Vec2) AngleTo(other Vec2) float64 {
	return math.Atan2(other.Y-v.Y, other.X-v.X) * 180 / math.Pi
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize возвращает единичный вектор; нулевой вектор остается нулевым.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Tile возвращает клетку, в которой лежит точка (floor).
func (v Vec2) Tile() Tile {
	return Tile{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// AngleDiff возвращает модуль разницы двух углов в градусах, [0, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Sign возвращает -1, 0 или 1.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
