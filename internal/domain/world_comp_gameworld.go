package domain

// InBounds - лежит ли клетка внутри фрагмента.
func (w *GridWorld) InBounds(x, y int) bool {
	return x >= w.OriginX && x < w.OriginX+w.Width &&
		y >= w.OriginY && y < w.OriginY+w.Height
}

// IsWalkable: false вне границ или если клетка занята стеной. O(1).
func (w *GridWorld) IsWalkable(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	_, blocked := w.walls[TileKey(x, y)]
	return !blocked
}

// WallAt возвращает сегмент, занимающий клетку, или nil.
func (w *GridWorld) WallAt(x, y int) *WallSegment {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.walls[TileKey(x, y)]
}

// AddWall регистрирует сегмент. Если хоть одна клетка уже занята или
// вне границ, сегмент не добавляется вовсе.
func (w *GridWorld) AddWall(seg *WallSegment) bool {
	if w.walls == nil {
		w.walls = make(map[int]*WallSegment)
	}

	for _, t := range seg.Tiles() {
		if !w.InBounds(t.X, t.Y) {
			return false
		}
		if _, taken := w.walls[t.Key()]; taken {
			return false
		}
	}

	for _, k := range seg.keys {
		w.walls[k] = seg
	}
	w.Segments = append(w.Segments, seg)
	return true
}

// Overlaps проверяет, пересекается ли прямоугольник (с отступом margin) с занятыми клетками.
func (w *GridWorld) Overlaps(x, y, width, height, margin int) bool {
	for ty := y - margin; ty < y+height+margin; ty++ {
		for tx := x - margin; tx < x+width+margin; tx++ {
			if _, taken := w.walls[TileKey(tx, ty)]; taken {
				return true
			}
		}
	}
	return false
}

// OccupiedCount - количество занятых стенами клеток.
func (w *GridWorld) OccupiedCount() int {
	return len(w.walls)
}

// AddObject добавляет нестеновой объект.
func (w *GridWorld) AddObject(e *Entity) {
	w.Objects = append(w.Objects, e)
}

// RemoveObject удаляет объект по ID (swap with last, порядок не важен).
func (w *GridWorld) RemoveObject(id EntityID) bool {
	for i, other := range w.Objects {
		if other.ID == id {
			last := len(w.Objects) - 1
			w.Objects[i] = w.Objects[last]
			w.Objects[last] = nil
			w.Objects = w.Objects[:last]
			return true
		}
	}
	return false
}

// ObjectsOfKind возвращает объекты заданного вида.
func (w *GridWorld) ObjectsOfKind(kind EntityKind) []*Entity {
	var out []*Entity
	for _, e := range w.Objects {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Clear освобождает содержимое (при выгрузке чанка из кэша).
func (w *GridWorld) Clear() {
	w.walls = make(map[int]*WallSegment)
	w.Segments = nil
	w.Objects = nil
}
