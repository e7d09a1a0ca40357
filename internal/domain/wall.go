package domain

// WallSegment - прямоугольный блок стены. Неизменяем после NewWallSegment.
type WallSegment struct {
	OriginX int  `json:"x"`
	OriginY int  `json:"y"`
	Width   int  `json:"w"`
	Height  int  `json:"h"`
	TypeID  int  `json:"typeId"`
	Border  bool `json:"border"`

	// CollisionHeight > 0 означает, что коллизия есть только у нижних рядов
	// (высокие декоративные стены травяной зоны).
	CollisionHeight int `json:"collisionHeight,omitempty"`

	keys []int
}

// NewWallSegment создает сегмент и заранее считает ключи занятых клеток.
func NewWallSegment(x, y, w, h, typeID int, border bool, collisionHeight int) *WallSegment {
	seg := &WallSegment{
		OriginX:         x,
		OriginY:         y,
		Width:           w,
		Height:          h,
		TypeID:          typeID,
		Border:          border,
		CollisionHeight: collisionHeight,
	}

	rows := h
	if collisionHeight > 0 && collisionHeight < h {
		rows = collisionHeight
	}

	seg.keys = make([]int, 0, w*rows)
	for dy := 0; dy < rows; dy++ {
		for dx := 0; dx < w; dx++ {
			seg.keys = append(seg.keys, TileKey(x+dx, y+dy))
		}
	}
	return seg
}

// Keys возвращает копию ключей занятых клеток.
func (s *WallSegment) Keys() []int {
	out := make([]int, len(s.keys))
	copy(out, s.keys)
	return out
}

// Occupies - занимает ли сегмент клетку с точки зрения коллизий.
func (s *WallSegment) Occupies(x, y int) bool {
	rows := s.Height
	if s.CollisionHeight > 0 && s.CollisionHeight < s.Height {
		rows = s.CollisionHeight
	}
	return x >= s.OriginX && x < s.OriginX+s.Width &&
		y >= s.OriginY && y < s.OriginY+rows
}

// Tiles возвращает занятые клетки (для генераторов и дебага).
func (s *WallSegment) Tiles() []Tile {
	out := make([]Tile, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Tile{X: k & 0xFFFF, Y: k >> 16})
	}
	return out
}
