package domain

// GridWorld хранит статические препятствия уровня или одного чанка
// и плоский список нестеновых объектов (ловушки, сундуки, зелья, ключ, выход).
//
// Координаты мировые: фрагмент покрывает [OriginX, OriginX+Width) x [OriginY, OriginY+Height).
// Для фиксированного уровня Origin = (0, 0).
type GridWorld struct {
	OriginX int   `json:"originX"`
	OriginY int   `json:"originY"`
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Theme   Theme `json:"theme"`

	// Entry - точка входа игрока (для BFS безопасных путей).
	Entry Tile `json:"entry"`

	Segments []*WallSegment `json:"walls"`
	Objects  []*Entity      `json:"objects"`

	// walls: упакованный ключ клетки -> сегмент. Каждый ключ принадлежит ровно одному сегменту.
	walls map[int]*WallSegment
}

// NewGridWorld создает пустой фрагмент мира.
func NewGridWorld(originX, originY, width, height int) *GridWorld {
	return &GridWorld{
		OriginX: originX,
		OriginY: originY,
		Width:   width,
		Height:  height,
		walls:   make(map[int]*WallSegment),
	}
}
