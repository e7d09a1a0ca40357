package world

import "maze-core/internal/domain"

// Chunk - квадратный фрагмент бесконечной карты.
// Стены, ловушки и сундуки хранятся в собственном GridWorld в мировых координатах.
type Chunk struct {
	CX, CY int
	Size   int
	Theme  domain.Theme

	Grid        *domain.GridWorld
	SpawnPoints []domain.Vec2

	Generated  bool
	Loaded     bool
	LastAccess float64

	// heapIndex - позиция в очереди вытеснения; -1, если чанк в ней не стоит.
	heapIndex int
}

func NewChunk(cx, cy, size int) *Chunk {
	return &Chunk{
		CX:        cx,
		CY:        cy,
		Size:      size,
		Grid:      domain.NewGridWorld(cx*size, cy*size, size, size),
		heapIndex: -1,
	}
}

// WorldStart - мировые координаты левого нижнего угла.
func (c *Chunk) WorldStart() (int, int) {
	return c.CX * c.Size, c.CY * c.Size
}

// Center - центр чанка в мировых координатах (для выбора темы).
func (c *Chunk) Center() domain.Tile {
	x, y := c.WorldStart()
	return domain.Tile{X: x + c.Size/2, Y: y + c.Size/2}
}

func (c *Chunk) Contains(x, y int) bool {
	return c.Grid.InBounds(x, y)
}

func (c *Chunk) IsWalkable(x, y int) bool {
	return c.Grid.IsWalkable(x, y)
}

func (c *Chunk) Walls() []*domain.WallSegment {
	return c.Grid.Segments
}

func (c *Chunk) Traps() []*domain.Entity {
	return c.Grid.ObjectsOfKind(domain.KindTrap)
}

func (c *Chunk) Chests() []*domain.Entity {
	return c.Grid.ObjectsOfKind(domain.KindChest)
}

// Zone - номер чанка для упаковки ID сущностей.
func (c *Chunk) Zone(chunksPerRow int) uint16 {
	return uint16(c.CY*chunksPerRow + c.CX)
}

// clear освобождает содержимое при вытеснении из кэша.
func (c *Chunk) clear() {
	c.Grid.Clear()
	c.SpawnPoints = nil
	c.Generated = false
	c.Loaded = false
}
