package dungeon

import (
	"math"
	"math/rand"
	"maze-core/internal/domain"
	"maze-core/internal/world"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Размеры блоков внутренних стен бесконечной карты.
var chunkWallSizes = [][2]int{{2, 2}, {3, 2}, {2, 3}, {4, 2}, {2, 4}, {3, 3}, {4, 4}}

// ChunkGenerator заполняет чанки бесконечной карты: тема, рамка, стены, ловушки, сундуки, точки спавна.
// Все решения принимаются от сида чанка, поэтому повторная генерация дает тот же результат.
type ChunkGenerator struct {
	cfg config.EndlessTuning
}

func NewChunkGenerator(cfg config.EndlessTuning) *ChunkGenerator {
	return &ChunkGenerator{cfg: cfg}
}

// Populate реализует world.Generator.
func (g *ChunkGenerator) Populate(c *world.Chunk, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	zone := c.Zone(g.cfg.MapWidth / g.cfg.ChunkSize)

	center := c.Center()
	c.Theme = g.ThemeAt(center.X, center.Y)
	c.Grid.Theme = c.Theme

	// footprint - полная площадь стен (для травяной зоны шире, чем коллизия).
	footprint := make([]bool, c.Size*c.Size)

	g.borderWalls(c)
	g.internalWalls(c, rng, footprint)
	traps := g.traps(c, rng, footprint, zone)
	g.chests(c, rng, footprint, traps, zone)
	g.spawnPoints(c, rng)

	logger.Component("chunk_generator").WithFields(logrus.Fields{
		"cx":     c.CX,
		"cy":     c.CY,
		"theme":  c.Theme.String(),
		"walls":  len(c.Grid.Segments),
		"traps":  traps,
		"spawns": len(c.SpawnPoints),
	}).Debug("Chunk populated")
}

// ThemeAt: круг космоса в центре карты, остальное делится на четверти.
func (g *ChunkGenerator) ThemeAt(x, y int) domain.Theme {
	cx, cy := g.cfg.MapWidth/2, g.cfg.MapHeight/2
	dist := math.Hypot(float64(x-cx), float64(y-cy))
	if dist <= g.cfg.SpaceZoneRadius {
		return domain.ThemeSpace
	}

	west := x < cx
	north := y < cy
	switch {
	case west && north:
		return domain.ThemeGrassland
	case !west && north:
		return domain.ThemeJungle
	case west && !north:
		return domain.ThemeDesert
	}
	return domain.ThemeIce
}

// PlayerSpawn - стартовая точка бесконечного режима (центр карты).
func (g *ChunkGenerator) PlayerSpawn() domain.Vec2 {
	return domain.Vec2{X: float64(g.cfg.MapWidth) / 2, Y: float64(g.cfg.MapHeight) / 2}
}

// InSpawnSafeZone - задевает ли прямоугольник безопасную зону вокруг старта.
func (g *ChunkGenerator) InSpawnSafeZone(x, y, w, h int) bool {
	spawn := g.PlayerSpawn()
	r := g.cfg.SpawnSafeRadius

	corners := [4]domain.Vec2{
		{X: float64(x), Y: float64(y)},
		{X: float64(x + w), Y: float64(y)},
		{X: float64(x), Y: float64(y + h)},
		{X: float64(x + w), Y: float64(y + h)},
	}
	for _, p := range corners {
		if p.DistanceTo(spawn) <= r {
			return true
		}
	}

	center := domain.Vec2{X: float64(x) + float64(w)/2, Y: float64(y) + float64(h)/2}
	return center.DistanceTo(spawn) <= r+float64(max(w, h))/2
}

// --- Стены ---

func (g *ChunkGenerator) borderWalls(c *world.Chunk) {
	startX, startY := c.WorldStart()
	mapW, mapH := g.cfg.MapWidth, g.cfg.MapHeight

	add := func(x, y int) {
		c.Grid.AddWall(domain.NewWallSegment(x, y, domain.BorderWidth, domain.BorderWidth, domain.ObjectWall2x2, true, 0))
	}

	for i := 0; i < c.Size; i += domain.BorderWidth {
		wy := startY + i
		wx := startX + i
		if startX == 0 && wy < mapH-1 {
			add(0, wy)
		}
		if startX+c.Size >= mapW && wy < mapH-1 {
			add(mapW-domain.BorderWidth, wy)
		}
		if startY == 0 && wx < mapW-1 {
			add(wx, 0)
		}
		if startY+c.Size >= mapH && wx < mapW-1 {
			add(wx, mapH-domain.BorderWidth)
		}
	}
}

func (g *ChunkGenerator) internalWalls(c *world.Chunk, rng *rand.Rand, footprint []bool) {
	size := c.Size
	startX, startY := c.WorldStart()
	expected := int(float64(size*size) * g.cfg.WallDensity / 16)
	maxAttempts := expected * 5

	placed := 0
	for attempt := 0; attempt < maxAttempts && placed < expected; attempt++ {
		dims := chunkWallSizes[rng.Intn(len(chunkWallSizes))]
		w, h := dims[0], dims[1]
		lx := rng.Intn(size - w)
		ly := rng.Intn(size - h)

		if g.InSpawnSafeZone(startX+lx, startY+ly, w, h) {
			continue
		}
		if footprintTaken(footprint, size, lx, ly, w, h) {
			continue
		}

		collision := 0
		if c.Theme == domain.ThemeGrassland {
			collision = 1
		}
		seg := domain.NewWallSegment(startX+lx, startY+ly, w, h, WallTypeFor(w, h), false, collision)
		if !c.Grid.AddWall(seg) {
			continue
		}
		markFootprint(footprint, size, lx, ly, w, h)
		placed++
	}
}

// --- Объекты ---

func (g *ChunkGenerator) traps(c *world.Chunk, rng *rand.Rand, footprint []bool, zone uint16) int {
	size := c.Size
	startX, startY := c.WorldStart()
	expected := int(float64(size*size) * g.cfg.TrapDensity)
	maxAttempts := expected * 3

	taken := make(map[int]bool)
	placed := 0
	for attempt := 0; attempt < maxAttempts && placed < expected; attempt++ {
		lx := rng.Intn(size-2) + 1
		ly := rng.Intn(size-2) + 1
		key := domain.TileKey(lx, ly)

		if taken[key] || footprint[ly*size+lx] || !c.Grid.IsWalkable(startX+lx, startY+ly) {
			continue
		}
		if g.InSpawnSafeZone(startX+lx, startY+ly, 1, 1) {
			continue
		}

		taken[key] = true
		placed++
		id := domain.PackEntityID(domain.KindTrap, zone, uint64(placed))
		c.Grid.AddObject(domain.NewEntity(id, domain.KindTrap, domain.Vec2{X: float64(startX + lx), Y: float64(startY + ly)}))
	}
	return placed
}

func (g *ChunkGenerator) chests(c *world.Chunk, rng *rand.Rand, footprint []bool, traps int, zone uint16) {
	size := c.Size
	startX, startY := c.WorldStart()
	expected := min(g.cfg.MaxChestsPerChunk, int(float64(traps)*g.cfg.ChestTrapRatio))
	if expected <= 0 {
		return
	}

	taken := make(map[int]bool)
	for _, t := range c.Traps() {
		taken[domain.TileKey(int(t.Pos.X)-startX, int(t.Pos.Y)-startY)] = true
	}

	placed := 0
	for attempt := 0; attempt < expected*5 && placed < expected; attempt++ {
		lx := rng.Intn(size-4) + 2
		ly := rng.Intn(size-4) + 2
		key := domain.TileKey(lx, ly)

		if taken[key] || footprint[ly*size+lx] || !c.Grid.IsWalkable(startX+lx, startY+ly) {
			continue
		}
		if g.InSpawnSafeZone(startX+lx, startY+ly, 1, 1) {
			continue
		}

		taken[key] = true
		placed++
		id := domain.PackEntityID(domain.KindChest, zone, uint64(placed))
		c.Grid.AddObject(domain.NewEntity(id, domain.KindChest, domain.Vec2{X: float64(startX + lx), Y: float64(startY + ly)}))
	}
}

// spawnPoints - точки появления врагов, с зазором в 1 клетку от любой стены.
func (g *ChunkGenerator) spawnPoints(c *world.Chunk, rng *rand.Rand) {
	startX, startY := c.WorldStart()
	count := rng.Intn(g.cfg.MaxSpawnPoints-g.cfg.MinSpawnPoints+1) + g.cfg.MinSpawnPoints
	span := float64(c.Size - 4)

	for i := 0; i < count; i++ {
		p := domain.Vec2{
			X: float64(startX) + rng.Float64()*span + 2,
			Y: float64(startY) + rng.Float64()*span + 2,
		}
		if nearWall(c.Grid.Segments, p) {
			continue
		}
		c.SpawnPoints = append(c.SpawnPoints, p)
	}
}

// --- Вспомогательные функции ---

func nearWall(walls []*domain.WallSegment, p domain.Vec2) bool {
	for _, w := range walls {
		if p.X >= float64(w.OriginX-1) && p.X < float64(w.OriginX+w.Width+1) &&
			p.Y >= float64(w.OriginY-1) && p.Y < float64(w.OriginY+w.Height+1) {
			return true
		}
	}
	return false
}

func footprintTaken(fp []bool, size, x, y, w, h int) bool {
	for py := y; py < y+h && py < size; py++ {
		for px := x; px < x+w && px < size; px++ {
			if fp[py*size+px] {
				return true
			}
		}
	}
	return false
}

func markFootprint(fp []bool, size, x, y, w, h int) {
	for py := y; py < y+h && py < size; py++ {
		for px := x; px < x+w && px < size; px++ {
			fp[py*size+px] = true
		}
	}
}

// WallTypeFor - идентификатор блока стены по размеру; неизвестный размер -> 2x2.
func WallTypeFor(w, h int) int {
	for id, dims := range domain.WallBlockSizes {
		if id != domain.ObjectWall && dims[0] == w && dims[1] == h {
			return id
		}
	}
	return domain.ObjectWall2x2
}
