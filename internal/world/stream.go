package world

import (
	"container/heap"
	"math"
	"maze-core/internal/domain"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Generator заполняет пустой чанк содержимым. Одинаковый seed дает одинаковый чанк.
type Generator interface {
	Populate(c *Chunk, seed int64)
}

// ChunkStream держит активное окно чанков вокруг игрока и кэш сгенерированных.
// Реализует Collider для бесконечного режима.
type ChunkStream struct {
	cfg  config.EndlessTuning
	seed int64
	gen  Generator
	sink domain.EventSink

	chunks  map[int]*Chunk
	loaded  map[int]*Chunk
	evict   evictQueue
	maxCX   int
	maxCY   int
	now     float64
	evicted int
}

// NewChunkStream создает пустой поток. sink может быть nil.
func NewChunkStream(cfg config.EndlessTuning, seed int64, gen Generator, sink domain.EventSink) *ChunkStream {
	return &ChunkStream{
		cfg:    cfg,
		seed:   seed,
		gen:    gen,
		sink:   sink,
		chunks: make(map[int]*Chunk),
		loaded: make(map[int]*Chunk),
		maxCX:  cfg.MapWidth / cfg.ChunkSize,
		maxCY:  cfg.MapHeight / cfg.ChunkSize,
	}
}

// ChunkSeed - детерминированный сид чанка.
func ChunkSeed(seed int64, cx, cy int) int64 {
	return seed ^ (int64(cx) << 16) ^ int64(cy)
}

func (s *ChunkStream) validChunk(cx, cy int) bool {
	return cx >= 0 && cx < s.maxCX && cy >= 0 && cy < s.maxCY
}

// ChunkCoords - чанк, содержащий мировую точку.
func (s *ChunkStream) ChunkCoords(x, y float64) (int, int) {
	size := float64(s.cfg.ChunkSize)
	return int(math.Floor(x / size)), int(math.Floor(y / size))
}

// UpdateActiveChunks подгружает окно вокруг игрока, выгружает чанки вне окна
// и вытесняет из кэша давно неиспользуемые. Возвращает только что сгенерированные чанки.
func (s *ChunkStream) UpdateActiveChunks(px, py, now float64) []*Chunk {
	s.now = now
	ccx, ccy := s.ChunkCoords(px, py)
	r := s.cfg.ActiveChunkRadius

	var generated []*Chunk
	needed := make(map[int]struct{}, (2*r+1)*(2*r+1))

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			cx, cy := ccx+dx, ccy+dy
			if !s.validChunk(cx, cy) {
				continue
			}
			key := domain.TileKey(cx, cy)
			needed[key] = struct{}{}

			c, fresh := s.load(cx, cy, key)
			if fresh {
				generated = append(generated, c)
			}
		}
	}

	for key, c := range s.loaded {
		if _, ok := needed[key]; ok {
			continue
		}
		c.Loaded = false
		delete(s.loaded, key)
		heap.Push(&s.evict, c)
	}

	s.cleanupCache()
	return generated
}

// load гарантирует, что чанк сгенерирован и активен. fresh=true, если он только что создан.
func (s *ChunkStream) load(cx, cy, key int) (*Chunk, bool) {
	c, ok := s.chunks[key]
	fresh := false
	if !ok {
		c = NewChunk(cx, cy, s.cfg.ChunkSize)
		s.gen.Populate(c, ChunkSeed(s.seed, cx, cy))
		c.Generated = true
		s.chunks[key] = c
		fresh = true

		logger.Component("chunk_stream").WithFields(logrus.Fields{
			"cx":    cx,
			"cy":    cy,
			"theme": c.Theme.String(),
			"walls": len(c.Walls()),
		}).Debug("Chunk generated")

		if s.sink != nil {
			x, y := c.WorldStart()
			s.sink.Push(domain.Event{
				Type:  domain.EventChunkGenerated,
				Index: cx,
				Count: cy,
				Name:  c.Theme.String(),
				Pos:   domain.At(domain.Vec2{X: float64(x), Y: float64(y)}),
			})
		}
	}

	if !c.Loaded {
		s.evict.remove(c)
		c.Loaded = true
		s.loaded[key] = c
	}
	c.LastAccess = s.now
	return c, fresh
}

// cleanupCache вытесняет самые старые выгруженные чанки, пока кэш больше лимита.
// Активные чанки не вытесняются никогда.
func (s *ChunkStream) cleanupCache() {
	for len(s.chunks) > s.cfg.MaxCachedChunks && s.evict.Len() > 0 {
		c := heap.Pop(&s.evict).(*Chunk)
		delete(s.chunks, domain.TileKey(c.CX, c.CY))
		c.clear()
		s.evicted++
	}
}

// ChunkAt - чанк по координатам чанка; nil, если не сгенерирован или вытеснен.
func (s *ChunkStream) ChunkAt(cx, cy int) *Chunk {
	if !s.validChunk(cx, cy) {
		return nil
	}
	c, ok := s.chunks[domain.TileKey(cx, cy)]
	if !ok {
		return nil
	}
	s.evict.touch(c, s.now)
	return c
}

// ChunkAtWorld - чанк, содержащий мировую точку. O(1).
func (s *ChunkStream) ChunkAtWorld(x, y float64) *Chunk {
	cx, cy := s.ChunkCoords(x, y)
	return s.ChunkAt(cx, cy)
}

// IsWalkable: вне карты или в неизвестном чанке - стена.
func (s *ChunkStream) IsWalkable(x, y int) bool {
	if x < 0 || y < 0 || x >= s.cfg.MapWidth || y >= s.cfg.MapHeight {
		return false
	}
	cx, cy := x/s.cfg.ChunkSize, y/s.cfg.ChunkSize
	c, ok := s.chunks[domain.TileKey(cx, cy)]
	if !ok {
		return false
	}
	return c.IsWalkable(x, y)
}

// LoadedChunks - активные чанки (порядок не определен).
func (s *ChunkStream) LoadedChunks() []*Chunk {
	out := make([]*Chunk, 0, len(s.loaded))
	for _, c := range s.loaded {
		out = append(out, c)
	}
	return out
}

func (s *ChunkStream) IsLoaded(cx, cy int) bool {
	_, ok := s.loaded[domain.TileKey(cx, cy)]
	return ok
}

func (s *ChunkStream) LoadedCount() int { return len(s.loaded) }

func (s *ChunkStream) CachedCount() int { return len(s.chunks) }

func (s *ChunkStream) EvictedCount() int { return s.evicted }

// ChunksPerRow - число чанков по горизонтали (для упаковки зон).
func (s *ChunkStream) ChunksPerRow() int { return s.maxCX }

// Seed - базовый сид карты.
func (s *ChunkStream) Seed() int64 { return s.seed }

// ZoneAt - номер зоны (чанка) мировой точки, без касания LRU.
func (s *ChunkStream) ZoneAt(x, y float64) uint16 {
	cx, cy := s.ChunkCoords(x, y)
	return uint16(cy*s.maxCX + cx)
}
