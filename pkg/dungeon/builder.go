package dungeon

import (
	"maze-core/internal/domain"
	"maze-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Level - загруженный фиксированный уровень.
type Level struct {
	Name           string
	PlayableWidth  int
	PlayableHeight int
	World          *domain.GridWorld

	// EnemySpawns - стартовые позиции врагов; сами враги создаются сессией через EnemyFactory.
	EnemySpawns []domain.Vec2

	// MovingTrapSpawns - стартовые позиции блуждающих ловушек.
	MovingTrapSpawns []domain.Vec2

	// Параметры врагов уровня.
	DamageType    domain.DamageType
	ShieldEnabled bool
}

// Entry - стартовая клетка игрока.
func (l *Level) Entry() domain.Tile {
	return l.World.Entry
}

// LevelBuilder предоставляет fluent API для сборки фиксированного уровня
type LevelBuilder struct {
	level    *Level
	ids      domain.IDAllocator
	hasEntry bool
	skipped  int
}

// NewLevel создает builder для игровой области w*h. Рамка добавляется в Build.
func NewLevel(playableWidth, playableHeight int) *LevelBuilder {
	total := func(n int) int { return n + 2*domain.BorderWidth }
	w := domain.NewGridWorld(0, 0, total(playableWidth), total(playableHeight))
	w.Entry = domain.Tile{X: domain.BorderWidth, Y: domain.BorderWidth}

	return &LevelBuilder{
		level: &Level{
			PlayableWidth:  playableWidth,
			PlayableHeight: playableHeight,
			World:          w,
			DamageType:     domain.DamagePhysical,
		},
	}
}

// WithName задает имя уровня (для событий победы и сохранений)
func (b *LevelBuilder) WithName(name string) *LevelBuilder {
	b.level.Name = name
	return b
}

// WithTheme устанавливает тему
func (b *LevelBuilder) WithTheme(theme domain.Theme) *LevelBuilder {
	b.level.World.Theme = theme
	return b
}

// WithEnemyShield включает щиты врагов заданного типа урона
func (b *LevelBuilder) WithEnemyShield(enabled bool, dtype domain.DamageType) *LevelBuilder {
	b.level.ShieldEnabled = enabled
	b.level.DamageType = dtype
	return b
}

// Place размещает объект из файла уровня по его идентификатору
func (b *LevelBuilder) Place(x, y, typeID int) *LevelBuilder {
	w := b.level.World
	pos := domain.Vec2{X: float64(x), Y: float64(y)}

	if dims, ok := domain.WallBlockSizes[typeID]; ok {
		seg := domain.NewWallSegment(x, y, dims[0], dims[1], WallTypeFor(dims[0], dims[1]), false, 0)
		if !w.AddWall(seg) {
			b.skip(x, y, typeID, "wall overlaps or leaves the map")
		}
		return b
	}

	switch typeID {
	case domain.ObjectEntry:
		w.Entry = domain.Tile{X: x, Y: y}
		b.hasEntry = true
	case domain.ObjectEnemy:
		b.level.EnemySpawns = append(b.level.EnemySpawns, pos)
	case domain.ObjectTrap:
		b.addObject(domain.KindTrap, pos)
	case domain.ObjectMobileTrap:
		b.level.MovingTrapSpawns = append(b.level.MovingTrapSpawns, pos)
	case domain.ObjectExit:
		b.addObject(domain.KindExit, pos)
	case domain.ObjectKey:
		b.addObject(domain.KindKey, pos)
	case domain.ObjectCoin:
		b.addObject(domain.KindCoin, pos)
	case domain.ObjectWeaponDrop:
		b.addObject(domain.KindWeaponUpgrade, pos)
	case domain.ObjectPotion:
		b.addObject(domain.KindPotion, pos)
	case domain.ObjectChest:
		b.addObject(domain.KindChest, pos)
	default:
		b.skip(x, y, typeID, "unknown object type")
	}
	return b
}

func (b *LevelBuilder) addObject(kind domain.EntityKind, pos domain.Vec2) {
	b.level.World.AddObject(domain.NewEntity(b.ids.Next(kind, 0), kind, pos))
}

func (b *LevelBuilder) skip(x, y, typeID int, reason string) {
	b.skipped++
	logger.Component("level_builder").WithFields(logrus.Fields{
		"x":      x,
		"y":      y,
		"typeId": typeID,
		"reason": reason,
	}).Debug("Object skipped")
}

// withBorder обводит карту рамкой толщиной BorderWidth.
// Клетки, уже занятые стенами файла, пропускаются.
func (b *LevelBuilder) withBorder() {
	w := b.level.World
	bw := domain.BorderWidth
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			inRing := x < bw || y < bw || x >= w.Width-bw || y >= w.Height-bw
			if !inRing || w.WallAt(x, y) != nil {
				continue
			}
			w.AddWall(domain.NewWallSegment(x, y, 1, 1, domain.ObjectBorderWall, true, 0))
		}
	}
}

// Skipped - сколько объектов файла не удалось разместить.
func (b *LevelBuilder) Skipped() int {
	return b.skipped
}

// Build добавляет рамку и возвращает готовый уровень
func (b *LevelBuilder) Build() *Level {
	b.withBorder()

	w := b.level.World
	if !w.IsWalkable(w.Entry.X, w.Entry.Y) {
		logger.Component("level_builder").WithFields(logrus.Fields{
			"entry":    w.Entry,
			"explicit": b.hasEntry,
		}).Warn("Entry tile is blocked")
	}
	return b.level
}
