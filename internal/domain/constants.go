package domain

// Габариты коробок коллизий (в клетках).
const (
	PlayerBoxSize    = 0.9
	PlayerBoxPadding = 0.05

	EnemyBoxSize    = 0.9
	EnemyBoxPadding = 0.05

	BossBoxSize = 2.0

	SpawnBoxSize    = 1.0
	SpawnBoxPadding = 0.1
)

// BorderWidth - толщина внешней рамки фиксированного уровня.
const BorderWidth = 2

// Идентификаторы объектов в файлах уровней.
const (
	ObjectWall       = 0
	ObjectEntry      = 1
	ObjectExit       = 2
	ObjectTrap       = 3
	ObjectEnemy      = 4
	ObjectKey        = 5
	ObjectMobileTrap = 6
	ObjectCoin       = 7
	ObjectWeaponDrop = 8
	ObjectArmorDrop  = 9
	ObjectWall2x2    = 10
	ObjectWall3x2    = 11
	ObjectWall2x3    = 12
	ObjectWall2x4    = 13
	ObjectWall4x2    = 14
	ObjectWall3x3    = 15
	ObjectWall4x4    = 16
	ObjectPotion     = 17
	ObjectChest      = 20
	ObjectBorderWall = 99
)

// WallBlockSizes - размеры блоков стен по их идентификатору.
var WallBlockSizes = map[int][2]int{
	ObjectWall:    {2, 2},
	ObjectWall2x2: {2, 2},
	ObjectWall3x2: {3, 2},
	ObjectWall2x3: {2, 3},
	ObjectWall2x4: {2, 4},
	ObjectWall4x2: {4, 2},
	ObjectWall3x3: {3, 3},
	ObjectWall4x4: {4, 4},
}
