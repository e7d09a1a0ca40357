package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridWorld_IsWalkableOutOfBounds(t *testing.T) {
	w := NewGridWorld(0, 0, 10, 8)

	cases := []Tile{{-1, 0}, {0, -1}, {10, 0}, {0, 8}, {-5, -5}, {100, 3}}
	for _, c := range cases {
		assert.False(t, w.IsWalkable(c.X, c.Y), "tile %v must be blocked", c)
	}
	assert.True(t, w.IsWalkable(0, 0))
	assert.True(t, w.IsWalkable(9, 7))
}

func TestGridWorld_WallOccupancy(t *testing.T) {
	w := NewGridWorld(0, 0, 10, 10)
	seg := NewWallSegment(2, 3, 3, 2, ObjectWall3x2, false, 0)
	require.True(t, w.AddWall(seg))

	occupied := map[int]bool{}
	for _, k := range seg.Keys() {
		occupied[k] = true
	}
	require.Len(t, occupied, 6)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, !occupied[TileKey(x, y)], w.IsWalkable(x, y), "tile (%d,%d)", x, y)
		}
	}
	assert.Same(t, seg, w.WallAt(4, 4))
	assert.Nil(t, w.WallAt(0, 0))
}

func TestGridWorld_AddWallRejectsOverlap(t *testing.T) {
	w := NewGridWorld(0, 0, 10, 10)
	require.True(t, w.AddWall(NewWallSegment(2, 2, 2, 2, ObjectWall2x2, false, 0)))

	assert.False(t, w.AddWall(NewWallSegment(3, 3, 2, 2, ObjectWall2x2, false, 0)))
	assert.False(t, w.AddWall(NewWallSegment(9, 9, 2, 2, ObjectWall2x2, false, 0)), "out of bounds")

	// Отклоненный сегмент не должен оставить ни одной клетки.
	assert.True(t, w.IsWalkable(4, 4))
	assert.True(t, w.IsWalkable(9, 9))
	assert.Equal(t, 4, w.OccupiedCount())
	assert.Len(t, w.Segments, 1)
}

func TestGridWorld_OriginOffset(t *testing.T) {
	w := NewGridWorld(64, 128, 64, 64)
	assert.False(t, w.IsWalkable(63, 130))
	assert.True(t, w.IsWalkable(64, 128))
	assert.True(t, w.IsWalkable(127, 191))
	assert.False(t, w.IsWalkable(128, 191))
}

func TestWallSegment_CollisionHeight(t *testing.T) {
	seg := NewWallSegment(0, 0, 2, 4, ObjectWall2x4, false, 1)
	assert.Len(t, seg.Keys(), 2)
	assert.True(t, seg.Occupies(1, 0))
	assert.False(t, seg.Occupies(1, 1))
}

func TestGridWorld_AddRemoveObject(t *testing.T) {
	w := NewGridWorld(0, 0, 10, 10)
	var ids IDAllocator

	a := NewEntity(ids.Next(KindTrap, 0), KindTrap, Vec2{X: 1, Y: 1})
	b := NewEntity(ids.Next(KindChest, 0), KindChest, Vec2{X: 2, Y: 2})
	c := NewEntity(ids.Next(KindTrap, 0), KindTrap, Vec2{X: 3, Y: 3})
	w.AddObject(a)
	w.AddObject(b)
	w.AddObject(c)

	assert.Len(t, w.ObjectsOfKind(KindTrap), 2)
	assert.True(t, w.RemoveObject(a.ID))
	assert.False(t, w.RemoveObject(a.ID))
	assert.Len(t, w.Objects, 2)
	assert.Len(t, w.ObjectsOfKind(KindTrap), 1)
}
