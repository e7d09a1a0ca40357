package systems

import (
	"maze-core/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSafeGrid_OpenRoom(t *testing.T) {
	world := createTestWorld(3, 3)

	grid := BuildSafeGrid(world, 0, 0, 3, 3, domain.Tile{X: 0, Y: 0})

	assert.Equal(t, 9, grid.Count())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.True(t, grid.IsSafe(x, y), "tile (%d,%d)", x, y)
		}
	}
	assert.False(t, grid.IsSafe(3, 0))
	assert.False(t, grid.IsSafe(-1, 1))
}

func TestBuildSafeGrid_UnreachablePocket(t *testing.T) {
	// Вертикальная стена в x=2 отрезает правую часть карты 5x3.
	world := createTestWorld(5, 3,
		domain.Tile{X: 2, Y: 0}, domain.Tile{X: 2, Y: 1}, domain.Tile{X: 2, Y: 2},
	)

	grid := BuildSafeGrid(world, 0, 0, 5, 3, domain.Tile{X: 0, Y: 1})

	assert.Equal(t, 6, grid.Count())
	assert.True(t, grid.IsSafe(1, 2))
	assert.False(t, grid.IsSafe(2, 1), "wall")
	assert.False(t, grid.IsSafe(3, 1), "pocket")
}

func TestBuildSafeGrid_DiagonalIsNotANeighbour(t *testing.T) {
	//  . #
	//  # .
	world := createTestWorld(2, 2, domain.Tile{X: 1, Y: 0}, domain.Tile{X: 0, Y: 1})

	grid := BuildSafeGrid(world, 0, 0, 2, 2, domain.Tile{X: 0, Y: 0})
	assert.Equal(t, 1, grid.Count())
	assert.False(t, grid.IsSafe(1, 1))
}

func TestBuildSafeGrid_BlockedStart(t *testing.T) {
	world := createTestWorld(3, 3, domain.Tile{X: 1, Y: 1})
	grid := BuildSafeGrid(world, 0, 0, 3, 3, domain.Tile{X: 1, Y: 1})
	assert.Equal(t, 0, grid.Count())
}

func TestSafeGrid_NilAllowsEverything(t *testing.T) {
	var grid *SafeGrid
	assert.True(t, grid.IsSafe(100, 100))
	assert.Equal(t, 0, grid.Count())
}
