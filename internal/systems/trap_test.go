package systems

import (
	"math/rand"
	"maze-core/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trapParams = MovingTrapParams{Speed: 4, MinHold: 0.5, MaxHold: 1}

func TestStepMovingTrap_BouncesOffWall(t *testing.T) {
	var column []domain.Tile
	for y := 0; y < 10; y++ {
		column = append(column, domain.Tile{X: 5, Y: y})
	}
	world := createTestWorld(10, 10, column...)
	rng := rand.New(rand.NewSource(4))

	trap := domain.NewMovingTrap(domain.PackEntityID(domain.KindMovingTrap, 0, 1), domain.Vec2{X: 3.9, Y: 4})
	trap.Dir = domain.Vec2{X: 1}
	trap.Hold = 100

	bounced := StepMovingTrap(trap, world, rng, trapParams, 0.25)

	require.True(t, bounced)
	assert.Equal(t, domain.Vec2{X: 3.9, Y: 4}, trap.Pos, "blocked step does not move")
	if trap.Timer == 0 {
		// Новый курс после отскока
		assert.InDelta(t, 1, trap.Dir.Len(), 1e-9)
		assert.GreaterOrEqual(t, trap.Hold, 0.5)
	} else {
		assert.Equal(t, domain.Vec2{X: -1}, trap.Dir)
	}
}

func TestStepMovingTrap_ChangesCourseAfterHold(t *testing.T) {
	world := createTestWorld(20, 20)
	rng := rand.New(rand.NewSource(5))

	trap := domain.NewMovingTrap(domain.PackEntityID(domain.KindMovingTrap, 0, 1), domain.Vec2{X: 10, Y: 10})
	StepMovingTrap(trap, world, rng, trapParams, 0.01)

	// Первый шаг выбирает курс
	assert.InDelta(t, 1, trap.Dir.Len(), 1e-9)
	assert.GreaterOrEqual(t, trap.Hold, 0.5)
	assert.LessOrEqual(t, trap.Hold, 1.0)
	assert.NotEqual(t, domain.Vec2{X: 10, Y: 10}, trap.Pos)

	first := trap.Dir
	trap.Pos = domain.Vec2{X: 10, Y: 10}
	StepMovingTrap(trap, world, rng, trapParams, 1.0)
	assert.NotEqual(t, first, trap.Dir)
	assert.Zero(t, trap.Timer)
}

func TestStepMovingTrap_NeverEntersWalls(t *testing.T) {
	world := createTestWorld(8, 8, domain.Tile{X: 4, Y: 4}, domain.Tile{X: 2, Y: 5})
	rng := rand.New(rand.NewSource(6))

	trap := domain.NewMovingTrap(domain.PackEntityID(domain.KindMovingTrap, 0, 1), domain.Vec2{X: 1, Y: 1})
	bounces := 0
	for i := 0; i < 3000; i++ {
		if StepMovingTrap(trap, world, rng, trapParams, 1.0/60) {
			bounces++
		}
		require.True(t, CanMoveBoxTo(world, trap.Pos.X, trap.Pos.Y,
			domain.MovingTrapBoxSize, domain.MovingTrapBoxSize, domain.MovingTrapBoxPadding), "step %d", i)
	}
	assert.Greater(t, bounces, 0)
}
