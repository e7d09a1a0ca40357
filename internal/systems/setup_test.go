package systems

import (
	"maze-core/internal/domain"
	"maze-core/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// createTestWorld - пустая карта с одиночными стенами в заданных клетках.
func createTestWorld(w, h int, walls ...domain.Tile) *domain.GridWorld {
	world := domain.NewGridWorld(0, 0, w, h)
	for _, t := range walls {
		world.AddWall(domain.NewWallSegment(t.X, t.Y, 1, 1, domain.ObjectWall, false, 0))
	}
	return world
}

func defaultAIParams() AIParams {
	return AIParams{
		DetectionRadius: 5,
		PatrolCooldown:  0.5,
		ChaseCooldown:   0.3,
		PatrolMinHold:   2,
		PatrolMaxHold:   4,
	}
}

func defaultMeleeParams() MeleeParams {
	return MeleeParams{
		InnerFactor:      0.8,
		OuterFactor:      1.2,
		ConeHalfAngleDeg: 30,
		KnockbackMin:     1,
		KnockbackMax:     4,
		EffectDuration:   3,
		HurtFlash:        0.2,
		DeathTime:        0.5,
	}
}
