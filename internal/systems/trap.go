package systems

import (
	"math"
	"math/rand"
	"maze-core/internal/domain"
)

// MovingTrapParams - скорость и длительность курса блуждающей ловушки.
type MovingTrapParams struct {
	Speed   float64
	MinHold float64
	MaxHold float64
}

// StepMovingTrap двигает ловушку на dt. Курс меняется по истечении Hold.
// Упершись в стену, ловушка разворачивается и с вероятностью 1/2 выбирает новый курс.
// Возвращает true при отскоке.
func StepMovingTrap(t *domain.MovingTrap, c Collider, rng *rand.Rand, p MovingTrapParams, dt float64) bool {
	t.Timer += dt
	if t.Timer >= t.Hold {
		pickTrapCourse(t, rng, p)
	}

	nx := t.Pos.X + t.Dir.X*p.Speed*dt
	ny := t.Pos.Y + t.Dir.Y*p.Speed*dt
	if CanMoveBoxTo(c, nx, ny, domain.MovingTrapBoxSize, domain.MovingTrapBoxSize, domain.MovingTrapBoxPadding) {
		t.Pos = domain.Vec2{X: nx, Y: ny}
		return false
	}

	t.Dir = t.Dir.Scale(-1)
	if rng.Intn(2) == 1 {
		pickTrapCourse(t, rng, p)
	}
	return true
}

func pickTrapCourse(t *domain.MovingTrap, rng *rand.Rand, p MovingTrapParams) {
	angle := rng.Float64() * 2 * math.Pi
	t.Dir = domain.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	t.Timer = 0
	t.Hold = p.MinHold + rng.Float64()*(p.MaxHold-p.MinHold)
}
