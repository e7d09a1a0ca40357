package systems

import (
	"math"
	"math/rand"
	"maze-core/internal/domain"
)

// AIParams - тайминги и радиусы автомата врага.
type AIParams struct {
	DetectionRadius float64
	PatrolCooldown  float64 // секунд на шаг в патруле
	ChaseCooldown   float64 // секунд на шаг в погоне
	PatrolMinHold   float64
	PatrolMaxHold   float64
}

// AIContext - все, что враг знает о мире в этом кадре.
type AIContext struct {
	Target   domain.Vec2
	Collider Collider
	// Safe - подсказка достижимости; nil в бесконечном режиме.
	Safe *SafeGrid
	// OpenWorld включает приоритет по большей оси вместо "сначала X".
	OpenWorld       bool
	SpeedMultiplier float64
	Rng             *rand.Rand
	Params          AIParams
}

var cardinals = [4]domain.Tile{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// UpdateEnemy - один кадр автомата Patrol/Chase. Возвращает true, если враг шагнул.
// Таймеры эффектов и отбрасывания обновляются отдельно (UpdateEnemyTimers).
func UpdateEnemy(e *domain.Enemy, ctx AIContext, dt float64) bool {
	if !e.IsAlive() {
		return false
	}

	// 1. Переход состояния по дистанции
	if e.Pos.DistanceTo(ctx.Target) < ctx.Params.DetectionRadius {
		e.BecomeHostile()
	} else {
		e.CalmDown()
	}

	// 2. Таймер направления патруля тикает всегда
	e.DirTimer -= dt
	if e.DirTimer <= 0 || (e.Dir == domain.Tile{}) {
		rerollDirection(e, ctx)
	}

	// Заморозка блокирует движение целиком
	if e.Effect == domain.EffectFreeze && e.EffectTimer > 0 {
		return false
	}

	e.MoveCooldown -= dt
	if !e.IsReady() {
		return false
	}
	e.MoveCooldown = stepCooldown(e, ctx)

	if e.State == domain.AIStateChase {
		return chaseStep(e, ctx)
	}
	return patrolStep(e, ctx)
}

func stepCooldown(e *domain.Enemy, ctx AIContext) float64 {
	cd := ctx.Params.PatrolCooldown
	if e.State == domain.AIStateChase {
		cd = ctx.Params.ChaseCooldown
	}
	if ctx.SpeedMultiplier > 0 {
		cd /= ctx.SpeedMultiplier
	}
	if e.Effect == domain.EffectSlow && e.EffectTimer > 0 {
		cd *= 2
	}
	return cd
}

func rerollDirection(e *domain.Enemy, ctx AIContext) {
	if ctx.Rng == nil {
		e.Dir = cardinals[0]
		e.DirTimer = ctx.Params.PatrolMinHold
		return
	}
	e.Dir = cardinals[ctx.Rng.Intn(len(cardinals))]
	e.DirTimer = ctx.Params.PatrolMinHold + ctx.Rng.Float64()*(ctx.Params.PatrolMaxHold-ctx.Params.PatrolMinHold)
}

// patrolStep: ровно одна попытка шага; при столкновении направление перевыбирается, шага нет.
func patrolStep(e *domain.Enemy, ctx AIContext) bool {
	if tryStep(e, ctx, e.Dir.X, e.Dir.Y) {
		return true
	}
	rerollDirection(e, ctx)
	return false
}

// chaseStep - приоритет осей, без полноценного поиска пути.
func chaseStep(e *domain.Enemy, ctx AIContext) bool {
	dxRaw := ctx.Target.X - e.Pos.X
	dyRaw := ctx.Target.Y - e.Pos.Y
	stepX := domain.Sign(dxRaw)
	stepY := domain.Sign(dyRaw)

	tryXFirst := true
	if ctx.OpenWorld {
		tryXFirst = math.Abs(dxRaw) >= math.Abs(dyRaw)
	}

	if tryXFirst {
		if stepX != 0 && tryStep(e, ctx, stepX, 0) {
			return true
		}
		return stepY != 0 && tryStep(e, ctx, 0, stepY)
	}

	if stepY != 0 && tryStep(e, ctx, 0, stepY) {
		return true
	}
	return stepX != 0 && tryStep(e, ctx, stepX, 0)
}

func tryStep(e *domain.Enemy, ctx AIContext, dx, dy int) bool {
	res := CalculateMove(e.Pos, e.Size, domain.EnemyBoxPadding, dx, dy, ctx.Collider)
	if !res.HasMoved {
		return false
	}
	if ctx.Safe != nil {
		t := res.NewPos.Tile()
		if !ctx.Safe.IsSafe(t.X, t.Y) {
			return false
		}
	}
	e.Pos = res.NewPos
	return true
}
