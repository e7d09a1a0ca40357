package systems

import (
	"math"
	"maze-core/internal/domain"
)

// SpawnProjectile создает снаряд из origin в направлении angleDeg.
func SpawnProjectile(origin domain.Vec2, angleDeg float64, w domain.Weapon, bonus int, fromPlayer bool, ttl, radius float64) domain.Projectile {
	rad := angleDeg * math.Pi / 180
	speed := w.ProjectileSpeed
	if speed <= 0 {
		speed = 10
	}
	return domain.Projectile{
		Pos:        origin,
		Vel:        domain.Vec2{X: math.Cos(rad) * speed, Y: math.Sin(rad) * speed},
		Damage:     w.Damage + bonus,
		DamageType: w.DamageType,
		Effect:     w.Effect,
		FromPlayer: fromPlayer,
		TTL:        ttl,
		Radius:     radius,
		Range:      w.Range,
		Alive:      true,
	}
}

// StepProjectile двигает снаряд. Гасит его при истечении TTL, выходе за дальность
// или попадании в непроходимую клетку.
func StepProjectile(p *domain.Projectile, c Collider, dt float64) {
	if !p.Alive {
		return
	}

	p.TTL -= dt
	if p.TTL <= 0 {
		p.Alive = false
		return
	}

	delta := p.Vel.Scale(dt)
	next := p.Pos.Add(delta)
	t := next.Tile()
	if !c.IsWalkable(t.X, t.Y) {
		p.Alive = false
		return
	}

	p.Pos = next
	p.Traveled += delta.Len()
	if p.Range > 0 && p.Traveled > p.Range*2 {
		p.Alive = false
	}
}

// HitsCircle - круг против круга по сумме радиусов.
func HitsCircle(p *domain.Projectile, center domain.Vec2, radius float64) bool {
	if !p.Alive {
		return false
	}
	r := p.Radius + radius
	return p.Pos.DistanceSquaredTo(center) < r*r
}

// CompactProjectiles удаляет погасшие снаряды перестановкой с последним. Порядок не сохраняется.
func CompactProjectiles(ps []domain.Projectile) []domain.Projectile {
	for i := 0; i < len(ps); {
		if ps[i].Alive {
			i++
			continue
		}
		last := len(ps) - 1
		ps[i] = ps[last]
		ps = ps[:last]
	}
	return ps
}
