package dungeon

import (
	"maze-core/internal/domain"
	"maze-core/pkg/config"
)

// levelShieldPoints - щит врагов уровня с включенными щитами.
const levelShieldPoints = 3

// EnemyFactory создает врагов и боссов с масштабированием по волне.
type EnemyFactory struct {
	ids        *domain.IDAllocator
	baseHealth int
	baseDamage int
}

func NewEnemyFactory(ids *domain.IDAllocator, cfg config.EndlessTuning) *EnemyFactory {
	return &EnemyFactory{
		ids:        ids,
		baseHealth: cfg.EnemyBaseHealth,
		baseDamage: cfg.EnemyBaseDamage,
	}
}

// Enemy - обычный враг бесконечного режима: health = max(1, int(base * mult)).
func (f *EnemyFactory) Enemy(pos domain.Vec2, zone uint16, healthMult float64) *domain.Enemy {
	hp := max(1, int(float64(f.baseHealth)*healthMult))
	return domain.NewEnemy(f.ids.Next(domain.KindEnemy, zone), pos, hp, f.baseDamage)
}

// Boss - крупный враг с магической атакой и иммунитетом к физическому урону.
func (f *EnemyFactory) Boss(pos domain.Vec2, zone uint16, healthMult float64) *domain.Enemy {
	hp := f.baseHealth*10 + int(healthMult*100)
	e := domain.NewEnemy(f.ids.Next(domain.KindBoss, zone), pos, hp, f.baseDamage*2)
	e.Kind = domain.KindBoss
	e.Size = domain.BossBoxSize
	e.AttackType = domain.DamageMagical
	e.Resistance = domain.DamagePhysical
	return e
}

// LevelEnemy - враг фиксированного уровня, со щитом если он включен в файле.
func (f *EnemyFactory) LevelEnemy(pos domain.Vec2, level *Level) *domain.Enemy {
	e := domain.NewEnemy(f.ids.Next(domain.KindEnemy, 0), pos, f.baseHealth, f.baseDamage)
	if level.ShieldEnabled {
		e.AttackType = level.DamageType
		e.Shield = levelShieldPoints
		e.ShieldType = level.DamageType
	}
	return e
}

// MovingTrap - блуждающая ловушка уровня.
func (f *EnemyFactory) MovingTrap(pos domain.Vec2) *domain.MovingTrap {
	return domain.NewMovingTrap(f.ids.Next(domain.KindMovingTrap, 0), pos)
}

// Player создает игрока с арсеналом из таблицы оружия.
func (f *EnemyFactory) Player(pos domain.Vec2, lives int, weapons []domain.Weapon) *domain.Player {
	return domain.NewPlayer(f.ids.Next(domain.KindPlayer, 0), pos, lives, weapons)
}

// Weapons переводит таблицу оружия из тюнинга в доменные значения.
func Weapons(table []config.WeaponTuning) []domain.Weapon {
	out := make([]domain.Weapon, 0, len(table))
	for _, w := range table {
		out = append(out, domain.Weapon{
			Name:            w.Name,
			Damage:          w.Damage,
			Range:           w.Range,
			Cooldown:        w.Cooldown,
			Effect:          domain.ParseWeaponEffect(w.Effect),
			DamageType:      domain.ParseDamageType(w.DamageType),
			Ranged:          w.Ranged,
			ProjectileSpeed: w.ProjectileSpeed,
		})
	}
	return out
}
