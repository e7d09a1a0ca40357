package systems

import (
	"math/rand"
	"maze-core/internal/domain"
)

// LootTable - независимые вероятности дропа по категориям.
type LootTable struct {
	HealthPotion  float64
	WeaponUpgrade float64
	ComboExtender float64
}

// RollLoot бросает каждую категорию отдельно; результат может быть пустым.
func RollLoot(rng *rand.Rand, t LootTable) []domain.EntityKind {
	var drops []domain.EntityKind
	if rng.Float64() < t.HealthPotion {
		drops = append(drops, domain.KindPotion)
	}
	if rng.Float64() < t.WeaponUpgrade {
		drops = append(drops, domain.KindWeaponUpgrade)
	}
	if rng.Float64() < t.ComboExtender {
		drops = append(drops, domain.KindComboExtender)
	}
	return drops
}

// LootDrop - один выпавший предмет. Amount - монеты, Armor - тип брони.
type LootDrop struct {
	Kind   domain.EntityKind
	Amount int
	Armor  domain.DamageType
}

// LevelLootTable - дроп фиксированных уровней.
type LevelLootTable struct {
	Nothing float64
	Armor   float64
	Weapon  float64
	Potion  float64
	CoinMin int
	CoinMax int
}

// RollLevelLoot: один бросок по накопленным порогам (ничего, броня, оружие, иначе монеты)
// и отдельный бросок зелья. Монет больше на поздних уровнях: +levelNum/2.
func RollLevelLoot(rng *rand.Rand, t LevelLootTable, levelNum int) []LootDrop {
	var drops []LootDrop

	roll := rng.Float64()
	switch {
	case roll < t.Nothing:
	case roll < t.Nothing+t.Armor:
		armor := domain.DamagePhysical
		if rng.Intn(2) == 1 {
			armor = domain.DamageMagical
		}
		drops = append(drops, LootDrop{Kind: domain.KindArmor, Armor: armor})
	case roll < t.Nothing+t.Armor+t.Weapon:
		drops = append(drops, LootDrop{Kind: domain.KindWeaponUpgrade})
	default:
		coins := t.CoinMin + rng.Intn(t.CoinMax-t.CoinMin+1) + levelNum/2
		drops = append(drops, LootDrop{Kind: domain.KindCoin, Amount: coins})
	}

	if rng.Float64() < t.Potion {
		drops = append(drops, LootDrop{Kind: domain.KindPotion})
	}
	return drops
}

// ChestRewardKind - вид награды сундука.
type ChestRewardKind uint8

const (
	RewardNone ChestRewardKind = iota
	RewardWeapon
	RewardCoins
	RewardHealth
	RewardInvincibility
	RewardMedkit
	RewardSpeed
	RewardRage
	RewardShield
	RewardEMP
)

var rewardNames = [...]string{"NONE", "WEAPON", "COINS", "HEALTH", "INVINCIBILITY", "MEDKIT", "SPEED", "RAGE", "SHIELD", "EMP"}

func (k ChestRewardKind) String() string {
	if int(k) < len(rewardNames) {
		return rewardNames[k]
	}
	return "NONE"
}

// ChestReward - выпавшая награда.
type ChestReward struct {
	Kind     ChestRewardKind
	Amount   int
	Duration float64
}

// ChestWeights - веса наград (секция chests тюнинга).
type ChestWeights struct {
	LevelWeapon        int
	LevelCoin          int
	LevelHealth        int
	LevelInvincibility int
	EndlessMedkit      int
	EndlessSpeed       int
	EndlessRage        int
	EndlessShield      int
	EndlessEMP         int
}

type weighted struct {
	kind   ChestRewardKind
	weight int
}

// RollChestReward выбирает награду по весам режима.
func RollChestReward(rng *rand.Rand, w ChestWeights, endless bool) ChestReward {
	var table []weighted
	if endless {
		table = []weighted{
			{RewardMedkit, w.EndlessMedkit},
			{RewardSpeed, w.EndlessSpeed},
			{RewardRage, w.EndlessRage},
			{RewardShield, w.EndlessShield},
			{RewardEMP, w.EndlessEMP},
		}
	} else {
		table = []weighted{
			{RewardWeapon, w.LevelWeapon},
			{RewardCoins, w.LevelCoin},
			{RewardHealth, w.LevelHealth},
			{RewardInvincibility, w.LevelInvincibility},
		}
	}

	total := 0
	for _, e := range table {
		total += e.weight
	}
	if total <= 0 {
		return ChestReward{}
	}

	roll := rng.Intn(total)
	kind := RewardNone
	for _, e := range table {
		if roll < e.weight {
			kind = e.kind
			break
		}
		roll -= e.weight
	}

	r := ChestReward{Kind: kind}
	switch kind {
	case RewardCoins:
		r.Amount = 50 + rng.Intn(151)
	case RewardHealth:
		r.Amount = 1 + rng.Intn(3)
	case RewardInvincibility:
		r.Duration = 15
	case RewardSpeed:
		r.Duration = float64(20 + rng.Intn(21))
	case RewardRage:
		r.Duration = float64(15 + rng.Intn(16))
	case RewardWeapon:
		r.Amount = 1
	}
	return r
}
