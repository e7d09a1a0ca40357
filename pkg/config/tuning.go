package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning возвращается, если таблицы баланса противоречивы.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning содержит все числовые таблицы игрового баланса.
// Значения по умолчанию совпадают с Default(); файл YAML может переопределить любую секцию.
type Tuning struct {
	Combo   ComboTuning    `yaml:"combo"`
	Rage    RageTuning     `yaml:"rage"`
	Wave    WaveTuning     `yaml:"wave"`
	Endless EndlessTuning  `yaml:"endless"`
	Combat  CombatTuning   `yaml:"combat"`
	Loot    LootTuning     `yaml:"loot"`
	Chests  ChestTuning    `yaml:"chests"`
	Weapons []WeaponTuning `yaml:"weapons"`
}

type ComboTuning struct {
	DecayTime   float64   `yaml:"decay_time"`
	Thresholds  []int     `yaml:"thresholds"`
	Multipliers []float64 `yaml:"multipliers"`
	Names       []string  `yaml:"names"`
}

type RageTuning struct {
	Thresholds        []float64 `yaml:"thresholds"`
	Names             []string  `yaml:"names"`
	SpeedMultipliers  []float64 `yaml:"speed_multipliers"`
	DamageMultipliers []float64 `yaml:"damage_multipliers"`
}

type WaveTuning struct {
	TimeThresholds    []float64 `yaml:"time_thresholds"`
	SpawnIntervals    []float64 `yaml:"spawn_intervals"`
	HealthMultipliers []float64 `yaml:"health_multipliers"`
	SafePeriod        float64   `yaml:"safe_period"`
	FirstBossTime     float64   `yaml:"first_boss_time"`
	BossInterval      float64   `yaml:"boss_interval"`
}

// EndlessTuning - параметры бесконечной карты и спавна.
type EndlessTuning struct {
	MapWidth          int     `yaml:"map_width"`
	MapHeight         int     `yaml:"map_height"`
	ChunkSize         int     `yaml:"chunk_size"`
	ActiveChunkRadius int     `yaml:"active_chunk_radius"`
	MaxCachedChunks   int     `yaml:"max_cached_chunks"`
	SpaceZoneRadius   float64 `yaml:"space_zone_radius"`
	SpawnSafeRadius   float64 `yaml:"spawn_safe_radius"`
	WallDensity       float64 `yaml:"wall_density"`
	TrapDensity       float64 `yaml:"trap_density"`
	ChestTrapRatio    float64 `yaml:"chest_trap_ratio"`
	MaxChestsPerChunk int     `yaml:"max_chests_per_chunk"`
	MinSpawnPoints    int     `yaml:"min_spawn_points"`
	MaxSpawnPoints    int     `yaml:"max_spawn_points"`
	MaxEnemyCount     int     `yaml:"max_enemy_count"`
	SpawnMinDistance  float64 `yaml:"spawn_min_distance"`
	SpawnMaxDistance  float64 `yaml:"spawn_max_distance"`
	SpawnAttempts     int     `yaml:"spawn_attempts"`
	SpawnEdgeMargin   float64 `yaml:"spawn_edge_margin"`
	EnemyBaseHealth   int     `yaml:"enemy_base_health"`
	EnemyBaseDamage   int     `yaml:"enemy_base_damage"`
	ScorePerKill      int     `yaml:"score_per_kill"`
}

// CombatTuning - геометрия атак, таймеры ИИ и игрока.
type CombatTuning struct {
	DetectionRadius       float64 `yaml:"detection_radius"`
	PatrolCooldown        float64 `yaml:"patrol_cooldown"`
	ChaseCooldown         float64 `yaml:"chase_cooldown"`
	PatrolMinHold         float64 `yaml:"patrol_min_hold"`
	PatrolMaxHold         float64 `yaml:"patrol_max_hold"`
	InnerRadiusFactor     float64 `yaml:"inner_radius_factor"`
	OuterRadiusFactor     float64 `yaml:"outer_radius_factor"`
	ConeHalfAngleDeg      float64 `yaml:"cone_half_angle_deg"`
	KnockbackMin          float64 `yaml:"knockback_min"`
	KnockbackMax          float64 `yaml:"knockback_max"`
	ContactDistance       float64 `yaml:"contact_distance"`
	InvincibilityTime     float64 `yaml:"invincibility_time"`
	PlayerHurtFlash       float64 `yaml:"player_hurt_flash"`
	EnemyHurtFlash        float64 `yaml:"enemy_hurt_flash"`
	EnemyDeathTime        float64 `yaml:"enemy_death_time"`
	EffectDuration        float64 `yaml:"effect_duration"`
	EffectTickInterval    float64 `yaml:"effect_tick_interval"`
	WalkCooldown          float64 `yaml:"walk_cooldown"`
	RunCooldown           float64 `yaml:"run_cooldown"`
	PlayerLives           int     `yaml:"player_lives"`
	ProjectileTTL         float64 `yaml:"projectile_ttl"`
	ProjectileRadius      float64 `yaml:"projectile_radius"`
	TrapDistance          float64 `yaml:"trap_distance"`
	PotionDistance        float64 `yaml:"potion_distance"`
	ChestDistance         float64 `yaml:"chest_distance"`
	PotionFullHealthBonus int     `yaml:"potion_full_health_bonus"`
	MovingTrapSpeed       float64 `yaml:"moving_trap_speed"`
	MovingTrapMinHold     float64 `yaml:"moving_trap_min_hold"`
	MovingTrapMaxHold     float64 `yaml:"moving_trap_max_hold"`
}

// LootTuning - вероятности дропа при убийстве.
// Бесконечный режим: каждая категория бросается независимо.
// Уровни: один бросок по накопленным порогам (ничего, броня, оружие, иначе монеты)
// и отдельный бросок зелья.
type LootTuning struct {
	HealthPotion  float64 `yaml:"health_potion"`
	WeaponUpgrade float64 `yaml:"weapon_upgrade"`
	ComboExtender float64 `yaml:"combo_extender"`
	ExtendSeconds float64 `yaml:"extend_seconds"`

	LevelNothing  float64 `yaml:"level_nothing"`
	LevelArmor    float64 `yaml:"level_armor"`
	LevelWeapon   float64 `yaml:"level_weapon"`
	LevelPotion   float64 `yaml:"level_potion"`
	LevelCoinMin  int     `yaml:"level_coin_min"`
	LevelCoinMax  int     `yaml:"level_coin_max"`
	PhysicalArmor int     `yaml:"physical_armor"`
	MagicalArmor  int     `yaml:"magical_armor"`
}

// ChestTuning - веса наград сундуков для фиксированных уровней и бесконечного режима.
type ChestTuning struct {
	LevelWeapon   int     `yaml:"level_weapon"`
	LevelCoin          int `yaml:"level_coin"`
	LevelHealth        int `yaml:"level_health"`
	LevelInvincibility int `yaml:"level_invincibility"`
	EndlessMedkit      int `yaml:"endless_medkit"`
	EndlessSpeed       int `yaml:"endless_speed"`
	EndlessRage        int `yaml:"endless_rage"`
	EndlessShield      int `yaml:"endless_shield"`
	EndlessEMP         int `yaml:"endless_emp"`
}

type WeaponTuning struct {
	Name            string  `yaml:"name"`
	Damage          int     `yaml:"damage"`
	Range           float64 `yaml:"range"`
	Cooldown        float64 `yaml:"cooldown"`
	Effect          string  `yaml:"effect"`
	DamageType      string  `yaml:"damage_type"`
	Ranged          bool    `yaml:"ranged"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

// Default возвращает баланс оригинальной игры.
func Default() Tuning {
	return Tuning{
		Combo: ComboTuning{
			DecayTime:   5,
			Thresholds:  []int{0, 5, 10, 20, 50},
			Multipliers: []float64{1.0, 1.5, 2.0, 3.0, 5.0},
			Names:       []string{"", "NICE!", "GREAT!", "UNSTOPPABLE!", "GODLIKE!"},
		},
		Rage: RageTuning{
			Thresholds:        []float64{0, 21, 41, 61, 81},
			Names:             []string{"Calm", "Alert", "Aggressive", "Furious", "Berserk"},
			SpeedMultipliers:  []float64{1.0, 1.1, 1.2, 1.3, 1.5},
			DamageMultipliers: []float64{1.0, 1.0, 1.0, 1.2, 1.5},
		},
		Wave: WaveTuning{
			TimeThresholds:    []float64{0, 90, 240, 420, 600, 900},
			SpawnIntervals:    []float64{4.0, 3.0, 2.5, 2.0, 1.5, 1.0},
			HealthMultipliers: []float64{1.0, 1.1, 1.25, 1.5, 1.75, 2.0},
			SafePeriod:        15,
			FirstBossTime:     720,
			BossInterval:      120,
		},
		Endless: EndlessTuning{
			MapWidth:          900,
			MapHeight:         900,
			ChunkSize:         64,
			ActiveChunkRadius: 2,
			MaxCachedChunks:   100,
			SpaceZoneRadius:   200,
			SpawnSafeRadius:   8,
			WallDensity:       0.40,
			TrapDensity:       0.005,
			ChestTrapRatio:    0.05,
			MaxChestsPerChunk: 2,
			MinSpawnPoints:    4,
			MaxSpawnPoints:    8,
			MaxEnemyCount:     200,
			SpawnMinDistance:  20,
			SpawnMaxDistance:  50,
			SpawnAttempts:     5,
			SpawnEdgeMargin:   5,
			EnemyBaseHealth:   3,
			EnemyBaseDamage:   1,
			ScorePerKill:      100,
		},
		Combat: CombatTuning{
			DetectionRadius:       5,
			PatrolCooldown:        0.5,
			ChaseCooldown:         0.3,
			PatrolMinHold:         2,
			PatrolMaxHold:         4,
			InnerRadiusFactor:     0.8,
			OuterRadiusFactor:     1.2,
			ConeHalfAngleDeg:      30,
			KnockbackMin:          1,
			KnockbackMax:          4,
			ContactDistance:       0.8,
			InvincibilityTime:     1.0,
			PlayerHurtFlash:       0.3,
			EnemyHurtFlash:        0.2,
			EnemyDeathTime:        0.5,
			EffectDuration:        3.0,
			EffectTickInterval:    1.0,
			WalkCooldown:          0.2,
			RunCooldown:           0.1,
			PlayerLives:           3,
			ProjectileTTL:         3.0,
			ProjectileRadius:      0.15,
			TrapDistance:          0.8,
			PotionDistance:        1.0,
			ChestDistance:         1.2,
			PotionFullHealthBonus: 50,
			MovingTrapSpeed:       4.0,
			MovingTrapMinHold:     0.5,
			MovingTrapMaxHold:     1.0,
		},
		Loot: LootTuning{
			HealthPotion:  0.15,
			WeaponUpgrade: 0.30,
			ComboExtender: 0.08,
			ExtendSeconds: 5,
			LevelNothing:  0.05,
			LevelArmor:    0.10,
			LevelWeapon:   0.15,
			LevelPotion:   0.10,
			LevelCoinMin:  1,
			LevelCoinMax:  5,
			PhysicalArmor: 5,
			MagicalArmor:  4,
		},
		Chests: ChestTuning{
			LevelWeapon:        15,
			LevelCoin:          35,
			LevelHealth:        30,
			LevelInvincibility: 20,
			EndlessMedkit:      20,
			EndlessSpeed:       25,
			EndlessRage:        25,
			EndlessShield:      20,
			EndlessEMP:         10,
		},
		Weapons: []WeaponTuning{
			{Name: "Sword", Damage: 1, Range: 1.5, Cooldown: 0.5, Effect: "NONE", DamageType: "PHYSICAL"},
			{Name: "Ice Bow", Damage: 1, Range: 5.0, Cooldown: 0.8, Effect: "FREEZE", DamageType: "PHYSICAL", Ranged: true, ProjectileSpeed: 15},
			{Name: "Crossbow", Damage: 2, Range: 6.0, Cooldown: 1.5, Effect: "NONE", DamageType: "PHYSICAL", Ranged: true, ProjectileSpeed: 12},
			{Name: "Magic Wand", Damage: 1, Range: 5.0, Cooldown: 1.0, Effect: "BURN", DamageType: "MAGICAL", Ranged: true, ProjectileSpeed: 10},
		},
	}
}

// Load читает YAML поверх значений по умолчанию.
// Пустой путь означает "только значения по умолчанию".
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return t, fmt.Errorf("decode tuning %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate проверяет согласованность таблиц.
func (t Tuning) Validate() error {
	c := t.Combo
	if len(c.Thresholds) == 0 || len(c.Thresholds) != len(c.Multipliers) || len(c.Thresholds) != len(c.Names) {
		return fmt.Errorf("%w: combo tables length mismatch", ErrInvalidTuning)
	}
	for i := 1; i < len(c.Thresholds); i++ {
		if c.Thresholds[i] <= c.Thresholds[i-1] {
			return fmt.Errorf("%w: combo thresholds must ascend", ErrInvalidTuning)
		}
		if c.Multipliers[i] < c.Multipliers[i-1] {
			return fmt.Errorf("%w: combo multipliers must not decrease", ErrInvalidTuning)
		}
	}
	if c.DecayTime <= 0 {
		return fmt.Errorf("%w: combo decay_time must be positive", ErrInvalidTuning)
	}

	r := t.Rage
	n := len(r.Thresholds)
	if n == 0 || len(r.Names) != n || len(r.SpeedMultipliers) != n || len(r.DamageMultipliers) != n {
		return fmt.Errorf("%w: rage tables length mismatch", ErrInvalidTuning)
	}
	if !ascending(r.Thresholds) {
		return fmt.Errorf("%w: rage thresholds must ascend", ErrInvalidTuning)
	}

	w := t.Wave
	n = len(w.TimeThresholds)
	if n == 0 || len(w.SpawnIntervals) != n || len(w.HealthMultipliers) != n {
		return fmt.Errorf("%w: wave tables length mismatch", ErrInvalidTuning)
	}
	if !ascending(w.TimeThresholds) {
		return fmt.Errorf("%w: wave thresholds must ascend", ErrInvalidTuning)
	}
	if w.BossInterval <= 0 {
		return fmt.Errorf("%w: boss_interval must be positive", ErrInvalidTuning)
	}

	e := t.Endless
	if e.ChunkSize <= 0 || e.MapWidth < e.ChunkSize || e.MapHeight < e.ChunkSize {
		return fmt.Errorf("%w: map must hold at least one chunk", ErrInvalidTuning)
	}
	if e.SpawnMaxDistance < e.SpawnMinDistance {
		return fmt.Errorf("%w: spawn distance range inverted", ErrInvalidTuning)
	}

	l := t.Loot
	if l.LevelNothing < 0 || l.LevelArmor < 0 || l.LevelWeapon < 0 || l.LevelNothing+l.LevelArmor+l.LevelWeapon > 1 {
		return fmt.Errorf("%w: level loot chances must be non-negative and sum to at most 1", ErrInvalidTuning)
	}
	if l.LevelCoinMin < 0 || l.LevelCoinMax < l.LevelCoinMin {
		return fmt.Errorf("%w: level coin range inverted", ErrInvalidTuning)
	}
	if t.Combat.MovingTrapMaxHold < t.Combat.MovingTrapMinHold {
		return fmt.Errorf("%w: moving trap hold range inverted", ErrInvalidTuning)
	}

	if len(t.Weapons) == 0 {
		return fmt.Errorf("%w: at least one weapon required", ErrInvalidTuning)
	}
	return nil
}

func ascending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}
