package domain

// SnapshotVersion - версия формата сохраняемого снапшота.
const SnapshotVersion = 1

// Snapshot - сохраняемое состояние сессии. Внутренние таймеры не сохраняются:
// ярость и волна пересчитываются из времени выживания при восстановлении.
type Snapshot struct {
	Version   int    `json:"version" msgpack:"version"`
	SavedAt   int64  `json:"savedAt" msgpack:"saved_at"`
	SessionID string `json:"sessionId" msgpack:"session_id"`
	Mode      string `json:"mode" msgpack:"mode"`
	LevelID   string `json:"levelId,omitempty" msgpack:"level_id,omitempty"`
	Seed      int64  `json:"seed" msgpack:"seed"`

	PlayerX         float64  `json:"playerX" msgpack:"player_x"`
	PlayerY         float64  `json:"playerY" msgpack:"player_y"`
	Lives           int      `json:"lives" msgpack:"lives"`
	MaxLives        int      `json:"maxLives" msgpack:"max_lives"`
	ArmorType       string   `json:"armorType,omitempty" msgpack:"armor_type,omitempty"`
	ArmorDurability int      `json:"armorDurability,omitempty" msgpack:"armor_durability,omitempty"`
	EquippedWeapon  string   `json:"equippedWeapon" msgpack:"equipped_weapon"`
	UnlockedWeapons []string `json:"unlockedWeapons" msgpack:"unlocked_weapons"`
	WeaponBonus     int      `json:"weaponBonus" msgpack:"weapon_bonus"`
	HasKey          bool     `json:"hasKey,omitempty" msgpack:"has_key,omitempty"`

	SurvivalTime float64 `json:"survivalTime" msgpack:"survival_time"`
	TotalKills   int     `json:"totalKills" msgpack:"total_kills"`
	CurrentCombo int     `json:"currentCombo" msgpack:"current_combo"`
	MaxCombo     int     `json:"maxCombo" msgpack:"max_combo"`
	RageLevel    float64 `json:"rageLevel" msgpack:"rage_level"`
	WaveIndex    int     `json:"waveIndex" msgpack:"wave_index"`
	Score        int     `json:"score" msgpack:"score"`
	Coins        int     `json:"coins" msgpack:"coins"`
	Potions      int     `json:"potions" msgpack:"potions"`

	Zone   string `json:"zone" msgpack:"zone"`
	ChunkX int    `json:"chunkX" msgpack:"chunk_x"`
	ChunkY int    `json:"chunkY" msgpack:"chunk_y"`
}
