package domain

// Projectile - снаряд дальнобойного оружия (или босса).
type Projectile struct {
	Pos        Vec2         `json:"pos"`
	Vel        Vec2         `json:"vel"`
	Damage     int          `json:"damage"`
	DamageType DamageType   `json:"damageType"`
	Effect     WeaponEffect `json:"effect"`
	FromPlayer bool         `json:"fromPlayer"`
	TTL        float64      `json:"ttl"`
	Radius     float64      `json:"radius"`

	// Range - максимальная дистанция полета; 0 = только по TTL.
	Range    float64 `json:"-"`
	Traveled float64 `json:"-"`

	Alive bool `json:"alive"`
}

// FloatingText - короткоживущая надпись над сущностью ("-1", "NICE!").
type FloatingText struct {
	Text string  `json:"text"`
	Pos  Vec2    `json:"pos"`
	TTL  float64 `json:"ttl"`
}
