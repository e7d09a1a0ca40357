package utils

import (
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID сессии или токен игрока.
func GenerateID() string {
	return uuid.NewString()
}

// StringToSeed превращает строку (например, ID сессии) в детерминированное зерно.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// NewRand создает отдельный генератор для подсистемы.
// Каждая сессия владеет своими генераторами, глобальный rand не используется.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandRange возвращает float в диапазоне [min, max).
func RandRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
