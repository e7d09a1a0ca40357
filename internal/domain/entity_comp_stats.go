package domain

// Health - очки жизни. У игрока это "жизни", у врага - HP.
type Health struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

func NewHealth(max int) Health {
	return Health{HP: max, MaxHP: max}
}

// TakeDamage наносит урон. Возвращает true, если цель погибла именно этим ударом.
func (h *Health) TakeDamage(amount int) bool {
	if h.IsDead || amount <= 0 {
		return false
	}

	h.HP -= amount

	if h.HP <= 0 {
		h.HP = 0
		h.IsDead = true
		return true
	}
	return false
}

// Heal лечит, не выше максимума. Мертвых не лечим.
func (h *Health) Heal(amount int) {
	if h.IsDead {
		return
	}
	h.HP += amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
}

func (h *Health) IsFull() bool {
	return h.HP >= h.MaxHP
}
