package domain

// AIState - состояние автомата врага.
type AIState uint8

const (
	AIStatePatrol AIState = iota
	AIStateChase
)

func (s AIState) String() string {
	if s == AIStateChase {
		return "CHASE"
	}
	return "PATROL"
}

func (s AIState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BecomeHostile переводит врага в погоню.
func (e *Enemy) BecomeHostile() {
	e.State = AIStateChase
}

// CalmDown возвращает врага в патруль.
func (e *Enemy) CalmDown() {
	e.State = AIStatePatrol
}

// IsReady - истек ли таймер шага.
func (e *Enemy) IsReady() bool {
	return e.MoveCooldown <= 0
}
