package domain

// MovingTrapBoxSize - коробка блуждающей ловушки. С отступом 0.1 углы
// проверяются в точках +0.1 и +0.8 от позиции.
const (
	MovingTrapBoxSize    = 0.9
	MovingTrapBoxPadding = 0.1
)

// MovingTrap - блуждающая ловушка фиксированного уровня. Летит по прямой,
// меняет курс по таймеру и отскакивает от стен.
type MovingTrap struct {
	ID  EntityID `json:"id"`
	Pos Vec2     `json:"pos"`
	Dir Vec2     `json:"dir"`

	// Timer - время на текущем курсе, Hold - когда курс сменится.
	Timer float64 `json:"timer"`
	Hold  float64 `json:"hold"`
}

// NewMovingTrap создает ловушку без курса: направление выбирается на первом шаге.
func NewMovingTrap(id EntityID, pos Vec2) *MovingTrap {
	return &MovingTrap{ID: id, Pos: pos}
}

func (t *MovingTrap) Center() Vec2 {
	return Vec2{X: t.Pos.X + MovingTrapBoxSize/2, Y: t.Pos.Y + MovingTrapBoxSize/2}
}
