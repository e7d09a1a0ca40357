package actions

import (
	"maze-core/internal/domain"
	"maze-core/internal/engine/handlers"
	"maze-core/pkg/api"
)

// HandleIntent запоминает ввод игрока до следующего кадра.
func HandleIntent(ctx handlers.Context, p api.IntentPayload) (handlers.Result, error) {
	in := domain.Intent{
		MoveX:        p.Dx,
		MoveY:        p.Dy,
		Running:      p.Run,
		Attack:       p.Attack,
		SwitchWeapon: p.Switch,
	}
	if p.Aim != nil {
		in.HasAim = true
		in.AimAngle = *p.Aim
	}
	ctx.Session.SetIntent(in)
	return handlers.EmptyResult(), nil
}
