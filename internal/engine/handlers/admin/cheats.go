package admin

import (
	"fmt"
	"maze-core/internal/engine/handlers"
	"maze-core/pkg/api"
)

// HandleSetRage: { "rage": 75 }
func HandleSetRage(ctx handlers.Context, p api.RagePayload) (handlers.Result, error) {
	ctx.Session.SetRage(p.Rage)
	return handlers.Result{Msg: fmt.Sprintf("⚡ Rage set to %.0f", p.Rage), MsgType: "INFO"}, nil
}

// HandleSetTime: { "time": 720 } - перематывает расписание волн и боссов.
func HandleSetTime(ctx handlers.Context, p api.TimePayload) (handlers.Result, error) {
	ctx.Session.SetSurvivalTime(p.Time)
	return handlers.Result{Msg: fmt.Sprintf("⚡ Survival time set to %.0fs", p.Time), MsgType: "INFO"}, nil
}

// HandleSpawn: { "boss": true }
func HandleSpawn(ctx handlers.Context, p api.SpawnPayload) (handlers.Result, error) {
	what := "enemy"
	if p.Boss {
		what = "boss"
	}
	if !ctx.Session.ForceSpawn(p.Boss) {
		return handlers.Result{Msg: fmt.Sprintf("No room to spawn %s", what), MsgType: "ERROR"}, nil
	}
	return handlers.Result{Msg: fmt.Sprintf("Spawned %s", what), MsgType: "INFO"}, nil
}
