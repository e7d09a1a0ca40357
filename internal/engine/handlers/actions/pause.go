package actions

import "maze-core/internal/engine/handlers"

func HandlePause(ctx handlers.Context) (handlers.Result, error) {
	ctx.Session.Pause()
	return handlers.Result{Msg: "Пауза.", MsgType: "INFO"}, nil
}

func HandleResume(ctx handlers.Context) (handlers.Result, error) {
	ctx.Session.Resume()
	return handlers.Result{Msg: "Игра продолжается.", MsgType: "INFO"}, nil
}
