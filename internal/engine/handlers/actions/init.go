package actions

import "maze-core/internal/engine/handlers"

// HandleInit отвечает подключившемуся клиенту полным снимком.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать в лабиринт.",
		MsgType: "INFO",
		Reply:   "INIT",
		Full:    true,
	}, nil
}
