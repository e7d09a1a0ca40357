package actions

import (
	"errors"
	"fmt"
	"maze-core/internal/engine/handlers"
	"maze-core/pkg/api"
)

// ErrNoStore - сервер запущен без каталога сохранений.
var ErrNoStore = errors.New("snapshot storage is not configured")

// HandleSave пишет снапшот сессии на диск и сообщает имя файла отправителю.
func HandleSave(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Store == nil {
		return handlers.Result{}, ErrNoStore
	}

	name, err := ctx.Store.Save(ctx.Session.Snapshot())
	if err != nil {
		return handlers.Result{}, fmt.Errorf("save snapshot: %w", err)
	}

	return handlers.Result{
		Msg:      "Игра сохранена.",
		MsgType:  "INFO",
		Reply:    "SAVED",
		Snapshot: name,
	}, nil
}

// HandleRestore загружает снапшот и отвечает полным снимком.
func HandleRestore(ctx handlers.Context, p api.RestorePayload) (handlers.Result, error) {
	if ctx.Store == nil {
		return handlers.Result{}, ErrNoStore
	}

	snap, err := ctx.Store.Load(p.Snapshot)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("load snapshot: %w", err)
	}
	if err := ctx.Session.Restore(snap); err != nil {
		return handlers.Result{}, err
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Загружено сохранение %s.", p.Snapshot),
		MsgType: "INFO",
		Reply:   "INIT",
		Full:    true,
	}, nil
}
