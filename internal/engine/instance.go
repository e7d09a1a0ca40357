package engine

import (
	"context"
	"maze-core/internal/domain"
	"maze-core/internal/engine/handlers"
	"maze-core/pkg/api"
	"maze-core/pkg/logger"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Instance - запущенная сессия: своя горутина, свой тикер, своя очередь команд.
// Session трогает только горутина Run (и Inspect под тем же мьютексом).
type Instance struct {
	Session     *Session
	CommandChan chan domain.InternalCommand

	// Ссылка на Service для доступа к Hub, хранилищу и хендлерам
	Service *GameService

	mu     deadlock.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// Накопленное с последней рассылки
	events []api.EventView
	full   bool
	log    *logrus.Entry
}

func NewInstance(session *Session, service *GameService) *Instance {
	return &Instance{
		Session:     session,
		CommandChan: make(chan domain.InternalCommand, service.cfg.CommandBuffer),
		Service:     service,
		done:        make(chan struct{}),
		log:         logger.Component("instance").WithField("session", session.ID),
	}
}

// Run запускает игровой цикл ЭТОЙ сессии до отмены контекста.
func (i *Instance) Run(ctx context.Context) {
	defer close(i.done)

	frame := i.Service.cfg.FrameDuration()
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	i.log.WithField("frame", frame).Info("Instance loop started")

	for {
		select {
		case <-ctx.Done():
			i.log.Info("Instance loop stopped")
			return

		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)

		case <-ticker.C:
			i.tick(i.Service.cfg.FrameDelta())
		}
	}
}

// tick - один кадр: шаг симуляции, затем рассылка, если есть кому.
func (i *Instance) tick(dt float64) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s := i.Session
	events := s.Step(dt, s.ConsumeIntent())
	i.events = append(i.events, s.processEvents(events)...)
	if s.ConsumeMapDirty() {
		i.full = true
	}

	hub := i.Service.Hub
	if !hub.HasSubscribers(s.ID) {
		i.events = i.events[:0]
		s.TakeLogs()
		return
	}

	every := uint64(max(i.Service.cfg.BroadcastEvery, 1))
	if s.Frame()%every != 0 && len(i.events) == 0 && !i.full {
		return
	}
	i.publish()
}

func (i *Instance) publish() {
	s := i.Session
	resp := s.BuildUpdate(i.full)
	resp.Events = i.events
	resp.Logs = s.TakeLogs()
	i.Service.Hub.Publish(s.ID, *resp)

	i.events = nil
	i.full = false
}

// executeCommand выполняет хендлер под мьютексом сессии
func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	handler, ok := i.Service.actionHandlers[cmd.Action]
	if !ok {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	s := i.Session
	ctx := handlers.Context{
		Session: s,
		Store:   i.Service.store,
		Token:   cmd.Token,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"client": cmd.Token,
		}).WithError(err).Warn("Command failed")
		i.Service.Hub.SendTo(s.ID, cmd.Token, api.ServerResponse{
			Type:      "ERROR",
			Frame:     s.Frame(),
			SessionID: s.ID,
			Error:     err.Error(),
		})
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = LogInfo
		}
		s.AddLog(result.Msg, msgType)
	}

	if result.Reply == "" {
		return
	}
	resp := s.BuildUpdate(result.Full)
	resp.Type = result.Reply
	resp.Snapshot = result.Snapshot
	i.Service.Hub.SendTo(s.ID, cmd.Token, *resp)
}

// Inspect дает доступ к сессии вне ее горутины (дебаг-эндпоинты, тесты).
func (i *Instance) Inspect(fn func(*Session)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn(i.Session)
}
