package engine

import (
	"context"
	"errors"
	"fmt"
	"maze-core/internal/domain"
	"maze-core/internal/engine/handlers"
	"maze-core/internal/engine/handlers/actions"
	"maze-core/internal/engine/handlers/admin"
	"maze-core/internal/network"
	"maze-core/pkg/api"
	"maze-core/pkg/config"
	"maze-core/pkg/dungeon"
	"maze-core/pkg/logger"
	"maze-core/pkg/utils"
	"sort"
	"sync"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownAction    = errors.New("unknown action")
	ErrCommandQueueFull = errors.New("command queue is full")
)

// GameService владеет всеми сессиями. Каждая сессия крутится в своей горутине.
type GameService struct {
	cfg    Config
	tuning config.Tuning
	store  handlers.SnapshotStore

	Hub *network.Broadcaster

	mu        deadlock.RWMutex
	instances map[string]*Instance
	seq       int64

	actionHandlers map[domain.ActionType]handlers.HandlerFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *logrus.Entry
}

// NewService создает сервис. store может быть nil: тогда SAVE и RESTORE возвращают ошибку.
func NewService(cfg Config, tuning config.Tuning, store handlers.SnapshotStore) *GameService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &GameService{
		cfg:            cfg,
		tuning:         tuning,
		store:          store,
		Hub:            network.NewBroadcaster(),
		instances:      make(map[string]*Instance),
		actionHandlers: make(map[domain.ActionType]handlers.HandlerFunc),
		ctx:            ctx,
		cancel:         cancel,
		log:            logger.Component("game_service"),
	}

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.actionHandlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.actionHandlers[domain.ActionIntent] = handlers.WithPayload(actions.HandleIntent)
	s.actionHandlers[domain.ActionSave] = handlers.WithEmptyPayload(actions.HandleSave)
	s.actionHandlers[domain.ActionRestore] = handlers.WithPayload(actions.HandleRestore)
	s.actionHandlers[domain.ActionPause] = handlers.WithEmptyPayload(actions.HandlePause)
	s.actionHandlers[domain.ActionResume] = handlers.WithEmptyPayload(actions.HandleResume)

	s.actionHandlers[domain.ActionSetRage] = handlers.WithPayload(admin.HandleSetRage)
	s.actionHandlers[domain.ActionSetTime] = handlers.WithPayload(admin.HandleSetTime)
	s.actionHandlers[domain.ActionSpawn] = handlers.WithPayload(admin.HandleSpawn)
}

// CreateSession создает и сразу запускает сессию. seed = 0 - зерно от мастер-сида.
func (s *GameService) CreateSession(mode Mode, levelPath string, seed int64) (*Session, error) {
	var level *dungeon.Level
	if mode == ModeLevel {
		var err error
		level, err = dungeon.LoadLevel(levelPath)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}

	s.mu.Lock()
	s.seq++
	if seed == 0 {
		seed = s.cfg.Seed + s.seq
	}
	id := utils.GenerateID()

	var session *Session
	if mode == ModeLevel {
		session = NewLevelSession(id, seed, s.tuning, level)
	} else {
		session = NewSurvivalSession(id, seed, s.tuning)
	}

	inst := NewInstance(session, s)
	ctx, cancel := context.WithCancel(s.ctx)
	inst.cancel = cancel
	s.instances[id] = inst
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		inst.Run(ctx)
	}()

	s.log.WithFields(logrus.Fields{
		"session": id,
		"mode":    mode.String(),
		"seed":    seed,
	}).Info("Session started")
	return session, nil
}

// CloseSession останавливает сессию и отключает ее клиентов.
func (s *GameService) CloseSession(id string) error {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	inst.cancel()
	<-inst.done
	s.Hub.CloseSession(id)
	s.log.WithField("session", id).Info("Session closed")
	return nil
}

// Stop останавливает все сессии и ждет их горутины.
func (s *GameService) Stop() {
	s.cancel()
	s.wg.Wait()
	s.log.Info("All sessions stopped")
}

func (s *GameService) instance(id string) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Не блокирует: при переполненной очереди команда отбрасывается с ошибкой.
func (s *GameService) ProcessCommand(sessionID string, externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownAction, externalCmd.Action)
	}

	inst, ok := s.instance(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	cmd := domain.InternalCommand{
		Action:    actionType,
		SessionID: sessionID,
		Token:     externalCmd.Token,
		Payload:   externalCmd.Payload,
	}

	select {
	case inst.CommandChan <- cmd:
		return nil
	default:
		s.log.WithFields(logrus.Fields{
			"session": sessionID,
			"action":  actionType.String(),
		}).Warn("Command queue full")
		return ErrCommandQueueFull
	}
}

func (s *GameService) Tuning() config.Tuning { return s.tuning }

// Inspect выполняет fn над сессией под ее мьютексом.
func (s *GameService) Inspect(id string, fn func(*Session)) error {
	inst, ok := s.instance(id)
	if !ok {
		return ErrSessionNotFound
	}
	inst.Inspect(fn)
	return nil
}

// Sessions - список сессий для /sessions, по ID.
func (s *GameService) Sessions() []api.SessionSummary {
	s.mu.RLock()
	list := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		list = append(list, inst)
	}
	s.mu.RUnlock()

	out := make([]api.SessionSummary, 0, len(list))
	for _, inst := range list {
		inst.Inspect(func(sess *Session) {
			out = append(out, api.SessionSummary{
				ID:           sess.ID,
				Mode:         sess.Mode.String(),
				Level:        sess.LevelName,
				Frame:        sess.Frame(),
				Paused:       sess.IsPaused(),
				Finished:     sess.IsOver(),
				SurvivalTime: sess.SurvivalTime(),
				Enemies:      len(sess.Enemies),
				Subscribers:  s.Hub.SubscriberCount(sess.ID),
			})
		})
	}

	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}
