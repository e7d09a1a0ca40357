package agent

import (
	"encoding/json"
	"math"
	"math/rand"
	"maze-core/internal/domain"
	"maze-core/internal/engine"
	"maze-core/internal/systems"
	"maze-core/pkg/api"
	"maze-core/pkg/dungeon"
	"maze-core/pkg/logger"
	"maze-core/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	// chaseRadius - дальше этого бот врагов не преследует.
	chaseRadius = 10.0
	// wanderTurns - сколько обновлений держать случайное направление.
	wanderTurns = 20
)

// Bot - автопилот для сессии выживания (Headless Agent).
// Работает как внешний клиент: подписан на хаб, видит только UPDATE
// и отвечает командой INTENT через ProcessCommand.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе сессии, личный канал (Inbox).
//  2. Run -> в отдельной горутине слушает Inbox, пока хаб его не закроет.
//  3. На каждый UPDATE с игроком вызывается decide.
type Bot struct {
	ID        string
	SessionID string
	Service   *engine.GameService
	Inbox     chan api.ServerResponse

	weapons map[string]domain.Weapon
	rng     *rand.Rand
	wander  domain.Tile
	turns   int
	log     *logrus.Entry
}

func NewBot(sessionID string, service *engine.GameService) *Bot {
	id := "bot_" + utils.GenerateID()
	weapons := make(map[string]domain.Weapon)
	for _, w := range dungeon.Weapons(service.Tuning().Weapons) {
		weapons[w.Name] = w
	}

	// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
	b := &Bot{
		ID:        id,
		SessionID: sessionID,
		Service:   service,
		Inbox:     service.Hub.Register(sessionID, id),
		weapons:   weapons,
		rng:       utils.NewRand(utils.StringToSeed(id)),
		log:       logger.Component("bot").WithFields(logrus.Fields{"session": sessionID, "bot": id}),
	}
	b.log.Info("Bot created")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.SessionID, b.ID)

	for msg := range b.Inbox {
		if msg.GameOver || msg.Player == nil {
			continue
		}
		intent := b.decide(msg)
		b.send(intent)
	}
	b.log.Info("Bot shut down")
}

// decide - мозг бота: атакует в радиусе оружия, преследует ближних, иначе бродит.
func (b *Bot) decide(state api.ServerResponse) api.IntentPayload {
	me := domain.Vec2{X: state.Player.X, Y: state.Player.Y}
	center := domain.Vec2{X: me.X + domain.PlayerBoxSize/2, Y: me.Y + domain.PlayerBoxSize/2}

	enemies := make([]*domain.Enemy, 0, len(state.Enemies))
	for _, ev := range state.Enemies {
		enemies = append(enemies, enemyFromView(ev))
	}

	target := systems.NearestEnemy(center, enemies, chaseRadius)
	if target == nil {
		return b.wanderStep()
	}

	dx, dy := target.Center().X-center.X, target.Center().Y-center.Y
	aim := math.Atan2(dy, dx) * 180 / math.Pi
	rng := 1.5
	if w, ok := b.weapons[state.Player.Weapon]; ok {
		rng = w.Range
	}

	if math.Hypot(dx, dy) <= rng {
		return api.IntentPayload{Attack: true, Aim: &aim}
	}
	return api.IntentPayload{Dx: sign(dx), Dy: sign(dy), Run: true, Aim: &aim}
}

func (b *Bot) wanderStep() api.IntentPayload {
	if b.turns <= 0 || b.wander == (domain.Tile{}) {
		for b.wander == (domain.Tile{}) {
			b.wander = domain.Tile{X: b.rng.Intn(3) - 1, Y: b.rng.Intn(3) - 1}
		}
		b.turns = wanderTurns
	}
	b.turns--
	return api.IntentPayload{Dx: b.wander.X, Dy: b.wander.Y}
}

// enemyFromView восстанавливает доменного врага из DTO, чтобы переиспользовать системы таргетинга.
func enemyFromView(v api.EnemyView) *domain.Enemy {
	e := domain.NewEnemy(0, domain.Vec2{X: v.X, Y: v.Y}, max(v.MaxHP, 1), 0)
	e.Size = v.Size
	e.Health.HP = v.HP
	e.Health.IsDead = v.IsDead
	return e
}

func (b *Bot) send(intent api.IntentPayload) {
	payload, err := json.Marshal(intent)
	if err != nil {
		b.log.WithError(err).Error("Error marshalling intent")
		return
	}

	err = b.Service.ProcessCommand(b.SessionID, api.ClientCommand{
		Action:  domain.ActionIntent.String(),
		Token:   b.ID,
		Payload: payload,
	})
	if err != nil {
		b.log.WithError(err).Debug("Intent rejected")
	}
}

func sign(v float64) int {
	switch {
	case v > 0.25:
		return 1
	case v < -0.25:
		return -1
	}
	return 0
}
