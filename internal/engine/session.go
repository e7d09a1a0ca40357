package engine

import (
	"math/rand"
	"maze-core/internal/difficulty"
	"maze-core/internal/domain"
	"maze-core/internal/systems"
	"maze-core/internal/world"
	"maze-core/pkg/api"
	"maze-core/pkg/config"
	"maze-core/pkg/dungeon"
	"maze-core/pkg/logger"
	"maze-core/pkg/utils"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Session представляет собой одну изолированную симуляцию: игрок, враги, карта
// и подсистемы сложности. Не потокобезопасна: шагом владеет одна горутина.
type Session struct {
	ID        string
	Mode      Mode
	Seed      int64
	LevelName string

	// levelNum - номер уровня из имени файла, влияет на дроп монет.
	levelNum int

	tuning  config.Tuning
	rng     *rand.Rand
	ids     domain.IDAllocator
	factory *dungeon.EnemyFactory
	events  domain.EventQueue
	frame   uint64

	// Карта: фиксированный уровень или поток чанков.
	collider systems.Collider
	level    *dungeon.Level
	safe     *systems.SafeGrid
	stream   *world.ChunkStream
	gen      *dungeon.ChunkGenerator
	spawner  *Spawner

	Player      *domain.Player
	Enemies     []*domain.Enemy
	Traps       []*domain.MovingTrap
	Projectiles []domain.Projectile
	Drops       []*domain.Entity
	Texts       []domain.FloatingText

	combo *difficulty.ComboTracker
	rage  *difficulty.AggressionMeter
	waves *difficulty.WaveScheduler

	survivalTime float64
	kills        int
	score        int

	intent    domain.Intent
	paused    bool
	over      bool
	won       bool
	lastChunk domain.Tile
	mapDirty  bool

	Logs []api.LogEntry
	log  *logrus.Entry
}

func newSession(id string, mode Mode, seed int64, tuning config.Tuning) *Session {
	s := &Session{
		ID:     id,
		Mode:   mode,
		Seed:   seed,
		tuning: tuning,
		rng:    utils.NewRand(seed),
		log: logger.Component("session").WithFields(logrus.Fields{
			"session": id,
			"mode":    mode.String(),
		}),
	}
	s.factory = dungeon.NewEnemyFactory(&s.ids, tuning.Endless)
	s.combo = difficulty.NewComboTracker(tuning.Combo, &s.events)
	s.rage = difficulty.NewAggressionMeter(tuning.Rage, &s.events)
	s.waves = difficulty.NewWaveScheduler(tuning.Wave, &s.events)
	return s
}

// NewSurvivalSession создает сессию бесконечного режима. Игрок появляется в центре карты.
func NewSurvivalSession(id string, seed int64, tuning config.Tuning) *Session {
	s := newSession(id, ModeSurvival, seed, tuning)

	s.gen = dungeon.NewChunkGenerator(tuning.Endless)
	s.stream = world.NewChunkStream(tuning.Endless, seed, s.gen, &s.events)
	s.collider = s.stream
	s.spawner = NewSpawner(tuning.Endless, s.stream, s.factory, s.rng)

	spawn := s.gen.PlayerSpawn()
	s.Player = s.factory.Player(spawn, tuning.Combat.PlayerLives, dungeon.Weapons(tuning.Weapons))
	s.stream.UpdateActiveChunks(spawn.X, spawn.Y, 0)
	s.lastChunk = s.playerChunk()
	s.mapDirty = true

	s.log.WithFields(logrus.Fields{
		"seed":   seed,
		"spawn":  spawn,
		"chunks": s.stream.LoadedCount(),
	}).Info("Survival session created")
	return s
}

// NewLevelSession создает сессию фиксированного уровня. Карта безопасных путей
// строится один раз от точки входа.
func NewLevelSession(id string, seed int64, tuning config.Tuning, level *dungeon.Level) *Session {
	s := newSession(id, ModeLevel, seed, tuning)

	w := level.World
	s.level = level
	s.LevelName = level.Name
	s.levelNum = levelNumber(level.Name)
	s.collider = w
	s.safe = systems.BuildSafeGrid(w, w.OriginX, w.OriginY, w.Width, w.Height, level.Entry())

	s.Player = s.factory.Player(level.Entry().Vec(), tuning.Combat.PlayerLives, dungeon.Weapons(tuning.Weapons))
	s.spawnLevelEnemies()
	s.mapDirty = true

	s.log.WithFields(logrus.Fields{
		"level":   level.Name,
		"enemies": len(s.Enemies),
		"traps":   len(s.Traps),
		"safe":    s.safe.Count(),
	}).Info("Level session created")
	return s
}

// spawnLevelEnemies расставляет врагов и блуждающие ловушки уровня заново.
func (s *Session) spawnLevelEnemies() {
	s.Enemies = s.Enemies[:0]
	for _, pos := range s.level.EnemySpawns {
		s.Enemies = append(s.Enemies, s.factory.LevelEnemy(pos, s.level))
	}
	s.Traps = s.Traps[:0]
	for _, pos := range s.level.MovingTrapSpawns {
		s.Traps = append(s.Traps, s.factory.MovingTrap(pos))
	}
}

// levelNumber собирает цифры из имени уровня: "level-3" -> 3. Без цифр - 1.
func levelNumber(name string) int {
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Step продвигает симуляцию на dt секунд в фиксированном порядке и возвращает
// события кадра. Таймеры используют только dt, не настенное время.
func (s *Session) Step(dt float64, in domain.Intent) []domain.Event {
	if s.paused || s.over {
		return nil
	}

	s.frame++
	s.events.SetFrame(s.frame)

	// 1. Таймеры игрока
	s.updatePlayerTimers(dt)

	// 2. Ввод: движение, смена оружия, атака
	s.handleInput(in)

	// 3. Подгрузка чанков
	if s.stream != nil {
		s.updateChunks()
	}

	// 4. Враги, контактный урон, снаряды
	s.updateEnemies(dt)
	s.updateContactDamage()
	s.updateProjectiles(dt)

	// 5. Ловушки, зелья, сундуки, ключ, выход
	s.updateMovingTraps(dt)
	s.checkInteractions()

	// 6. Сложность
	s.updateDifficulty(dt)

	// 7. Очистка
	s.prune(dt)

	return s.events.Drain()
}

func (s *Session) updateChunks() {
	p := s.Player
	fresh := s.stream.UpdateActiveChunks(p.Pos.X, p.Pos.Y, s.survivalTime)
	current := s.playerChunk()
	if len(fresh) > 0 || current != s.lastChunk {
		s.mapDirty = true
	}
	s.lastChunk = current
}

func (s *Session) playerChunk() domain.Tile {
	if s.stream == nil {
		return domain.Tile{}
	}
	cx, cy := s.stream.ChunkCoords(s.Player.Pos.X, s.Player.Pos.Y)
	return domain.Tile{X: cx, Y: cy}
}

// updateDifficulty: комбо гаснет в обоих режимах, ярость и волны - только в выживании.
// Запросы спавна исполняются в том же кадре.
func (s *Session) updateDifficulty(dt float64) {
	s.combo.Update(dt)

	if s.Mode != ModeSurvival {
		s.survivalTime += dt
		return
	}

	mark := s.events.Len()
	s.waves.Update(dt)
	s.survivalTime = s.waves.SurvivalTime()
	s.rage.Update(s.kills, s.survivalTime)

	for _, ev := range s.events.Pending()[mark:] {
		switch ev.Type {
		case domain.EventSpawnEnemyRequested:
			s.spawnEnemy(false)
		case domain.EventSpawnBossRequested:
			s.spawnEnemy(true)
		}
	}
}

func (s *Session) spawnEnemy(boss bool) *domain.Enemy {
	if s.spawner == nil {
		return nil
	}
	var e *domain.Enemy
	if boss {
		e = s.spawner.SpawnBoss(s.Player.Pos, len(s.Enemies), s.waves.HealthMultiplier())
	} else {
		e = s.spawner.SpawnEnemy(s.Player.Pos, len(s.Enemies), s.waves.HealthMultiplier())
	}
	if e != nil {
		s.Enemies = append(s.Enemies, e)
	}
	return e
}

// prune удаляет мертвых врагов по истечении таймера смерти, погасшие снаряды,
// подобранные предметы и устаревшие надписи. Порядок не сохраняется.
func (s *Session) prune(dt float64) {
	for i := 0; i < len(s.Enemies); {
		e := s.Enemies[i]
		if e.IsAlive() || e.DeathTimer > 0 {
			i++
			continue
		}
		last := len(s.Enemies) - 1
		s.Enemies[i] = s.Enemies[last]
		s.Enemies[last] = nil
		s.Enemies = s.Enemies[:last]
	}

	s.Projectiles = systems.CompactProjectiles(s.Projectiles)

	for i := 0; i < len(s.Drops); {
		if s.Drops[i].Active {
			i++
			continue
		}
		last := len(s.Drops) - 1
		s.Drops[i] = s.Drops[last]
		s.Drops[last] = nil
		s.Drops = s.Drops[:last]
	}

	for i := 0; i < len(s.Texts); {
		t := &s.Texts[i]
		t.TTL -= dt
		t.Pos.Y -= dt
		if t.TTL > 0 {
			i++
			continue
		}
		last := len(s.Texts) - 1
		s.Texts[i] = s.Texts[last]
		s.Texts = s.Texts[:last]
	}
}

// SetIntent запоминает ввод. Движение держится до следующего ввода,
// атака и смена оружия срабатывают один раз.
func (s *Session) SetIntent(in domain.Intent) {
	s.intent = in
}

// ConsumeIntent возвращает текущий ввод и сбрасывает одноразовые флаги.
func (s *Session) ConsumeIntent() domain.Intent {
	in := s.intent
	s.intent.Attack = false
	s.intent.SwitchWeapon = false
	return in
}

func (s *Session) Pause() {
	if !s.paused {
		s.paused = true
		s.log.Info("Session paused")
	}
}

func (s *Session) Resume() {
	if s.paused {
		s.paused = false
		s.log.Info("Session resumed")
	}
}

// SetRage - отладочная установка ярости (без события).
func (s *Session) SetRage(v float64) {
	s.rage.SetRage(v)
}

// SetSurvivalTime - отладочная перемотка времени выживания.
func (s *Session) SetSurvivalTime(t float64) {
	s.survivalTime = max(0, t)
	s.waves.SetSurvivalTime(s.survivalTime)
}

// ForceSpawn создает врага или босса рядом с игроком вне расписания волн.
func (s *Session) ForceSpawn(boss bool) bool {
	return s.spawnEnemy(boss) != nil
}

func (s *Session) Frame() uint64         { return s.frame }
func (s *Session) IsPaused() bool        { return s.paused }
func (s *Session) IsOver() bool          { return s.over }
func (s *Session) IsVictory() bool       { return s.won }
func (s *Session) Kills() int            { return s.kills }
func (s *Session) Score() int            { return s.score }
func (s *Session) SurvivalTime() float64 { return s.survivalTime }

func (s *Session) Combo() *difficulty.ComboTracker   { return s.combo }
func (s *Session) Rage() *difficulty.AggressionMeter { return s.rage }
func (s *Session) Waves() *difficulty.WaveScheduler  { return s.waves }
func (s *Session) Stream() *world.ChunkStream        { return s.stream }
func (s *Session) Level() *dungeon.Level             { return s.level }
func (s *Session) SafeGrid() *systems.SafeGrid       { return s.safe }
func (s *Session) Collider() systems.Collider        { return s.collider }
