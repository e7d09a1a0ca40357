package engine

import (
	"maze-core/internal/domain"
	"maze-core/pkg/api"
)

// viewRadius - радиус, в котором клиент получает врагов и объекты.
const viewRadius = 24.0

// ConsumeMapDirty сообщает, менялась ли карта вокруг игрока с прошлого полного снимка.
func (s *Session) ConsumeMapDirty() bool {
	dirty := s.mapDirty
	s.mapDirty = false
	return dirty
}

// BuildUpdate создает снимок для клиента. full добавляет стены и метаданные карты.
func (s *Session) BuildUpdate(full bool) *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:      "UPDATE",
		Frame:     s.frame,
		SessionID: s.ID,
		Mode:      s.Mode.String(),
		Paused:    s.paused,
		GameOver:  s.over && !s.won,
		Victory:   s.won,
		Player:    s.playerView(),
	}

	if full {
		resp.Grid, resp.Walls = s.mapView()
	}

	center := s.Player.Center()
	for _, e := range s.Enemies {
		if center.DistanceTo(e.Center()) > viewRadius {
			continue
		}
		resp.Enemies = append(resp.Enemies, enemyView(e))
	}

	for _, pr := range s.Projectiles {
		if !pr.Alive {
			continue
		}
		v := api.ProjectileView{X: pr.Pos.X, Y: pr.Pos.Y, FromPlayer: pr.FromPlayer}
		if pr.Effect != domain.EffectNone {
			v.Effect = pr.Effect.String()
		}
		resp.Projectiles = append(resp.Projectiles, v)
	}

	s.forEachObject(func(o *domain.Entity) {
		if !o.Active || center.DistanceTo(o.Pos) > viewRadius {
			return
		}
		resp.Objects = append(resp.Objects, api.ObjectView{
			ID:     o.ID.String(),
			Kind:   o.Kind.String(),
			X:      o.Pos.X,
			Y:      o.Pos.Y,
			Active: o.Active,
		})
	})

	for _, t := range s.Traps {
		if center.DistanceTo(t.Center()) > viewRadius {
			continue
		}
		resp.Objects = append(resp.Objects, api.ObjectView{
			ID:     t.ID.String(),
			Kind:   domain.KindMovingTrap.String(),
			X:      t.Pos.X,
			Y:      t.Pos.Y,
			Active: true,
		})
	}

	for _, t := range s.Texts {
		resp.Texts = append(resp.Texts, api.TextView{Text: t.Text, X: t.Pos.X, Y: t.Pos.Y})
	}

	resp.Difficulty = s.DifficultyView()
	return resp
}

func (s *Session) forEachObject(fn func(*domain.Entity)) {
	if s.level != nil {
		for _, o := range s.level.World.Objects {
			fn(o)
		}
	}
	if s.stream != nil {
		for _, c := range s.stream.LoadedChunks() {
			for _, o := range c.Grid.Objects {
				fn(o)
			}
		}
	}
	for _, o := range s.Drops {
		fn(o)
	}
}

func (s *Session) mapView() (*api.GridMeta, []api.WallView) {
	var segments []*domain.WallSegment
	meta := &api.GridMeta{}

	if s.level != nil {
		w := s.level.World
		meta.Width, meta.Height = w.Width, w.Height
		meta.Theme = w.Theme.String()
		segments = w.Segments
	} else {
		e := s.tuning.Endless
		meta.Width, meta.Height, meta.ChunkSize = e.MapWidth, e.MapHeight, e.ChunkSize
		if c := s.stream.ChunkAtWorld(s.Player.Pos.X, s.Player.Pos.Y); c != nil {
			meta.Theme = c.Theme.String()
		}
		for _, c := range s.stream.LoadedChunks() {
			segments = append(segments, c.Walls()...)
		}
	}

	walls := make([]api.WallView, 0, len(segments))
	for _, seg := range segments {
		walls = append(walls, api.WallView{
			X:      seg.OriginX,
			Y:      seg.OriginY,
			W:      seg.Width,
			H:      seg.Height,
			TypeID: seg.TypeID,
			Border: seg.Border,
		})
	}
	return meta, walls
}

func (s *Session) playerView() *api.PlayerView {
	p := s.Player
	v := &api.PlayerView{
		ID:          p.ID.String(),
		X:           p.Pos.X,
		Y:           p.Pos.Y,
		Lives:       p.Health.HP,
		MaxLives:    p.Health.MaxHP,
		Invincible:  p.Invincible > 0,
		Hurt:        p.HurtTimer > 0,
		Running:     p.Running,
		AimAngle:    p.AimAngle,
		Weapons:     len(p.Weapons),
		WeaponBonus: p.WeaponBonus,
		Coins:       p.Coins,
		Potions:     p.Potions,
		HasKey:      p.HasKey,
		Shield:      p.Shield,
	}
	if w, ok := p.CurrentWeapon(); ok {
		v.Weapon = w.Name
	}
	if p.Armor != nil && p.Armor.Durability > 0 {
		v.Armor = p.Armor.Type.String()
	}
	return v
}

func enemyView(e *domain.Enemy) api.EnemyView {
	v := api.EnemyView{
		ID:     e.ID.String(),
		Kind:   e.Kind.String(),
		X:      e.Pos.X,
		Y:      e.Pos.Y,
		Size:   e.Size,
		HP:     e.Health.HP,
		MaxHP:  e.Health.MaxHP,
		State:  e.State.String(),
		Shield: e.Shield,
		Hurt:   e.HurtTimer > 0,
		IsDead: !e.IsAlive(),
	}
	if e.Effect != domain.EffectNone && e.EffectTimer > 0 {
		v.Effect = e.Effect.String()
	}
	return v
}

// DifficultyView - HUD сложности: комбо, ярость, волна.
func (s *Session) DifficultyView() *api.DifficultyView {
	v := &api.DifficultyView{
		SurvivalTime:    s.survivalTime,
		Kills:           s.kills,
		Score:           s.score,
		Combo:           s.combo.Count(),
		MaxCombo:        s.combo.Max(),
		ComboMultiplier: s.combo.Multiplier(),
		ComboTier:       s.combo.TierName(),
		ComboTimeLeft:   s.combo.TimeLeft(),
		Rage:            s.rage.Rage(),
		RageLevel:       s.rage.Level(),
		RageName:        s.rage.LevelName(),
		Wave:            s.waves.CurrentWave(),
		Enemies:         len(s.Enemies),
	}
	if s.Mode == ModeSurvival {
		v.NextBossIn = max(0, s.waves.NextBoss()-s.survivalTime)
		v.LoadedChunks = s.stream.LoadedCount()
	}
	return v
}
