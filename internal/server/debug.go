package server

import (
	"encoding/json"
	"maze-core/internal/domain"
	"maze-core/internal/engine"
	"net/http"

	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сессий
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты на подроутере /debug
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sessions/{id}/entities", h.handleDumpEntities).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/difficulty", h.handleDifficulty).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/chunks", h.handleChunks).Methods(http.MethodGet)
}

// inspectJSON сериализует результат fn под мьютексом сессии:
// после выхода из Inspect структуры снова принадлежат игровому циклу.
func (h *DebugHandler) inspectJSON(w http.ResponseWriter, r *http.Request, fn func(*engine.Session) any) {
	id := mux.Vars(r)["id"]

	var (
		body   []byte
		encErr error
	)
	err := h.Service.Inspect(id, func(s *engine.Session) {
		body, encErr = json.Marshal(fn(s))
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if encErr != nil {
		writeError(w, http.StatusInternalServerError, encErr.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// /debug/sessions/{id}/entities - полные структуры игрока, врагов, ловушек и снарядов (включая стейт AI)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	h.inspectJSON(w, r, func(s *engine.Session) any {
		return struct {
			Frame       uint64               `json:"frame"`
			Player      *domain.Player       `json:"player"`
			Enemies     []*domain.Enemy      `json:"enemies"`
			Traps       []*domain.MovingTrap `json:"traps"`
			Projectiles []domain.Projectile  `json:"projectiles"`
		}{
			Frame:       s.Frame(),
			Player:      s.Player,
			Enemies:     s.Enemies,
			Traps:       s.Traps,
			Projectiles: s.Projectiles,
		}
	})
}

// /debug/sessions/{id}/difficulty - комбо, ярость, волна
func (h *DebugHandler) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	h.inspectJSON(w, r, func(s *engine.Session) any {
		return s.DifficultyView()
	})
}

// /debug/sessions/{id}/chunks - загруженные чанки и состояние кэша
func (h *DebugHandler) handleChunks(w http.ResponseWriter, r *http.Request) {
	type chunkSummary struct {
		CX         int     `json:"cx"`
		CY         int     `json:"cy"`
		Theme      string  `json:"theme"`
		LastAccess float64 `json:"lastAccess"`
		Walls      int     `json:"walls"`
	}
	type streamSummary struct {
		Loaded  int            `json:"loaded"`
		Cached  int            `json:"cached"`
		Evicted int            `json:"evicted"`
		Chunks  []chunkSummary `json:"chunks"`
	}

	h.inspectJSON(w, r, func(s *engine.Session) any {
		stream := s.Stream()
		if stream == nil {
			return streamSummary{Chunks: []chunkSummary{}}
		}
		out := streamSummary{
			Loaded:  stream.LoadedCount(),
			Cached:  stream.CachedCount(),
			Evicted: stream.EvictedCount(),
			Chunks:  []chunkSummary{},
		}
		for _, c := range stream.LoadedChunks() {
			out.Chunks = append(out.Chunks, chunkSummary{
				CX:         c.CX,
				CY:         c.CY,
				Theme:      c.Theme.String(),
				LastAccess: c.LastAccess,
				Walls:      len(c.Grid.Segments),
			})
		}
		return out
	})
}
