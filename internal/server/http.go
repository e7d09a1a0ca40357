package server

import (
	"context"
	"encoding/json"
	"errors"
	"maze-core/internal/engine"
	"maze-core/internal/version"
	"maze-core/pkg/api"
	"maze-core/pkg/logger"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SnapshotLister - то, что нужно серверу от хранилища сохранений.
type SnapshotLister interface {
	List() ([]string, error)
}

type Server struct {
	Engine *engine.GameService
	Store  SnapshotLister
	Port   string

	log *logrus.Entry
}

func New(engine *engine.GameService, store SnapshotLister, port string) *Server {
	return &Server{
		Engine: engine,
		Store:  store,
		Port:   port,
		log:    logger.Component("http"),
	}
}

// Router собирает все маршруты. Вынесен отдельно для httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)

	// Preflight: ответ дает enableCORS
	r.Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)

	r.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", s.handleCloseSession).Methods(http.MethodDelete)
	r.HandleFunc("/snapshots", s.handleListSnapshots).Methods(http.MethodGet)

	r.HandleFunc("/ws/{id}", s.handleWS)

	// Profiling
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	r.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)

	NewDebugHandler(s.Engine).RegisterRoutes(r.PathPrefix("/debug").Subrouter())
	return r
}

// Run запускает HTTP сервер и гасит его при отмене контекста.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	s.log.Infof("🧱 Maze server running on :%s", s.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Sessions())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := engine.ParseMode(req.Mode)
	session, err := s.Engine.CreateSession(mode, req.Level, req.Seed)
	if err != nil {
		s.log.WithError(err).WithField("level", req.Level).Warn("Create session failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateSessionResponse{
		ID:   session.ID,
		Mode: mode.String(),
		Seed: session.Seed,
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.Engine.CloseSession(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	names, err := s.Store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// handleWS обрабатывает подключение к сессии по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if err := s.Engine.Inspect(sessionID, func(*engine.Session) {}); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Engine, sessionID, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
