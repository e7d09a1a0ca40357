package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"maze-core/internal/engine"
	"maze-core/pkg/api"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type stubLister struct {
	names []string
	err   error
}

func (s stubLister) List() ([]string, error) { return s.names, s.err }

func newTestServer(t *testing.T, lister SnapshotLister) (*Server, *engine.GameService) {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Seed = 10
	svc := engine.NewService(cfg, config.Default(), nil)
	t.Cleanup(svc.Stop)
	return New(svc, lister, "0"), svc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthAndVersion(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	rec := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, r, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"snapshotVersion":1`)

	rec = do(t, r, http.MethodOptions, "/sessions", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	rec := do(t, r, http.MethodPost, "/sessions", `{"mode":"survival","seed":77}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created api.CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "survival", created.Mode)
	assert.Equal(t, int64(77), created.Seed)
	require.NotEmpty(t, created.ID)

	rec = do(t, r, http.MethodGet, "/sessions", "")
	var list []api.SessionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = do(t, r, http.MethodGet, "/debug/sessions/"+created.ID+"/difficulty", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"survivalTime"`)

	rec = do(t, r, http.MethodGet, "/debug/sessions/"+created.ID+"/chunks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var chunks struct {
		Loaded int `json:"loaded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chunks))
	assert.Greater(t, chunks.Loaded, 0)

	rec = do(t, r, http.MethodGet, "/debug/sessions/"+created.ID+"/entities", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"player"`)

	rec = do(t, r, http.MethodDelete, "/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodDelete, "/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, r, http.MethodGet, "/debug/sessions/"+created.ID+"/difficulty", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateSessionErrors(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/sessions", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/sessions", `{"mode":"arcade"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/sessions", `{"mode":"level"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, r, http.MethodPost, "/sessions", `{"mode":"level","level":"missing.properties"}`).Code)
}

func TestServer_Snapshots(t *testing.T) {
	srv, _ := newTestServer(t, stubLister{names: []string{"a_1.mzsv", "b_2.mzsv"}})
	rec := do(t, srv.Router(), http.MethodGet, "/snapshots", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["a_1.mzsv","b_2.mzsv"]`, rec.Body.String())

	srv, _ = newTestServer(t, nil)
	rec = do(t, srv.Router(), http.MethodGet, "/snapshots", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	srv, _ = newTestServer(t, stubLister{err: errors.New("disk on fire")})
	rec = do(t, srv.Router(), http.MethodGet, "/snapshots", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_WebSocket(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	session, err := svc.CreateSession(engine.ModeSurvival, "", 3)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + session.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var first api.ServerResponse
	require.NoError(t, conn.ReadJSON(&first))
	// INIT отправляется сразу после подключения, но UPDATE может обогнать его
	for first.Type != "INIT" {
		require.NoError(t, conn.ReadJSON(&first))
	}
	assert.NotEmpty(t, first.Walls)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "DANCE"}))
	var msg api.ServerResponse
	for msg.Type != "ERROR" {
		require.NoError(t, conn.ReadJSON(&msg))
	}
	assert.Contains(t, msg.Error, "unknown action")

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]int{"a": 1})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte(`{"a":1}`)))
}
