package engine

import (
	"encoding/json"
	"errors"
	"maze-core/internal/domain"
	"maze-core/pkg/api"
	"maze-core/pkg/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore - хранилище снапшотов в памяти.
type memoryStore struct {
	snaps map[string]domain.Snapshot
}

func (m *memoryStore) Save(snap domain.Snapshot) (string, error) {
	name := snap.SessionID + ".mzsv"
	m.snaps[name] = snap
	return name, nil
}

func (m *memoryStore) Load(name string) (domain.Snapshot, error) {
	snap, ok := m.snaps[name]
	if !ok {
		return domain.Snapshot{}, errors.New("not found")
	}
	return snap, nil
}

func newTestService(t *testing.T) (*GameService, *memoryStore) {
	t.Helper()
	cfg := NewConfig()
	cfg.Seed = 1
	cfg.TickRate = 200
	store := &memoryStore{snaps: make(map[string]domain.Snapshot)}
	svc := NewService(cfg, config.Default(), store)
	t.Cleanup(svc.Stop)
	return svc, store
}

func receive(t *testing.T, ch <-chan api.ServerResponse, msgType string) api.ServerResponse {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg, ok := <-ch:
			require.True(t, ok, "channel closed while waiting for %s", msgType)
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			require.FailNow(t, "timeout waiting for "+msgType)
		}
	}
}

func TestService_ProcessCommandErrors(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ProcessCommand("missing", api.ClientCommand{Action: "INIT"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := svc.CreateSession(ModeSurvival, "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), session.Seed, "seed derives from the master seed")

	err = svc.ProcessCommand(session.ID, api.ClientCommand{Action: "DANCE"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = svc.CreateSession(ModeLevel, "does/not/exist.properties", 0)
	assert.Error(t, err)
}

func TestService_InitReplyAndBroadcast(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.CreateSession(ModeSurvival, "", 5)
	require.NoError(t, err)

	ch := svc.Hub.Register(session.ID, "client")
	require.NoError(t, svc.ProcessCommand(session.ID, api.ClientCommand{Action: "INIT", Token: "client"}))

	initMsg := receive(t, ch, "INIT")
	assert.Equal(t, session.ID, initMsg.SessionID)
	assert.NotNil(t, initMsg.Grid)
	assert.NotEmpty(t, initMsg.Walls)
	assert.NotNil(t, initMsg.Player)

	update := receive(t, ch, "UPDATE")
	assert.Greater(t, update.Frame, uint64(0))

	list := svc.Sessions()
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Subscribers)
	assert.Equal(t, "survival", list[0].Mode)
}

func TestService_InvalidPayloadSendsError(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.CreateSession(ModeSurvival, "", 5)
	require.NoError(t, err)

	ch := svc.Hub.Register(session.ID, "client")
	err = svc.ProcessCommand(session.ID, api.ClientCommand{
		Action:  "INTENT",
		Token:   "client",
		Payload: json.RawMessage(`{"dx": 5}`),
	})
	require.NoError(t, err)

	msg := receive(t, ch, "ERROR")
	assert.Contains(t, msg.Error, "validation failed")
}

func TestService_SaveRestore(t *testing.T) {
	svc, store := newTestService(t)
	session, err := svc.CreateSession(ModeSurvival, "", 5)
	require.NoError(t, err)
	ch := svc.Hub.Register(session.ID, "client")

	require.NoError(t, svc.ProcessCommand(session.ID, api.ClientCommand{Action: "SAVE", Token: "client"}))
	saved := receive(t, ch, "SAVED")
	require.NotEmpty(t, saved.Snapshot)
	require.Contains(t, store.snaps, saved.Snapshot)

	payload, _ := json.Marshal(api.RestorePayload{Snapshot: saved.Snapshot})
	require.NoError(t, svc.ProcessCommand(session.ID, api.ClientCommand{Action: "RESTORE", Token: "client", Payload: payload}))
	restored := receive(t, ch, "INIT")
	assert.NotEmpty(t, restored.Walls)
}

func TestService_PauseAndCheats(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.CreateSession(ModeSurvival, "", 5)
	require.NoError(t, err)

	require.NoError(t, svc.ProcessCommand(session.ID, api.ClientCommand{Action: "PAUSE"}))
	payload, _ := json.Marshal(api.TimePayload{Time: 500})
	require.NoError(t, svc.ProcessCommand(session.ID, api.ClientCommand{Action: "SET_TIME", Payload: payload}))

	assert.Eventually(t, func() bool {
		var paused bool
		var wave int
		_ = svc.Inspect(session.ID, func(s *Session) {
			paused = s.IsPaused()
			wave = s.Waves().CurrentWave()
		})
		return paused && wave == 3
	}, 2*time.Second, 10*time.Millisecond)

	var frame uint64
	require.NoError(t, svc.Inspect(session.ID, func(s *Session) { frame = s.Frame() }))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, svc.Inspect(session.ID, func(s *Session) {
		assert.Equal(t, frame, s.Frame(), "paused session does not advance")
	}))
}

func TestService_CloseSession(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.CreateSession(ModeSurvival, "", 5)
	require.NoError(t, err)
	ch := svc.Hub.Register(session.ID, "client")

	require.NoError(t, svc.CloseSession(session.ID))
	assert.ErrorIs(t, svc.CloseSession(session.ID), ErrSessionNotFound)
	assert.ErrorIs(t, svc.Inspect(session.ID, func(*Session) {}), ErrSessionNotFound)
	assert.Empty(t, svc.Sessions())

	// Канал подписчика закрыт хабом
	for range ch {
	}
}
