package actions

import (
	"errors"
	"maze-core/internal/domain"
	"maze-core/internal/engine/handlers"
	"maze-core/pkg/api"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	intent   domain.Intent
	paused   bool
	restored *domain.Snapshot
	err      error
}

func (f *fakeSession) SetIntent(in domain.Intent) { f.intent = in }
func (f *fakeSession) Pause()                     { f.paused = true }
func (f *fakeSession) Resume()                    { f.paused = false }
func (f *fakeSession) Snapshot() domain.Snapshot  { return domain.Snapshot{SessionID: "s1"} }
func (f *fakeSession) SetRage(float64)            {}
func (f *fakeSession) SetSurvivalTime(float64)    {}
func (f *fakeSession) ForceSpawn(bool) bool       { return true }

func (f *fakeSession) Restore(snap domain.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.restored = &snap
	return nil
}

type fakeStore struct {
	saved []domain.Snapshot
}

func (s *fakeStore) Save(snap domain.Snapshot) (string, error) {
	s.saved = append(s.saved, snap)
	return snap.SessionID + "_1.mzsv", nil
}

func (s *fakeStore) Load(name string) (domain.Snapshot, error) {
	if name != "s1_1.mzsv" {
		return domain.Snapshot{}, errors.New("no such snapshot")
	}
	return domain.Snapshot{SessionID: "s1"}, nil
}

func TestHandleIntent(t *testing.T) {
	sess := &fakeSession{}
	aim := 45.0

	_, err := HandleIntent(handlers.Context{Session: sess}, api.IntentPayload{Dx: 1, Dy: -1, Run: true, Attack: true, Aim: &aim})
	require.NoError(t, err)
	assert.Equal(t, domain.Intent{MoveX: 1, MoveY: -1, Running: true, Attack: true, HasAim: true, AimAngle: 45}, sess.intent)

	_, err = HandleIntent(handlers.Context{Session: sess}, api.IntentPayload{Switch: true})
	require.NoError(t, err)
	assert.False(t, sess.intent.HasAim)
	assert.True(t, sess.intent.SwitchWeapon)
}

func TestHandlePauseResume(t *testing.T) {
	sess := &fakeSession{}
	ctx := handlers.Context{Session: sess}

	_, err := HandlePause(ctx)
	require.NoError(t, err)
	assert.True(t, sess.paused)

	_, err = HandleResume(ctx)
	require.NoError(t, err)
	assert.False(t, sess.paused)
}

func TestHandleSaveRestore(t *testing.T) {
	sess := &fakeSession{}
	store := &fakeStore{}
	ctx := handlers.Context{Session: sess, Store: store, Token: "client"}

	res, err := HandleSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SAVED", res.Reply)
	assert.Equal(t, "s1_1.mzsv", res.Snapshot)
	assert.Len(t, store.saved, 1)

	res, err = HandleRestore(ctx, api.RestorePayload{Snapshot: "s1_1.mzsv"})
	require.NoError(t, err)
	assert.Equal(t, "INIT", res.Reply)
	assert.True(t, res.Full)
	require.NotNil(t, sess.restored)

	_, err = HandleRestore(ctx, api.RestorePayload{Snapshot: "missing.mzsv"})
	assert.ErrorContains(t, err, "load snapshot")

	sess.err = errors.New("mode mismatch")
	_, err = HandleRestore(ctx, api.RestorePayload{Snapshot: "s1_1.mzsv"})
	assert.ErrorContains(t, err, "mode mismatch")
}

func TestHandleSave_NoStore(t *testing.T) {
	_, err := HandleSave(handlers.Context{Session: &fakeSession{}})
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = HandleRestore(handlers.Context{Session: &fakeSession{}}, api.RestorePayload{Snapshot: "x"})
	assert.ErrorIs(t, err, ErrNoStore)
}
