package handlers

import (
	"encoding/json"
	"maze-core/internal/domain"
	"maze-core/pkg/api"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPayload(t *testing.T) {
	var got api.RagePayload
	calls := 0
	h := WithPayload(func(ctx Context, p api.RagePayload) (Result, error) {
		calls++
		got = p
		return Result{Msg: "ok"}, nil
	})

	res, err := h(Context{}, json.RawMessage(`{"rage": 42}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Msg)
	assert.Equal(t, 42.0, got.Rage)

	// Пустой payload - нулевое значение
	_, err = h(Context{}, nil)
	require.NoError(t, err)
	_, err = h(Context{}, json.RawMessage("null"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Rage)

	_, err = h(Context{}, json.RawMessage(`{"rage": "high"}`))
	assert.ErrorContains(t, err, "invalid payload format")

	_, err = h(Context{}, json.RawMessage(`{"rage": 150}`))
	assert.ErrorContains(t, err, "validation failed")

	assert.Equal(t, 3, calls)
}

func TestWithEmptyPayload(t *testing.T) {
	h := WithEmptyPayload(func(ctx Context) (Result, error) {
		return Result{Reply: "INIT", Full: true}, nil
	})

	res, err := h(Context{}, json.RawMessage(`{"ignored": true}`))
	require.NoError(t, err)
	assert.Equal(t, "INIT", res.Reply)
	assert.True(t, res.Full)
}

func TestEmptyResult(t *testing.T) {
	assert.Equal(t, Result{}, EmptyResult())
	var _ SessionControl = (*nopSession)(nil)
}

type nopSession struct{}

func (nopSession) SetIntent(domain.Intent)       {}
func (nopSession) Pause()                        {}
func (nopSession) Resume()                       {}
func (nopSession) Snapshot() domain.Snapshot     { return domain.Snapshot{} }
func (nopSession) Restore(domain.Snapshot) error { return nil }
func (nopSession) SetRage(float64)               {}
func (nopSession) SetSurvivalTime(float64)       {}
func (nopSession) ForceSpawn(bool) bool          { return false }
