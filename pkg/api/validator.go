package api

import (
	"errors"
	"math"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p IntentPayload) Validate() error {
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Aim != nil && (math.IsNaN(*p.Aim) || math.IsInf(*p.Aim, 0)) {
		return errors.New("aim angle must be finite")
	}
	return nil
}

func (p RestorePayload) Validate() error {
	if p.Snapshot == "" {
		return errors.New("snapshot is required")
	}
	if strings.ContainsAny(p.Snapshot, `/\`) {
		return errors.New("snapshot must be a file name")
	}
	return nil
}

func (p RagePayload) Validate() error {
	if p.Rage < 0 || p.Rage > 100 {
		return errors.New("rage must be in [0, 100]")
	}
	return nil
}

func (p TimePayload) Validate() error {
	if p.Time < 0 {
		return errors.New("time cannot be negative")
	}
	return nil
}

func (r CreateSessionRequest) Validate() error {
	switch strings.ToLower(r.Mode) {
	case "", "survival":
		return nil
	case "level":
		if r.Level == "" {
			return errors.New("level path is required for level mode")
		}
		return nil
	}
	return errors.New("unknown mode: " + r.Mode)
}
