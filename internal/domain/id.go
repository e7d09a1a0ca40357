package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Zone + Index).
// Zone - номер чанка или уровня, в котором сущность родилась.
type EntityID uint64

const (
	bitsIndex = 40
	bitsZone  = 16
	bitsKind  = 8

	shiftZone = bitsIndex
	shiftKind = bitsIndex + bitsZone

	maskIndex = (1 << bitsIndex) - 1
	maskZone  = (1 << bitsZone) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PackEntityID создает ID из компонентов.
func PackEntityID(kind EntityKind, zone uint16, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(zone) & maskZone) << shiftZone
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Zone() uint16 {
	return uint16((id >> shiftZone) & maskZone)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON сериализует ID строкой: JS теряет точность для больших чисел.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%d:%d]", id.Kind(), id.Zone(), id.Index())
}

// IDAllocator раздает последовательные ID внутри сессии.
type IDAllocator struct {
	next uint64
}

func (a *IDAllocator) Next(kind EntityKind, zone uint16) EntityID {
	a.next++
	return PackEntityID(kind, zone, a.next)
}
