package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"maze-core/internal/domain"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// maxPayload - защита от мусорного заголовка.
const maxPayload = 1 << 20

// Load читает снапшот по имени файла. Каталоги в имени отбрасываются.
func (s *SnapshotStore) Load(name string) (domain.Snapshot, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer f.Close()

	return readSnapshot(f)
}

// List - имена сохранений, новые последними.
func (s *SnapshotStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), FileExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func readSnapshot(r io.Reader) (domain.Snapshot, error) {
	var snap domain.Snapshot

	// 1. Читаем заголовок целиком
	var header SnapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return snap, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return snap, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return snap, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}
	if header.PayloadLen > maxPayload {
		return snap, fmt.Errorf("payload too large: %d", header.PayloadLen)
	}

	// 2. Читаем тело
	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return snap, fmt.Errorf("failed to read payload: %w", err)
	}
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
