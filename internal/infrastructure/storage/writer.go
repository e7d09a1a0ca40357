package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maze-core/internal/domain"
	"maze-core/pkg/logger"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	MagicHeader string = `MZSV` // 4 байта
	Version1    uint32 = 1

	// FileExt - расширение файлов сохранений.
	FileExt = ".mzsv"
)

var (
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// SnapshotFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SnapshotFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Timestamp  int64   // 8 байт
	PayloadLen uint32  // 4 байта, тело в msgpack
}

// SnapshotStore хранит снапшоты сессий в каталоге, по файлу на сохранение.
type SnapshotStore struct {
	Dir string
	log *logrus.Entry
}

func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotStore{Dir: dir, log: logger.Component("snapshot_store")}, nil
}

// Save пишет снапшот и возвращает имя файла (без каталога).
func (s *SnapshotStore) Save(snap domain.Snapshot) (string, error) {
	name := fmt.Sprintf("%s_%d%s", snap.SessionID, snap.SavedAt, FileExt)
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := writeSnapshot(f, snap); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"file":    name,
		"session": snap.SessionID,
		"mode":    snap.Mode,
	}).Info("Snapshot saved")
	return name, nil
}

func writeSnapshot(w io.Writer, snap domain.Snapshot) error {
	payload, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	header := SnapshotFileHeader{
		Version:    Version1,
		Timestamp:  snap.SavedAt,
		PayloadLen: uint32(len(payload)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
