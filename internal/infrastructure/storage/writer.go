package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

const (
	MagicHeader string = `CDRP` // 4 байта
	Version2    uint32 = 2      // журнал команд (v1 - старый формат с токенами)
)

// JournalFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	Width        int32   // 4 байта
	Height       int32   // 4 байта
	LevelIndex   int32   // 4 байта
	WinCondition uint8   // 1 байт
	_            [3]byte // выравнивание
	EntryCount   int32   // 4 байта
}

// EntryRecord - одна команда журнала фиксированного размера.
type EntryRecord struct {
	Turn      int32  // 4
	Action    uint8  // 1
	Direction uint8  // 1
	Accepted  uint8  // 1
	_         uint8  // 1
	TargetID  uint64 // 8
	ItemID    uint64 // 8
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет журнал в новый файл и возвращает его путь.
func (s *ReplayService) Save(j domain.Journal, at time.Time) (string, error) {
	filename := fmt.Sprintf("replay_%d_lvl%d_%d.cdrp", j.Seed, j.LevelIndex, at.Unix())
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteJournal(f, j, at); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteJournal сериализует журнал: заголовок, затем записи подряд.
func WriteJournal(w io.Writer, j domain.Journal, at time.Time) error {
	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := JournalFileHeader{
		Version:      Version2,
		Seed:         j.Seed,
		Timestamp:    at.Unix(),
		Width:        int32(j.Width),
		Height:       int32(j.Height),
		LevelIndex:   int32(j.LevelIndex),
		WinCondition: uint8(j.WinCondition),
		EntryCount:   int32(len(j.Entries)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	// 2. Пишем записи
	for _, e := range j.Entries {
		rec := EntryRecord{
			Turn:      int32(e.Turn),
			Action:    uint8(e.Command.Type),
			Direction: uint8(e.Command.Direction),
			TargetID:  uint64(e.Command.TargetID),
			ItemID:    uint64(e.Command.ItemID),
		}
		if e.Accepted {
			rec.Accepted = 1
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}
	return nil
}
