package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// Потолок на число записей, чтобы битый заголовок не съел память.
const maxEntries = 1 << 20

func (s *ReplayService) Load(path string) (domain.Journal, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Journal{}, time.Time{}, err
	}
	defer f.Close()

	return ReadJournal(f)
}

// ReadJournal читает журнал и время записи.
func ReadJournal(r io.Reader) (domain.Journal, time.Time, error) {
	// 1. Читаем заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return domain.Journal{}, time.Time{}, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return domain.Journal{}, time.Time{}, fmt.Errorf("invalid magic")
	}
	if header.Version != Version2 {
		return domain.Journal{}, time.Time{}, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version2)
	}
	if header.EntryCount < 0 || header.EntryCount > maxEntries {
		return domain.Journal{}, time.Time{}, fmt.Errorf("invalid entry count: %d", header.EntryCount)
	}

	j := domain.Journal{
		Seed:         header.Seed,
		Width:        int(header.Width),
		Height:       int(header.Height),
		LevelIndex:   int(header.LevelIndex),
		WinCondition: domain.WinCondition(header.WinCondition),
		Entries:      make([]domain.JournalEntry, 0, header.EntryCount),
	}

	// 2. Читаем записи
	for i := 0; i < int(header.EntryCount); i++ {
		var rec EntryRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return domain.Journal{}, time.Time{}, fmt.Errorf("entry %d: %w", i, err)
		}
		j.Entries = append(j.Entries, domain.JournalEntry{
			Turn: int(rec.Turn),
			Command: domain.Command{
				Type:      domain.ActionType(rec.Action),
				Direction: domain.Direction(rec.Direction),
				TargetID:  domain.EntityID(rec.TargetID),
				ItemID:    domain.EntityID(rec.ItemID),
			},
			Accepted: rec.Accepted == 1,
		})
	}

	return j, time.Unix(header.Timestamp, 0).UTC(), nil
}
