package domain

// JournalEntry - одна команда игрока, как она пришла.
type JournalEntry struct {
	Turn     int     `json:"turn"` // номер хода на момент подачи
	Command  Command `json:"command"`
	Accepted bool    `json:"accepted"`
}

// Journal - полная запись партии. Вместе с параметрами генерации
// позволяет пересобрать сессию бит в бит.
type Journal struct {
	Seed         int64          `json:"seed"` // Зерно генерации мира и рандома
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	LevelIndex   int            `json:"levelIndex"`
	WinCondition WinCondition   `json:"winCondition"`
	Entries      []JournalEntry `json:"entries"`
}

// Record добавляет запись.
func (j *Journal) Record(turn int, cmd Command, accepted bool) {
	j.Entries = append(j.Entries, JournalEntry{Turn: turn, Command: cmd, Accepted: accepted})
}

// Commands возвращает команды по порядку.
func (j Journal) Commands() []Command {
	out := make([]Command, 0, len(j.Entries))
	for _, e := range j.Entries {
		out = append(out, e.Command)
	}
	return out
}
