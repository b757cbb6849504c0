package dungeon

import (
	"math/rand"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10

	// Меньше не влезает комната с входом, лестницей и спавнами.
	MinMapWidth  = 8
	MinMapHeight = 8

	// Больше не генерируем: карта целиком живёт в памяти сессии.
	MaxMapWidth  = 200
	MaxMapHeight = 200

	// Уровень упакован в EntityID 16 битами.
	MaxLevel = 1<<16 - 1
)

// Rect - Вспомогательная структура для комнаты.
// Стены по периметру (X..X+W, Y..Y+H), пол внутри.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Spawn - заготовка сущности: какой шаблон и где.
type Spawn struct {
	Kind     domain.EntityKind
	Template string
	Pos      domain.Position
}

// Level - результат генерации: неизменяемая карта плюс список спавнов.
type Level struct {
	Layout *domain.Layout
	Rooms  []Rect
	Spawns []Spawn
}

// MonsterCount - сколько монстров на уровне. Не убывает с глубиной.
func MonsterCount(level int) int {
	return min(1+level, 15)
}

// ItemCount - сколько предметов на уровне. Не убывает с глубиной.
func ItemCount(level int) int {
	return min(1+level/2, 8)
}

// Generate создает уровень. Одинаковые аргументы дают одинаковый уровень:
// весь рандом идёт из rng, посеянного от (seed, level).
func Generate(seed int64, width, height, level int) (*Level, error) {
	if width < MinMapWidth || height < MinMapHeight {
		return nil, &domain.GenerationError{
			Width: width, Height: height, Level: level,
			Reason: "map is smaller than 8x8",
		}
	}
	if width > MaxMapWidth || height > MaxMapHeight {
		return nil, &domain.GenerationError{
			Width: width, Height: height, Level: level,
			Reason: "map is larger than 200x200",
		}
	}
	if level < 1 || level > MaxLevel {
		return nil, &domain.GenerationError{
			Width: width, Height: height, Level: level,
			Reason: "level index out of range",
		}
	}

	rng := rand.New(rand.NewSource(seed*31 + int64(level)))

	return NewLevel(level, rng).
		WithSize(width, height).
		WithRooms(MaxRooms).
		WithDoors().
		PlaceEntry().
		PlaceStairs().
		SpawnMonsters(MonsterCount(level)).
		SpawnItems(ItemCount(level)).
		Build()
}
