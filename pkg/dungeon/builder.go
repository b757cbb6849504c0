package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func createRoom(b *LevelBuilder, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			b.set(x, y, domain.TerrainFloor)
		}
	}
}

func createHCorridor(b *LevelBuilder, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		b.set(x, y, domain.TerrainFloor)
	}
}

func createVCorridor(b *LevelBuilder, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		b.set(x, y, domain.TerrainFloor)
	}
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Первая ошибка запоминается, остальные шаги пропускаются, Build её вернёт.
type LevelBuilder struct {
	level  int
	width  int
	height int
	rooms  []Rect
	cells  []domain.Terrain
	entry  domain.Position
	stairs domain.Position
	free   []domain.Position // свободные клетки для спавна, перемешаны
	spawns []Spawn
	rng    *rand.Rand
	err    error
}

// NewLevel создает новый builder для уровня
func NewLevel(level int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		level:  level,
		width:  MapWidth,
		height: MapHeight,
		spawns: make([]Spawn, 0),
		rng:    rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *LevelBuilder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = &domain.GenerationError{
			Width: b.width, Height: b.height, Level: b.level,
			Reason: fmt.Sprintf(format, args...),
		}
	}
}

func (b *LevelBuilder) at(x, y int) domain.Terrain {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return domain.TerrainWall
	}
	return b.cells[y*b.width+x]
}

func (b *LevelBuilder) set(x, y int, t domain.Terrain) {
	b.cells[y*b.width+x] = t
}

// WithRooms генерирует комнаты и соединяет каждую с предыдущей L-коридором.
// Цепочка коридоров гарантирует связность.
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	if b.err != nil {
		return b
	}

	// Размер комнаты ужимаем под карту: стена справа/снизу должна влезть до края.
	maxSize := min(MaxSize, b.width-3, b.height-3)
	minSize := min(MinSize, maxSize)
	if minSize < 3 {
		b.fail("no room fits")
		return b
	}

	// Инициализируем карту стенами
	b.cells = make([]domain.Terrain, b.width*b.height)

	b.rooms = make([]Rect, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(minSize, maxSize)
		h := b.randRange(minSize, maxSize)
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b, prevX, currX, prevY)
				createVCorridor(b, prevY, currY, currX)
			} else {
				createVCorridor(b, prevY, currY, prevX)
				createHCorridor(b, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// WithDoors ставит двери там, где коридор пробивает стену комнаты
// и по обе стороны пролома (вдоль стены) остаётся камень.
func (b *LevelBuilder) WithDoors() *LevelBuilder {
	if b.err != nil {
		return b
	}
	for _, r := range b.rooms {
		// Горизонтальные стены: соседи вдоль стены слева/справа
		for x := r.X + 1; x < r.X+r.W; x++ {
			for _, y := range []int{r.Y, r.Y + r.H} {
				if b.at(x, y) == domain.TerrainFloor &&
					b.at(x-1, y) == domain.TerrainWall && b.at(x+1, y) == domain.TerrainWall {
					b.set(x, y, domain.TerrainDoor)
				}
			}
		}
		// Вертикальные стены: соседи сверху/снизу
		for y := r.Y + 1; y < r.Y+r.H; y++ {
			for _, x := range []int{r.X, r.X + r.W} {
				if b.at(x, y) == domain.TerrainFloor &&
					b.at(x, y-1) == domain.TerrainWall && b.at(x, y+1) == domain.TerrainWall {
					b.set(x, y, domain.TerrainDoor)
				}
			}
		}
	}
	return b
}

// PlaceEntry выбирает вход: правый верхний угол пола первой комнаты
// (первая клетка правого столбца, у которой восточнее стена).
func (b *LevelBuilder) PlaceEntry() *LevelBuilder {
	if b.err != nil {
		return b
	}
	if len(b.rooms) == 0 {
		b.fail("no rooms generated")
		return b
	}

	first := b.rooms[0]
	x := first.X + first.W - 1
	for y := first.Y + 1; y < first.Y+first.H; y++ {
		if b.at(x+1, y) == domain.TerrainWall {
			b.entry = domain.Position{X: x, Y: y}
			return b
		}
	}

	// Правая стена вся в проломах. Берём любую клетку пола со стеной на востоке.
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.at(x, y).Walkable() && b.at(x+1, y) == domain.TerrainWall {
				b.entry = domain.Position{X: x, Y: y}
				return b
			}
		}
	}
	b.fail("no entry cell")
	return b
}

// PlaceStairs ставит лестницу вниз в самую дальнюю (по BFS) от входа клетку пола.
func (b *LevelBuilder) PlaceStairs() *LevelBuilder {
	if b.err != nil {
		return b
	}

	dist := b.distances(b.entry)
	best := -1
	for i, t := range b.cells {
		if t != domain.TerrainFloor || dist[i] <= 0 {
			continue
		}
		if best < 0 || dist[i] > dist[best] {
			best = i
		}
	}
	if best < 0 {
		b.fail("no cell for stairs")
		return b
	}

	b.stairs = domain.Position{X: best % b.width, Y: best / b.width}
	b.cells[best] = domain.TerrainStairDown

	// Свободные клетки для спавна: пол, кроме входа и лестницы
	b.free = b.free[:0]
	for i, t := range b.cells {
		p := domain.Position{X: i % b.width, Y: i / b.width}
		if t == domain.TerrainFloor && p != b.entry {
			b.free = append(b.free, p)
		}
	}
	b.rng.Shuffle(len(b.free), func(i, j int) { b.free[i], b.free[j] = b.free[j], b.free[i] })
	return b
}

// take достаёт свободную клетку. far - предпочесть клетки не рядом со входом.
func (b *LevelBuilder) take(far bool) (domain.Position, bool) {
	if len(b.free) == 0 {
		return domain.Position{}, false
	}
	idx := 0
	if far {
		for i, p := range b.free {
			if p.ChebyshevTo(b.entry) > 1 {
				idx = i
				break
			}
		}
	}
	p := b.free[idx]
	b.free = append(b.free[:idx], b.free[idx+1:]...)
	return p, true
}

// SpawnMonsters расставляет count монстров, вид выбирается из пула уровня.
func (b *LevelBuilder) SpawnMonsters(count int) *LevelBuilder {
	if b.err != nil {
		return b
	}
	pool := MonsterPool(b.level)
	for i := 0; i < count; i++ {
		pos, ok := b.take(true)
		if !ok {
			b.fail("not enough floor for %d monsters", count)
			return b
		}
		b.spawns = append(b.spawns, Spawn{
			Kind:     domain.KindMonster,
			Template: pool[b.rng.Intn(len(pool))],
			Pos:      pos,
		})
	}
	return b
}

// SpawnItems расставляет count предметов на полу.
func (b *LevelBuilder) SpawnItems(count int) *LevelBuilder {
	if b.err != nil {
		return b
	}
	pool := ItemPool(b.level)
	for i := 0; i < count; i++ {
		pos, ok := b.take(false)
		if !ok {
			b.fail("not enough floor for %d items", count)
			return b
		}
		b.spawns = append(b.spawns, Spawn{
			Kind:     domain.KindItem,
			Template: pool[b.rng.Intn(len(pool))],
			Pos:      pos,
		})
	}
	return b
}

// Build собирает уровень. Нарушение инвариантов карты - InvariantViolation.
func (b *LevelBuilder) Build() (*Level, error) {
	if b.err != nil {
		return nil, b.err
	}

	layout, err := domain.NewLayout(b.width, b.height, b.level, b.cells, b.entry)
	if err != nil {
		return nil, err
	}

	return &Level{
		Layout: layout,
		Rooms:  b.rooms,
		Spawns: b.spawns,
	}, nil
}

// distances - BFS по 4 соседям на черновой карте
func (b *LevelBuilder) distances(from domain.Position) []int {
	dist := make([]int, len(b.cells))
	for i := range dist {
		dist[i] = -1
	}
	dist[from.Y*b.width+from.X] = 0
	queue := []domain.Position{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := p.Shift(d[0], d[1])
			if !b.at(n.X, n.Y).Walkable() || dist[n.Y*b.width+n.X] >= 0 {
				continue
			}
			dist[n.Y*b.width+n.X] = dist[p.Y*b.width+p.X] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
