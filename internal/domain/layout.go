package domain

// Terrain - тип клетки. Нулевое значение - стена.
type Terrain uint8

const (
	TerrainWall Terrain = iota
	TerrainFloor
	TerrainDoor
	TerrainStairDown
)

var terrainToString = map[Terrain]string{
	TerrainWall:      "wall",
	TerrainFloor:     "floor",
	TerrainDoor:      "door",
	TerrainStairDown: "stair_down",
}

func (t Terrain) String() string {
	if val, ok := terrainToString[t]; ok {
		return val
	}
	return "unknown"
}

func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Walkable - по клетке можно ходить. Двери всегда открыты.
func (t Terrain) Walkable() bool {
	return t != TerrainWall
}

// Transparent - клетка не загораживает обзор.
func (t Terrain) Transparent() bool {
	return t != TerrainWall
}

// Layout - неизменяемая карта уровня. Занятость клеток хранит Registry,
// поэтому один Layout можно безопасно делить между сессиями.
type Layout struct {
	width, height int
	level         int
	cells         []Terrain // индекс: y*width + x
	entry         Position
	stairDown     Position
}

// NewLayout копирует клетки и проверяет инварианты уровня:
// ровно одна лестница вниз, вход проходим, все проходимые клетки достижимы от входа.
func NewLayout(width, height, level int, cells []Terrain, entry Position) (*Layout, error) {
	if width <= 0 || height <= 0 || len(cells) != width*height {
		return nil, Violation("layout %dx%d has %d cells", width, height, len(cells))
	}

	l := &Layout{
		width:  width,
		height: height,
		level:  level,
		cells:  append([]Terrain(nil), cells...),
		entry:  entry,
	}

	stairs := 0
	for i, t := range l.cells {
		if t == TerrainStairDown {
			stairs++
			l.stairDown = l.posOf(i)
		}
	}
	if stairs != 1 {
		return nil, Violation("layout has %d stair-down cells, want 1", stairs)
	}
	if !l.Walkable(entry) {
		return nil, Violation("entry %v is not walkable", entry)
	}
	if entry == l.stairDown {
		return nil, Violation("entry and stair-down share cell %v", entry)
	}

	reach := l.Reachable(entry)
	for i, t := range l.cells {
		if t.Walkable() && !reach[i] {
			return nil, Violation("cell %v unreachable from entry %v", l.posOf(i), entry)
		}
	}

	return l, nil
}

func (l *Layout) Width() int           { return l.width }
func (l *Layout) Height() int          { return l.height }
func (l *Layout) Level() int           { return l.level }
func (l *Layout) Entry() Position      { return l.entry }
func (l *Layout) StairDown() Position  { return l.stairDown }
func (l *Layout) Index(p Position) int { return p.Y*l.width + p.X }
func (l *Layout) posOf(i int) Position { return Position{X: i % l.width, Y: i / l.width} }

func (l *Layout) InBounds(p Position) bool {
	return p.X >= 0 && p.X < l.width && p.Y >= 0 && p.Y < l.height
}

// TerrainAt - за пределами карты всегда стена.
func (l *Layout) TerrainAt(p Position) Terrain {
	if !l.InBounds(p) {
		return TerrainWall
	}
	return l.cells[l.Index(p)]
}

func (l *Layout) Walkable(p Position) bool {
	return l.TerrainAt(p).Walkable()
}

func (l *Layout) Transparent(p Position) bool {
	return l.TerrainAt(p).Transparent()
}

// WalkableCells возвращает все проходимые клетки в порядке строк.
func (l *Layout) WalkableCells() []Position {
	out := make([]Position, 0, len(l.cells)/2)
	for i, t := range l.cells {
		if t.Walkable() {
			out = append(out, l.posOf(i))
		}
	}
	return out
}

// Reachable - BFS по 4 соседям через проходимые клетки.
// Результат индексирован как cells.
func (l *Layout) Reachable(from Position) []bool {
	seen := make([]bool, len(l.cells))
	if !l.Walkable(from) {
		return seen
	}
	queue := []Position{from}
	seen[l.Index(from)] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range cardinal {
			n := p.Shift(d[0], d[1])
			if !l.Walkable(n) || seen[l.Index(n)] {
				continue
			}
			seen[l.Index(n)] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// Distances - BFS-расстояния (по 4 соседям) от from. -1 для недостижимых.
func (l *Layout) Distances(from Position) []int {
	dist := make([]int, len(l.cells))
	for i := range dist {
		dist[i] = -1
	}
	if !l.Walkable(from) {
		return dist
	}
	queue := []Position{from}
	dist[l.Index(from)] = 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range cardinal {
			n := p.Shift(d[0], d[1])
			if !l.Walkable(n) || dist[l.Index(n)] >= 0 {
				continue
			}
			dist[l.Index(n)] = dist[l.Index(p)] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

var cardinal = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
