package domain

import (
	"math"
	"strings"
)

// Position - координата клетки. X - столбец (col), Y - строка (row).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(math.Pow(float64(p.X-other.X), 2) + math.Pow(float64(p.Y-other.Y), 2))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo - число ходов короля между клетками (диагональ = 1 шаг).
func (p Position) ChebyshevTo(other Position) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	return p.ChebyshevTo(other) == 1
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step сдвигает позицию на одну клетку в направлении d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

// DirectionTo возвращает шаг (-1, 0, 1) по каждой оси в сторону цели.
func (p Position) DirectionTo(other Position) (int, int) {
	return sign(other.X - p.X), sign(other.Y - p.Y)
}

// Direction - одно из 8 направлений движения.
type Direction uint8

const (
	DirNone Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// AllDirections в порядке обхода по часовой стрелке, начиная с севера.
var AllDirections = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionDeltas = map[Direction][2]int{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

var directionToString = map[Direction]string{
	North:     "N",
	NorthEast: "NE",
	East:      "E",
	SouthEast: "SE",
	South:     "S",
	SouthWest: "SW",
	West:      "W",
	NorthWest: "NW",
}

var directionStringToType = map[string]Direction{
	"N": North, "NORTH": North,
	"NE": NorthEast, "NORTHEAST": NorthEast,
	"E": East, "EAST": East,
	"SE": SouthEast, "SOUTHEAST": SouthEast,
	"S": South, "SOUTH": South,
	"SW": SouthWest, "SOUTHWEST": SouthWest,
	"W": West, "WEST": West,
	"NW": NorthWest, "NORTHWEST": NorthWest,
}

// Delta возвращает смещение (dx, dy). Для DirNone - (0, 0).
func (d Direction) Delta() (int, int) {
	v := directionDeltas[d]
	return v[0], v[1]
}

// IsValid - одно из 8 направлений.
func (d Direction) IsValid() bool {
	_, ok := directionDeltas[d]
	return ok
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "NONE"
}

// ParseDirection конвертирует строку ("e", "East", "SW") в Direction
func ParseDirection(s string) Direction {
	if val, ok := directionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return DirNone
}

// DirectionFromDelta - обратное к Delta. Смещения за пределами [-1, 1] дают DirNone.
func DirectionFromDelta(dx, dy int) Direction {
	for d, v := range directionDeltas {
		if v[0] == dx && v[1] == dy {
			return d
		}
	}
	return DirNone
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}
