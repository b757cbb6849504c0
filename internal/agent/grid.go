package agent

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// grid - локальная картина мира бота, собранная из снимка.
// Неразведанное считается стеной, чтобы не строить пути в неизвестность.
type grid struct {
	w, h    int
	open    []bool
	unknown []bool
}

func newGrid(snap api.Snapshot) *grid {
	g := &grid{w: snap.Grid.Width, h: snap.Grid.Height}
	g.open = make([]bool, g.w*g.h)
	g.unknown = make([]bool, g.w*g.h)
	for _, t := range snap.Map {
		if !g.inBounds(t.X, t.Y) {
			continue
		}
		i := t.Y*g.w + t.X
		g.open[i] = t.IsExplored && !t.IsWall
		g.unknown[i] = !t.IsExplored
	}
	return g
}

func (g *grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *grid) index(p api.PositionView) int {
	return p.Y*g.w + p.X
}

func (g *grid) block(p api.PositionView) {
	if g.inBounds(p.X, p.Y) {
		g.open[g.index(p)] = false
	}
}

// frontier - разведанные проходимые клетки рядом с неразведанными.
func (g *grid) frontier() []int {
	var out []int
	for i, ok := range g.open {
		if !ok {
			continue
		}
		x, y := i%g.w, i/g.w
		for _, d := range domain.AllDirections {
			dx, dy := d.Delta()
			nx, ny := x+dx, y+dy
			if g.inBounds(nx, ny) && g.unknown[ny*g.w+nx] {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// firstStep - BFS по 8 направлениям до ближайшей цели.
// Клетка цели проходима, даже если занята (монстр).
// Возвращает направление первого шага.
func (g *grid) firstStep(from api.PositionView, targets []int) (domain.Direction, bool) {
	if !g.inBounds(from.X, from.Y) {
		return domain.DirNone, false
	}
	goal := make(map[int]bool, len(targets))
	for _, t := range targets {
		goal[t] = true
	}
	start := g.index(from)
	if goal[start] {
		return domain.DirNone, false
	}

	parent := make([]int, g.w*g.h)
	for i := range parent {
		parent[i] = -1
	}
	parent[start] = start
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if goal[cur] {
			return g.stepToward(start, cur, parent), true
		}
		x, y := cur%g.w, cur/g.w
		for _, d := range domain.AllDirections {
			dx, dy := d.Delta()
			nx, ny := x+dx, y+dy
			if !g.inBounds(nx, ny) {
				continue
			}
			next := ny*g.w + nx
			if parent[next] != -1 || (!g.open[next] && !goal[next]) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return domain.DirNone, false
}

func (g *grid) stepToward(start, end int, parent []int) domain.Direction {
	cur := end
	for parent[cur] != start {
		cur = parent[cur]
	}
	return domain.DirectionFromDelta(cur%g.w-start%g.w, cur/g.w-start/g.w)
}
