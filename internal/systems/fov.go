package systems

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisibleTiles возвращает мапу индексов клеток {index: true}, которые видны из pos.
// Рекурсивный shadowcasting.
func ComputeVisibleTiles(l *domain.Layout, pos domain.Position, radius int) map[int]bool {
	visibleMap := make(map[int]bool)
	if radius <= 0 || !l.InBounds(pos) {
		return visibleMap // Слепой
	}

	// Центр всегда виден
	visibleMap[l.Index(pos)] = true

	for i := 0; i < 8; i++ {
		castLight(l, pos.X, pos.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visibleMap)
	}

	logger.WithComponent("fov_system").
		WithField("visible_tiles", len(visibleMap)).
		Debug("FOV calculation complete.")

	return visibleMap
}

func castLight(l *domain.Layout, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visibleMap map[int]bool) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			p := domain.Position{X: cx + dx*xx + dy*xy, Y: cy + dx*yx + dy*yy}

			if l.InBounds(p) && float64(dx*dx+dy*dy) < radiusSq {
				visibleMap[l.Index(p)] = true
			}

			// Логика теней
			if blocked {
				// Мы идем вдоль стены...
				if !l.Transparent(p) {
					newStart = rSlope
					continue
				}
				// Стена кончилась, началась пустота
				blocked = false
				start = newStart
			} else if !l.Transparent(p) && j < radius {
				// Мы шли по пустоте и наткнулись на стену
				blocked = true
				castLight(l, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visibleMap)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
