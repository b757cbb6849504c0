package agent

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// Decide - мозг бота. Выбирает одну команду по снимку.
//
// Приоритеты:
//  1. Лечиться, если HP не больше половины.
//  2. Бить соседнего монстра (перед этим выпить бафф атаки, если есть).
//  3. Идти к ближайшей цели: предмет на полу, лестница, монстр, граница тумана.
//  4. Ждать.
func Decide(snap api.Snapshot) api.ClientCommand {
	me := findEntity(snap, snap.PlayerID)
	if me == nil || me.Stats == nil || me.Stats.HP <= 0 {
		return waitCommand()
	}

	if me.Stats.HP*2 <= me.Stats.MaxHP {
		if item := findItem(me, domain.EffectHeal.String()); item != nil {
			return useCommand(item.ID)
		}
	}

	monsters := visible(snap, domain.KindMonster.String())
	for _, m := range monsters {
		if adjacent(me.Pos, m.Pos) {
			if item := findItem(me, domain.EffectAttackBuff.String()); item != nil && !hasEffect(me, item.Effect) {
				return useCommand(item.ID)
			}
			return attackCommand(m.ID)
		}
	}

	g := newGrid(snap)
	for _, m := range monsters {
		g.block(m.Pos)
	}

	for _, goal := range goals(snap, me, g, monsters) {
		if len(goal) == 0 {
			continue
		}
		if d, ok := g.firstStep(me.Pos, goal); ok {
			return moveCommand(d)
		}
	}
	return waitCommand()
}

// goals - наборы целей по убыванию приоритета.
func goals(snap api.Snapshot, me *api.EntityView, g *grid, monsters []api.EntityView) [][]int {
	var items, stairs, hunt []int

	if me.Inventory == nil || len(me.Inventory.Items) < me.Inventory.MaxSlots {
		for _, it := range visible(snap, domain.KindItem.String()) {
			items = append(items, g.index(it.Pos))
		}
	}

	if snap.WinCondition == domain.WinClearAllMonsters.String() {
		for _, m := range monsters {
			hunt = append(hunt, g.index(m.Pos))
		}
	} else {
		for i, t := range snap.Map {
			if t.IsExplored && t.Terrain == domain.TerrainStairDown.String() {
				stairs = append(stairs, i)
			}
		}
	}

	return [][]int{items, stairs, hunt, g.frontier()}
}

func findEntity(snap api.Snapshot, id string) *api.EntityView {
	for i := range snap.Entities {
		if snap.Entities[i].ID == id {
			return &snap.Entities[i]
		}
	}
	return nil
}

func visible(snap api.Snapshot, kind string) []api.EntityView {
	var out []api.EntityView
	for _, e := range snap.Entities {
		if e.Kind == kind && e.IsVisible {
			out = append(out, e)
		}
	}
	return out
}

func findItem(me *api.EntityView, effect string) *api.ItemView {
	if me.Inventory == nil {
		return nil
	}
	for i := range me.Inventory.Items {
		if me.Inventory.Items[i].Effect == effect {
			return &me.Inventory.Items[i]
		}
	}
	return nil
}

func hasEffect(me *api.EntityView, effect string) bool {
	for _, e := range me.Stats.Effects {
		if e.Effect == effect {
			return true
		}
	}
	return false
}

func adjacent(a, b api.PositionView) bool {
	return domain.Position{X: a.X, Y: a.Y}.IsAdjacent(domain.Position{X: b.X, Y: b.Y})
}
