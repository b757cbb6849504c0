package engine

import (
	"strconv"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// Визуал тайлов
var terrainRender = map[domain.Terrain][2]string{
	domain.TerrainWall:      {"#", "#666666"},
	domain.TerrainFloor:     {".", "#333333"},
	domain.TerrainDoor:      {"+", "#8b5a2b"},
	domain.TerrainStairDown: {">", "#ffd700"},
}

// Snapshot создает неизменяемый "снимок" сессии для клиента.
// Все слайсы новые: снимок не разделяет память с сессией.
func (s *Session) Snapshot() api.Snapshot {
	l := s.layout

	// 1. Формирование карты (Map DTO)
	mapDTO := make([]api.TileView, 0, l.Width()*l.Height())
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			pos := domain.Position{X: x, Y: y}
			idx := l.Index(pos)
			terrain := l.TerrainAt(pos)
			render := terrainRender[terrain]

			mapDTO = append(mapDTO, api.TileView{
				X: x, Y: y,
				Terrain:    terrain.String(),
				Symbol:     render[0],
				Color:      render[1],
				IsWall:     !terrain.Walkable(),
				IsVisible:  s.visible[idx],
				IsExplored: s.explored[idx],
			})
		}
	}

	// 2. Формирование списка сущностей (Entities DTO). Предметы в инвентаре
	// показываются внутри инвентаря владельца.
	viewEntities := make([]api.EntityView, 0, s.reg.Len())
	for _, e := range s.reg.Entities() {
		if e.Carried {
			continue
		}
		viewEntities = append(viewEntities, s.toEntityView(e))
	}

	// 3. События и лог
	events := make([]api.EventView, 0, len(s.events))
	logs := make([]api.LogEntry, 0, len(s.events))
	for i, ev := range s.events {
		events = append(events, toEventView(ev))
		if entry, ok := s.describe(i, ev); ok {
			logs = append(logs, entry)
		}
	}

	return api.Snapshot{
		Phase:        s.phase.String(),
		Turn:         s.turn,
		Level:        l.Level(),
		Seed:         s.cfg.Seed,
		WinCondition: s.cfg.WinCondition.String(),
		PlayerID:     formatID(s.playerID),
		Grid:         api.GridMeta{Width: l.Width(), Height: l.Height()},
		Map:          mapDTO,
		Entities:     viewEntities,
		Events:       events,
		Logs:         logs,
	}
}

// toEntityView конвертирует доменную сущность в DTO для отправки клиенту.
func (s *Session) toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:        formatID(e.ID),
		Kind:      e.Kind.String(),
		Name:      e.Name,
		Pos:       api.PositionView{X: e.Pos.X, Y: e.Pos.Y},
		IsVisible: e.ID == s.playerID || s.visible[s.layout.Index(e.Pos)],
	}

	if e.Render != nil {
		view.Render.Symbol = e.Render.Symbol
		view.Render.Color = e.Render.Color
	} else {
		view.Render.Symbol = "?"
		view.Render.Color = "#fff"
	}

	if e.AI != nil {
		view.Monster = e.AI.Monster.String()
	}

	if e.Stats != nil {
		view.Stats = toStatsView(e.Stats)
	}

	if e.Item != nil {
		item := s.toItemView(e)
		view.Item = &item
	}

	if e.Inventory != nil {
		inv := &api.InventoryView{
			Items:    make([]api.ItemView, 0, len(e.Inventory.Items)),
			MaxSlots: e.Inventory.MaxSlots,
		}
		for _, id := range e.Inventory.Items {
			if item := s.reg.Get(id); item != nil {
				inv.Items = append(inv.Items, s.toItemView(item))
			}
		}
		view.Inventory = inv
	}

	return view
}

func toStatsView(st *domain.StatsComponent) *api.StatsView {
	view := &api.StatsView{
		HP:      st.HP,
		MaxHP:   st.MaxHP,
		Attack:  st.EffectiveAttack(),
		Defense: st.EffectiveDefense(),
	}
	for _, eff := range st.Effects {
		view.Effects = append(view.Effects, api.EffectView{
			Effect:         eff.Effect.String(),
			Amount:         eff.Amount,
			RemainingTurns: eff.RemainingTurns,
		})
	}
	return view
}

func (s *Session) toItemView(e *domain.Entity) api.ItemView {
	view := api.ItemView{ID: formatID(e.ID), Name: e.Name}
	if e.Render != nil {
		view.Symbol = e.Render.Symbol
		view.Color = e.Render.Color
	}
	if e.Item != nil {
		view.Effect = e.Item.Effect.String()
		view.Value = e.Item.Value
		view.Duration = e.Item.Duration
	}
	return view
}

func toEventView(ev domain.Event) api.EventView {
	view := api.EventView{
		Type:       ev.Type.String(),
		Turn:       ev.Turn,
		Actor:      formatID(ev.Actor),
		Target:     formatID(ev.Target),
		Item:       formatID(ev.Item),
		Damage:     ev.Damage,
		TargetHP:   ev.TargetHP,
		TargetDied: ev.TargetDied,
		Amount:     ev.Amount,
		Reason:     ev.Reason,
	}
	switch ev.Type {
	case domain.EventMoved, domain.EventBlocked, domain.EventAttackResolved:
		view.From = &api.PositionView{X: ev.From.X, Y: ev.From.Y}
		view.To = &api.PositionView{X: ev.To.X, Y: ev.To.Y}
	case domain.EventItemPickedUp, domain.EventPlayerDied:
		view.To = &api.PositionView{X: ev.To.X, Y: ev.To.Y}
	}
	return view
}

// formatID - ID строкой, как в JSON. Пустой ID - пустая строка.
func formatID(id domain.EntityID) string {
	if id.IsNil() {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
