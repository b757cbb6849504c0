package dungeon

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// CreatePlayer создаёт героя с пустым инвентарём
func CreatePlayer(pos domain.Position) *domain.Entity {
	return &domain.Entity{
		Kind:   domain.KindPlayer,
		Name:   "Герой",
		Pos:    pos,
		Render: &domain.RenderComponent{Symbol: "@", Color: "#22D3EE"},
		Stats: &domain.StatsComponent{
			HP:      domain.PlayerMaxHP,
			MaxHP:   domain.PlayerMaxHP,
			Attack:  domain.PlayerAttack,
			Defense: domain.PlayerDefense,
		},
		Inventory: &domain.InventoryComponent{
			Items:    []domain.EntityID{},
			MaxSlots: domain.InventorySlots,
		},
	}
}

// Populate регистрирует игрока на входе, затем все спавны уровня по порядку.
// Порядок фиксирован, поэтому ID детерминированы.
func Populate(reg *domain.Registry, lvl *Level) (domain.EntityID, error) {
	playerID, err := reg.Add(CreatePlayer(lvl.Layout.Entry()))
	if err != nil {
		return domain.NilEntityID, fmt.Errorf("place player: %w", err)
	}

	for _, s := range lvl.Spawns {
		var e *domain.Entity
		switch s.Kind {
		case domain.KindMonster:
			tmpl, ok := EnemyTemplates[s.Template]
			if !ok {
				return domain.NilEntityID, fmt.Errorf("unknown monster template %q", s.Template)
			}
			e = tmpl.SpawnEntity(s.Pos, lvl.Layout.Level())
		case domain.KindItem:
			tmpl, ok := ItemTemplates[s.Template]
			if !ok {
				return domain.NilEntityID, fmt.Errorf("unknown item template %q", s.Template)
			}
			e = tmpl.SpawnItem(s.Pos)
		default:
			return domain.NilEntityID, fmt.Errorf("spawn kind %v not supported", s.Kind)
		}

		if _, err := reg.Add(e); err != nil {
			return domain.NilEntityID, fmt.Errorf("spawn %s: %w", s.Template, err)
		}
	}
	return playerID, nil
}
