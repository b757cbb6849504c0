package dungeon

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// EntityTemplate определяет шаблон для создания монстра
type EntityTemplate struct {
	Name   string
	Render domain.RenderComponent
	Stats  domain.StatsComponent
	AI     domain.AIComponent
}

// SpawnEntity создает монстра из шаблона на заданной позиции.
// Статы растут с глубиной.
func (t EntityTemplate) SpawnEntity(pos domain.Position, level int) *domain.Entity {
	depth := max(level-1, 0)
	hp := t.Stats.HP + depth*2

	return &domain.Entity{
		Kind: domain.KindMonster,
		Name: t.Name,
		Pos:  pos,
		Render: &domain.RenderComponent{
			Symbol: t.Render.Symbol,
			Color:  t.Render.Color,
		},
		Stats: &domain.StatsComponent{
			HP:      hp,
			MaxHP:   hp,
			Attack:  t.Stats.Attack + depth/2,
			Defense: t.Stats.Defense + depth/3,
		},
		AI: &domain.AIComponent{
			Monster:    t.AI.Monster,
			AggroRange: t.AI.AggroRange,
			State:      domain.AIStateIdle,
		},
	}
}

// --- ВРАГИ ---

var Rat = EntityTemplate{
	Name:   "Крыса",
	Render: domain.RenderComponent{Symbol: "r", Color: "#A8A29E"},
	Stats:  domain.StatsComponent{HP: 4, Attack: 2, Defense: 0},
	AI:     domain.AIComponent{Monster: domain.MonsterRat, AggroRange: 4},
}

var Goblin = EntityTemplate{
	Name:   "Хитрый Гоблин",
	Render: domain.RenderComponent{Symbol: "g", Color: "#22C55E"},
	Stats:  domain.StatsComponent{HP: 7, Attack: 3, Defense: 1},
	AI:     domain.AIComponent{Monster: domain.MonsterGoblin, AggroRange: 6},
}

var Orc = EntityTemplate{
	Name:   "Свирепый Орк",
	Render: domain.RenderComponent{Symbol: "O", Color: "#DC2626"},
	Stats:  domain.StatsComponent{HP: 12, Attack: 5, Defense: 2},
	AI:     domain.AIComponent{Monster: domain.MonsterOrc, AggroRange: 8},
}

var Skeleton = EntityTemplate{
	Name:   "Скелет-страж",
	Render: domain.RenderComponent{Symbol: "s", Color: "#E5E7EB"},
	Stats:  domain.StatsComponent{HP: 9, Attack: 4, Defense: 3},
	AI:     domain.AIComponent{Monster: domain.MonsterSkeleton, AggroRange: 1},
}

// EnemyTemplates - карта всех доступных врагов
var EnemyTemplates = map[string]EntityTemplate{
	"rat":      Rat,
	"goblin":   Goblin,
	"orc":      Orc,
	"skeleton": Skeleton,
}

// MonsterPool - какие враги встречаются на уровне. Глубже - злее.
func MonsterPool(level int) []string {
	pool := []string{"rat", "goblin"}
	if level >= 2 {
		pool = append(pool, "skeleton")
	}
	if level >= 3 {
		pool = append(pool, "orc")
	}
	if level >= 5 {
		// Крысы больше не водятся
		pool = pool[1:]
	}
	return pool
}

// --- ПРЕДМЕТЫ ---

// ItemTemplate определяет шаблон для создания предмета-сущности
type ItemTemplate struct {
	Name       string
	Render     domain.RenderComponent
	Properties domain.ItemComponent
}

// SpawnItem создаёт Entity-предмет из шаблона
func (t ItemTemplate) SpawnItem(pos domain.Position) *domain.Entity {
	props := t.Properties
	return &domain.Entity{
		Kind: domain.KindItem,
		Name: t.Name,
		Pos:  pos,
		Render: &domain.RenderComponent{
			Symbol: t.Render.Symbol,
			Color:  t.Render.Color,
		},
		Item: &props,
	}
}

var HealthPotion = ItemTemplate{
	Name:       "Зелье здоровья",
	Render:     domain.RenderComponent{Symbol: "!", Color: "#DC2626"},
	Properties: domain.ItemComponent{Effect: domain.EffectHeal, Value: 10},
}

var StrengthElixir = ItemTemplate{
	Name:       "Эликсир силы",
	Render:     domain.RenderComponent{Symbol: "!", Color: "#CA8A04"},
	Properties: domain.ItemComponent{Effect: domain.EffectAttackBuff, Value: 3, Duration: 10},
}

var IronSkinTonic = ItemTemplate{
	Name:       "Настой железной кожи",
	Render:     domain.RenderComponent{Symbol: "!", Color: "#6B7280"},
	Properties: domain.ItemComponent{Effect: domain.EffectDefenseBuff, Value: 2, Duration: 10},
}

// ItemTemplates - карта всех предметов
var ItemTemplates = map[string]ItemTemplate{
	"health_potion":   HealthPotion,
	"strength_elixir": StrengthElixir,
	"iron_skin_tonic": IronSkinTonic,
}

// ItemPool - какие предметы встречаются на уровне
func ItemPool(level int) []string {
	pool := []string{"health_potion"}
	if level >= 2 {
		pool = append(pool, "strength_elixir")
	}
	if level >= 3 {
		pool = append(pool, "iron_skin_tonic")
	}
	return pool
}
