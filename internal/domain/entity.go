package domain

import "strings"

// EntityKind - вид сущности. Хранится в старших битах EntityID.
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindMonster
	KindItem
)

var entityKindToString = map[EntityKind]string{
	KindPlayer:  "PLAYER",
	KindMonster: "MONSTER",
	KindItem:    "ITEM",
}

func (k EntityKind) String() string {
	if val, ok := entityKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// MonsterKind - закрытый набор вариантов монстров. Поведение выбирается по тегу
// из таблицы политик (см. systems.Policies).
type MonsterKind uint8

const (
	MonsterUnknown MonsterKind = iota
	MonsterRat
	MonsterGoblin
	MonsterOrc
	MonsterSkeleton
)

var monsterKindToString = map[MonsterKind]string{
	MonsterRat:      "RAT",
	MonsterGoblin:   "GOBLIN",
	MonsterOrc:      "ORC",
	MonsterSkeleton: "SKELETON",
}

func (m MonsterKind) String() string {
	if val, ok := monsterKindToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseMonsterKind конвертирует строку ("rat", "Goblin") в MonsterKind
func ParseMonsterKind(s string) MonsterKind {
	upper := strings.ToUpper(s)
	for k, v := range monsterKindToString {
		if v == upper {
			return k
		}
	}
	return MonsterUnknown
}

// --- СУЩНОСТЬ ---

// Entity - игрок, монстр или предмет.
// Компоненты: если nil, значит свойство отсутствует.
type Entity struct {
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`
	Pos  Position   `json:"pos"`

	Render    *RenderComponent    `json:"render,omitempty"`
	Stats     *StatsComponent     `json:"stats,omitempty"`
	AI        *AIComponent        `json:"ai,omitempty"`
	Item      *ItemComponent      `json:"item,omitempty"`
	Inventory *InventoryComponent `json:"inventory,omitempty"`

	// Carried - предмет лежит в чьём-то инвентаре, а не на полу.
	// Pos у такого предмета не используется.
	Carried bool `json:"carried,omitempty"`
}

// IsBlocking - занимает клетку эксклюзивно (игрок, монстр). Предметы не блокируют.
func (e *Entity) IsBlocking() bool {
	return e.Kind == KindPlayer || e.Kind == KindMonster
}

// IsAlive - есть статы и здоровье больше нуля.
func (e *Entity) IsAlive() bool {
	return e.Stats != nil && e.Stats.HP > 0
}

// Clone делает глубокую копию (для реплеев и тестов).
func (e *Entity) Clone() *Entity {
	c := *e
	if e.Render != nil {
		r := *e.Render
		c.Render = &r
	}
	if e.Stats != nil {
		s := *e.Stats
		s.Effects = append([]StatusEffect(nil), e.Stats.Effects...)
		c.Stats = &s
	}
	if e.AI != nil {
		a := *e.AI
		c.AI = &a
	}
	if e.Item != nil {
		i := *e.Item
		c.Item = &i
	}
	if e.Inventory != nil {
		inv := *e.Inventory
		inv.Items = append([]EntityID(nil), e.Inventory.Items...)
		c.Inventory = &inv
	}
	return &c
}
