package domain

import "strings"

// --- КОМПОНЕНТЫ ---

// RenderComponent - Визуализация (Клиент)
type RenderComponent struct {
	Symbol string `json:"symbol"` // Символ отображения (g-гоблин, !-зелье)
	Color  string `json:"color"`
}

// StatsComponent - Характеристики
type StatsComponent struct {
	HP      int            `json:"hp"`
	MaxHP   int            `json:"maxHp"`
	Attack  int            `json:"attack"`
	Defense int            `json:"defense"`
	Effects []StatusEffect `json:"effects,omitempty"`
}

// AIState - состояние мозгов монстра
type AIState uint8

const (
	AIStateIdle AIState = iota
	AIStateChasing
)

func (s AIState) String() string {
	if s == AIStateChasing {
		return "CHASING"
	}
	return "IDLE"
}

// AIComponent - Мозги
type AIComponent struct {
	Monster    MonsterKind `json:"monster"`
	AggroRange int         `json:"aggroRange"`
	State      AIState     `json:"state"`
}

// ItemEffect - что делает предмет при использовании
type ItemEffect uint8

const (
	EffectUnknown ItemEffect = iota
	EffectHeal
	EffectAttackBuff
	EffectDefenseBuff
)

var itemEffectToString = map[ItemEffect]string{
	EffectHeal:        "HEAL",
	EffectAttackBuff:  "ATTACK_BUFF",
	EffectDefenseBuff: "DEFENSE_BUFF",
}

func (e ItemEffect) String() string {
	if val, ok := itemEffectToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseItemEffect конвертирует строку в ItemEffect
func ParseItemEffect(s string) ItemEffect {
	upper := strings.ToUpper(s)
	for k, v := range itemEffectToString {
		if v == upper {
			return k
		}
	}
	return EffectUnknown
}

// IsTimed - эффект действует N ходов, а не мгновенно.
func (e ItemEffect) IsTimed() bool {
	return e == EffectAttackBuff || e == EffectDefenseBuff
}

// ItemComponent описывает расходуемый предмет.
type ItemComponent struct {
	Effect   ItemEffect `json:"effect"`
	Value    int        `json:"value"`
	Duration int        `json:"duration,omitempty"` // только для баффов, в ходах
}

// StatusEffect - временный бафф на сущности.
type StatusEffect struct {
	Effect         ItemEffect `json:"effect"`
	Amount         int        `json:"amount"`
	RemainingTurns int        `json:"remainingTurns"`
}

// InventoryComponent хранит ID предметов в порядке подбора.
type InventoryComponent struct {
	Items    []EntityID `json:"items"`
	MaxSlots int        `json:"maxSlots"`
}

// IsFull - свободных слотов нет.
func (inv *InventoryComponent) IsFull() bool {
	return inv.MaxSlots > 0 && len(inv.Items) >= inv.MaxSlots
}

// Contains проверяет наличие предмета.
func (inv *InventoryComponent) Contains(id EntityID) bool {
	for _, item := range inv.Items {
		if item == id {
			return true
		}
	}
	return false
}

// Add добавляет предмет с проверкой места.
func (inv *InventoryComponent) Add(id EntityID) bool {
	if inv.IsFull() {
		return false
	}
	inv.Items = append(inv.Items, id)
	return true
}

// Remove удаляет предмет, сохраняя порядок остальных.
func (inv *InventoryComponent) Remove(id EntityID) bool {
	for i, item := range inv.Items {
		if item == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}
