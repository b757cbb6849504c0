package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionUseItem
	ActionWait
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":   ActionMove,
	"ATTACK": ActionAttack,
	"USE":    ActionUseItem,
	"WAIT":   ActionWait,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:    "MOVE",
	ActionAttack:  "ATTACK",
	ActionUseItem: "USE",
	ActionWait:    "WAIT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	*a = ParseAction(string(text))
	return nil
}

// Command - намерение извне: Move(dir) | Attack(target) | UseItem(item) | Wait.
// Живёт один вызов, никуда не сохраняется (кроме журнала реплея).
type Command struct {
	Type      ActionType `json:"type"`
	Direction Direction  `json:"direction,omitempty"`
	TargetID  EntityID   `json:"targetId,omitempty"`
	ItemID    EntityID   `json:"itemId,omitempty"`
}

func Move(d Direction) Command       { return Command{Type: ActionMove, Direction: d} }
func Attack(target EntityID) Command { return Command{Type: ActionAttack, TargetID: target} }
func UseItem(item EntityID) Command  { return Command{Type: ActionUseItem, ItemID: item} }
func Wait() Command                  { return Command{Type: ActionWait} }

func (c Command) String() string {
	switch c.Type {
	case ActionMove:
		return "MOVE " + c.Direction.String()
	case ActionAttack:
		return "ATTACK " + c.TargetID.String()
	case ActionUseItem:
		return "USE " + c.ItemID.String()
	}
	return c.Type.String()
}

// ValidatedAction - результат интерпретации команды: всё уже проверено
// против текущего состояния, резолверу остаётся только применить.
//
// Move в клетку с монстром превращается в Attack.
type ValidatedAction struct {
	Type   ActionType
	Actor  EntityID
	From   Position
	To     Position // для Move - клетка назначения
	Target EntityID // для Attack
	Item   EntityID // для UseItem
}
