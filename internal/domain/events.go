package domain

import "strings"

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventMoved
	EventBlocked
	EventAttackResolved
	EventItemPickedUp
	EventItemUsed
	EventLevelCleared
	EventPlayerDied
	EventRejected
	EventEffectExpired
)

// Маппинг для конвертации JSON -> Domain
var eventStringToCmd = map[string]EventType{
	"MOVED":           EventMoved,
	"BLOCKED":         EventBlocked,
	"ATTACK_RESOLVED": EventAttackResolved,
	"ITEM_PICKED_UP":  EventItemPickedUp,
	"ITEM_USED":       EventItemUsed,
	"LEVEL_CLEARED":   EventLevelCleared,
	"PLAYER_DIED":     EventPlayerDied,
	"REJECTED":        EventRejected,
	"EFFECT_EXPIRED":  EventEffectExpired,
}

// Маппинг для логов Domain -> String
var eventCmdToString = map[EventType]string{
	EventMoved:          "MOVED",
	EventBlocked:        "BLOCKED",
	EventAttackResolved: "ATTACK_RESOLVED",
	EventItemPickedUp:   "ITEM_PICKED_UP",
	EventItemUsed:       "ITEM_USED",
	EventLevelCleared:   "LEVEL_CLEARED",
	EventPlayerDied:     "PLAYER_DIED",
	EventRejected:       "REJECTED",
	EventEffectExpired:  "EFFECT_EXPIRED",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToCmd[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

func (a EventType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Event - одна запись журнала хода. Заполнены только поля, относящиеся к типу:
//
//	Moved           Actor, From, To
//	Blocked         Actor, From, To, Reason
//	AttackResolved  Actor (атакующий), Target, Damage, TargetHP, TargetDied
//	ItemPickedUp    Actor, Item, To
//	ItemUsed        Actor, Item, Amount
//	LevelCleared    -
//	PlayerDied      Target (игрок), Actor (убийца)
//	Rejected        Actor, Reason
//	EffectExpired   Actor, Item (0), Reason (тип эффекта)
type Event struct {
	Type   EventType `json:"type"`
	Turn   int       `json:"turn"`
	Actor  EntityID  `json:"actor,omitempty"`
	Target EntityID  `json:"target,omitempty"`
	Item   EntityID  `json:"item,omitempty"`

	From Position `json:"from"`
	To   Position `json:"to"`

	Damage     int  `json:"damage,omitempty"`
	TargetHP   int  `json:"targetHp,omitempty"`
	TargetDied bool `json:"targetDied,omitempty"`
	Amount     int  `json:"amount,omitempty"`

	Reason string `json:"reason,omitempty"`
}
