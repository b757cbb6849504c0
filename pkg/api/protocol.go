package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MessageSnapshot = "SNAPSHOT"
	MessageError    = "ERROR"
)

// Коды ошибок для клиента
const (
	CodeRejected    = "REJECTED"
	CodeSessionOver = "SESSION_OVER"
	CodeGeneration  = "GENERATION"
	CodeInvariant   = "INVARIANT"
	CodeBadRequest  = "BAD_REQUEST"
	CodeNoSession   = "NO_SESSION"
)

// ServerMessage это корневой объект, который сервер отправляет клиенту.
// На каждую команду клиента приходит ровно один ответ.
type ServerMessage struct {
	// Type - SNAPSHOT или ERROR.
	Type string `json:"type"`

	// Snapshot присутствует всегда, когда сессия существует (в том числе вместе с ошибкой
	// отклонённой команды: клиент получает событие BLOCKED/REJECTED для анимации).
	Snapshot *Snapshot `json:"snapshot,omitempty"`

	Error *ErrorView `json:"error,omitempty"`
}

// ErrorView - описание ошибки
type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Snapshot это неизменяемый "снимок" сессии после команды.
type Snapshot struct {
	SessionID    string `json:"sessionId,omitempty"`
	Phase        string `json:"phase"` // EXPLORING, COMBAT, GAME_OVER, VICTORY
	Turn         int    `json:"turn"`
	Level        int    `json:"level"`
	Seed         int64  `json:"seed"`
	WinCondition string `json:"winCondition"`
	PlayerID     string `json:"playerId"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Map все тайлы карты в порядке строк. Туман войны - флаги IsVisible/IsExplored.
	Map []TileView `json:"map"`

	// Entities все сущности на карте (предметы в инвентаре не входят).
	Entities []EntityView `json:"entities"`

	// Events события последнего хода, по порядку.
	Events []EventView `json:"events"`

	// Logs человекочитаемый лог последнего хода.
	Logs []LogEntry `json:"logs"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Terrain - wall, floor, door, stair_down
	Terrain string `json:"terrain"`

	// Symbol и Color - визуальное представление тайла (e.g. "#" для стены).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден.
	// Если IsVisible=false, а IsExplored=true, рендерится тускло.
	IsExplored bool `json:"isExplored"`
}

// PositionView - координаты клетки
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // PLAYER, MONSTER, ITEM
	Name string `json:"name"`

	// Monster - вид монстра (RAT, GOBLIN, ...). Только для монстров.
	Monster string `json:"monster,omitempty"`

	Pos PositionView `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// IsVisible - сущность в поле зрения игрока.
	IsVisible bool `json:"isVisible"`

	Stats *StatsView `json:"stats,omitempty"`

	// Inventory только у игрока
	Inventory *InventoryView `json:"inventory,omitempty"`

	// Item свойства предмета (для предметов на полу)
	Item *ItemView `json:"item,omitempty"`
}

// StatsView это DTO для характеристик сущности.
type StatsView struct {
	HP      int          `json:"hp"`
	MaxHP   int          `json:"maxHp"`
	Attack  int          `json:"attack"`
	Defense int          `json:"defense"`
	Effects []EffectView `json:"effects,omitempty"`
}

// EffectView - активный бафф
type EffectView struct {
	Effect         string `json:"effect"`
	Amount         int    `json:"amount"`
	RemainingTurns int    `json:"remainingTurns"`
}

// ItemView представляет предмет для клиента
type ItemView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Color    string `json:"color"`
	Effect   string `json:"effect"`
	Value    int    `json:"value"`
	Duration int    `json:"duration,omitempty"`
}

// InventoryView представляет инвентарь для клиента
type InventoryView struct {
	Items    []ItemView `json:"items"`
	MaxSlots int        `json:"maxSlots"`
}

// EventView - одно событие хода
type EventView struct {
	Type       string        `json:"type"`
	Turn       int           `json:"turn"`
	Actor      string        `json:"actor,omitempty"`
	Target     string        `json:"target,omitempty"`
	Item       string        `json:"item,omitempty"`
	From       *PositionView `json:"from,omitempty"`
	To         *PositionView `json:"to,omitempty"`
	Damage     int           `json:"damage,omitempty"`
	TargetHP   int           `json:"targetHp,omitempty"`
	TargetDied bool          `json:"targetDied,omitempty"`
	Amount     int           `json:"amount,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, ERROR
}

// --- КЛИЕНТ -> СЕРВЕР ---

// Действия клиента
const (
	ActionNew    = "NEW"
	ActionMove   = "MOVE"
	ActionAttack = "ATTACK"
	ActionUse    = "USE"
	ActionWait   = "WAIT"
)

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// NewGamePayload - параметры новой сессии. Пустые поля берутся из конфига сервера.
type NewGamePayload struct {
	Seed         *int64 `json:"seed,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Level        int    `json:"level,omitempty"`
	WinCondition string `json:"winCondition,omitempty"`
}

// DirectionPayload используется для MOVE: N, NE, E, SE, S, SW, W, NW.
type DirectionPayload struct {
	Direction string `json:"direction"`
}

// EntityPayload используется для действий, нацеленных на другую сущность (ATTACK).
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// ItemPayload используется для действий с предметами (USE).
type ItemPayload struct {
	ItemID string `json:"itemId"`
}
