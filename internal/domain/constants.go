package domain

// Параметры восприятия
const (
	VisionRadius = 8
)

// Инвентарь
const (
	InventorySlots = 10
)

// Базовые характеристики игрока
const (
	PlayerMaxHP   = 30
	PlayerAttack  = 5
	PlayerDefense = 2
)

// Минимальный урон за удар. Бой всегда продвигается.
const MinDamage = 1
