package systems

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// --- PICKUP ---

// TryPickup подбирает всё, что лежит под ногами, пока есть место.
// Если инвентарь полон, предмет остаётся на полу. Возвращает подобранные ID.
func TryPickup(actor *domain.Entity, reg *domain.Registry) []domain.EntityID {
	if actor.Inventory == nil {
		return nil
	}

	var picked []domain.EntityID
	for _, item := range reg.ItemsAt(actor.Pos) {
		if actor.Inventory.IsFull() {
			logger.WithComponent("inventory_system").
				WithField("item_id", item.ID).
				Debug("Inventory full, item left on the floor.")
			break
		}
		if err := reg.PickUp(actor.ID, item.ID); err != nil {
			continue
		}
		picked = append(picked, item.ID)
	}
	return picked
}

// --- USE (Consumables) ---

// ValidateItem проверяет, что эффект предмета известен и корректен.
func ValidateItem(item *domain.Entity) error {
	if item == nil || item.Item == nil {
		return fmt.Errorf("not an item: %w", domain.ErrInvalidItem)
	}
	props := item.Item
	switch props.Effect {
	case domain.EffectHeal, domain.EffectAttackBuff, domain.EffectDefenseBuff:
	default:
		return fmt.Errorf("%s: unknown effect %v: %w", item.Name, props.Effect, domain.ErrInvalidItem)
	}
	if props.Value <= 0 {
		return fmt.Errorf("%s: effect value %d: %w", item.Name, props.Value, domain.ErrInvalidItem)
	}
	if props.Effect.IsTimed() && props.Duration <= 0 {
		return fmt.Errorf("%s: buff without duration: %w", item.Name, domain.ErrInvalidItem)
	}
	return nil
}

// ApplyItem применяет эффект к actor. Расход предмета - забота резолвера.
// Возвращает величину эффекта (сколько вылечено или размер баффа).
func ApplyItem(actor, item *domain.Entity) (int, error) {
	if err := ValidateItem(item); err != nil {
		return 0, err
	}
	if actor.Stats == nil {
		return 0, fmt.Errorf("%s has no stats: %w", actor.Name, domain.ErrInvalidTarget)
	}

	props := item.Item
	amount := props.Value
	switch props.Effect {
	case domain.EffectHeal:
		amount = actor.Stats.Heal(props.Value)
	case domain.EffectAttackBuff, domain.EffectDefenseBuff:
		actor.Stats.AddEffect(domain.StatusEffect{
			Effect:         props.Effect,
			Amount:         props.Value,
			RemainingTurns: props.Duration,
		})
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor_id":  actor.ID,
		"item_id":   item.ID,
		"effect":    props.Effect.String(),
		"amount":    amount,
	}).Info("Item used.")

	return amount, nil
}

// TickEffects отсчитывает ход всем баффам сущности.
func TickEffects(e *domain.Entity) []domain.StatusEffect {
	if e.Stats == nil {
		return nil
	}
	return e.Stats.TickEffects()
}
