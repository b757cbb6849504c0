package systems

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AttackResult - итог одного удара
type AttackResult struct {
	Damage   int
	TargetHP int
	Died     bool
}

// CalculateDamage: атака минус защита, но не меньше MinDamage.
func CalculateDamage(attack, defense int) int {
	return max(attack-defense, domain.MinDamage)
}

// ApplyAttack наносит удар с учётом баффов. Из реестра не удаляет:
// это делает резолвер по флагу Died.
func ApplyAttack(attacker, target *domain.Entity) AttackResult {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
	})

	if target.Stats == nil || !target.IsAlive() {
		combatLogger.Warn("Attack ignored: target has no body or is already dead.")
		return AttackResult{}
	}

	attack := domain.MinDamage
	if attacker.Stats != nil {
		attack = attacker.Stats.EffectiveAttack()
	}
	defense := target.Stats.EffectiveDefense()
	damage := CalculateDamage(attack, defense)

	hpBefore := target.Stats.HP
	died := target.Stats.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"attack":      attack,
		"defense":     defense,
		"damage":      damage,
		"hp_before":   hpBefore,
		"hp_after":    target.Stats.HP,
		"target_died": died,
	}).Info("Attack resolved.")

	return AttackResult{Damage: damage, TargetHP: target.Stats.HP, Died: died}
}
