package domain

// TakeDamage наносит урон. Здоровье не уходит ниже нуля.
// Возвращает true, если цель погибла именно от этого удара.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.HP <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount
	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// Heal лечит и возвращает реально восстановленное количество.
func (s *StatsComponent) Heal(amount int) int {
	if s.HP <= 0 || amount <= 0 {
		return 0 // Не лечим трупы! Нет некромантии!
	}
	before := s.HP
	s.HP = min(s.HP+amount, s.MaxHP)
	return s.HP - before
}

// EffectiveAttack - атака с учётом баффов.
func (s *StatsComponent) EffectiveAttack() int {
	return s.Attack + s.bonus(EffectAttackBuff)
}

// EffectiveDefense - защита с учётом баффов.
func (s *StatsComponent) EffectiveDefense() int {
	return s.Defense + s.bonus(EffectDefenseBuff)
}

func (s *StatsComponent) bonus(effect ItemEffect) int {
	total := 0
	for _, e := range s.Effects {
		if e.Effect == effect {
			total += e.Amount
		}
	}
	return total
}

// AddEffect вешает бафф. Повторный бафф того же типа продлевает срок,
// бонус берётся больший.
func (s *StatsComponent) AddEffect(effect StatusEffect) {
	for i := range s.Effects {
		if s.Effects[i].Effect == effect.Effect {
			s.Effects[i].Amount = max(s.Effects[i].Amount, effect.Amount)
			s.Effects[i].RemainingTurns = max(s.Effects[i].RemainingTurns, effect.RemainingTurns)
			return
		}
	}
	s.Effects = append(s.Effects, effect)
}

// TickEffects уменьшает счётчики и снимает истёкшие баффы.
// Возвращает снятые эффекты.
func (s *StatsComponent) TickEffects() []StatusEffect {
	if len(s.Effects) == 0 {
		return nil
	}
	var expired []StatusEffect
	kept := s.Effects[:0]
	for _, e := range s.Effects {
		e.RemainingTurns--
		if e.RemainingTurns <= 0 {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	s.Effects = kept
	return expired
}
