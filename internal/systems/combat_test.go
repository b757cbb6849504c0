package systems

import (
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		attack, defense, want int
	}{
		{5, 2, 3},
		{2, 2, 1},
		{1, 9, 1},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := CalculateDamage(tt.attack, tt.defense); got != tt.want {
			t.Errorf("CalculateDamage(%d, %d) = %d, want %d", tt.attack, tt.defense, got, tt.want)
		}
	}
}

func TestApplyAttack(t *testing.T) {
	attacker := &domain.Entity{
		Name:  "Hero",
		Stats: &domain.StatsComponent{HP: 10, MaxHP: 10, Attack: 5},
	}
	target := &domain.Entity{
		Name:  "Ork",
		Stats: &domain.StatsComponent{HP: 4, MaxHP: 4, Defense: 2},
	}

	res := ApplyAttack(attacker, target)
	if res.Damage != 3 || target.Stats.HP != 1 || res.Died {
		t.Fatalf("first hit: %+v, hp %d", res, target.Stats.HP)
	}

	// Kill shot: здоровье не уходит в минус
	res = ApplyAttack(attacker, target)
	if !res.Died || target.Stats.HP != 0 || res.TargetHP != 0 {
		t.Errorf("kill shot: %+v, hp %d", res, target.Stats.HP)
	}

	// По трупу урона нет
	if res := ApplyAttack(attacker, target); res.Damage != 0 {
		t.Errorf("dead target took damage: %+v", res)
	}
}

func TestApplyAttack_AlwaysProgresses(t *testing.T) {
	attacker := &domain.Entity{Stats: &domain.StatsComponent{HP: 1, Attack: 1}}
	target := &domain.Entity{Stats: &domain.StatsComponent{HP: 50, MaxHP: 50, Defense: 30}}

	for i := 0; i < 50; i++ {
		before := target.Stats.HP
		ApplyAttack(attacker, target)
		if target.Stats.HP >= before {
			t.Fatalf("hit %d did not reduce hp (%d -> %d)", i, before, target.Stats.HP)
		}
	}
	if target.IsAlive() {
		t.Error("50 hits of min damage should kill a 50 hp target")
	}
}

func TestApplyAttack_UsesBuffs(t *testing.T) {
	attacker := &domain.Entity{Stats: &domain.StatsComponent{HP: 1, Attack: 2}}
	attacker.Stats.AddEffect(domain.StatusEffect{Effect: domain.EffectAttackBuff, Amount: 3, RemainingTurns: 5})
	target := &domain.Entity{Stats: &domain.StatsComponent{HP: 20, MaxHP: 20, Defense: 1}}

	if res := ApplyAttack(attacker, target); res.Damage != 4 {
		t.Errorf("buffed damage = %d, want 4", res.Damage)
	}
}
