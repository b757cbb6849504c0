package engine

import (
	"container/heap"
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func monsterID(i uint64) domain.EntityID {
	return domain.PackEntityID(domain.KindMonster, 1, i)
}

func TestTurnHeap(t *testing.T) {
	h := make(turnHeap, 0)
	heap.Init(&h)

	for _, i := range []uint64{10, 5, 20} {
		heap.Push(&h, &turnSlot{id: monsterID(i)})
	}

	if h.Len() != 3 {
		t.Errorf("Expected length 3, got %d", h.Len())
	}

	// drain не расходует кучу
	if got := h.drain(); len(got) != 3 || got[0].Index() != 5 || h.Len() != 3 {
		t.Errorf("drain() = %v, heap len %d", got, h.Len())
	}

	want := []uint64{5, 10, 20}
	for _, w := range want {
		slot := heap.Pop(&h).(*turnSlot)
		if slot.id.Index() != w {
			t.Errorf("Expected index %d, got %d", w, slot.id.Index())
		}
		if slot.index != -1 {
			t.Errorf("Popped slot keeps heap index %d", slot.index)
		}
	}
}

func TestTurnManager_Order(t *testing.T) {
	tm := NewTurnManager()
	for _, i := range []uint64{3, 1, 4, 2} {
		tm.AddEntity(&domain.Entity{ID: monsterID(i), Kind: domain.KindMonster, AI: &domain.AIComponent{}})
	}
	// Без AI в очередь не попадает
	tm.AddEntity(&domain.Entity{ID: domain.PackEntityID(domain.KindPlayer, 1, 1), Kind: domain.KindPlayer})
	// Повторное добавление игнорируется
	tm.AddEntity(&domain.Entity{ID: monsterID(1), Kind: domain.KindMonster, AI: &domain.AIComponent{}})

	if tm.Len() != 4 {
		t.Fatalf("Len = %d, want 4", tm.Len())
	}

	tests := []struct {
		name   string
		remove []uint64
		want   []uint64
	}{
		{"initial order ascending", nil, []uint64{1, 2, 3, 4}},
		{"order is not consumed", nil, []uint64{1, 2, 3, 4}},
		{"removed entity skipped", []uint64{2}, []uint64{1, 3, 4}},
		{"remove unknown is a no-op", []uint64{99}, []uint64{1, 3, 4}},
		{"remove head", []uint64{1}, []uint64{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, i := range tt.remove {
				tm.RemoveEntity(monsterID(i))
			}
			got := tm.Order()
			if len(got) != len(tt.want) {
				t.Fatalf("Order() = %v, want indexes %v", got, tt.want)
			}
			for i, id := range got {
				if id.Index() != tt.want[i] {
					t.Errorf("Order()[%d] = %v, want index %d", i, id, tt.want[i])
				}
			}
		})
	}

	if dump := tm.DebugDump(); len(dump) != 2 {
		t.Errorf("DebugDump has %d rows, want 2", len(dump))
	}
}
