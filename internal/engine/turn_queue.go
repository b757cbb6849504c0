package engine

import (
	"container/heap"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// turnSlot - место одной сущности в очереди ходов.
type turnSlot struct {
	id    domain.EntityID
	index int // позиция в куче, -1 после извлечения
}

// turnHeap - min-heap по EntityID. Младший ID ходит раньше, поэтому
// монстры одного уровня ходят в порядке появления.
type turnHeap []*turnSlot

func (h turnHeap) Len() int           { return len(h) }
func (h turnHeap) Less(i, j int) bool { return h[i].id < h[j].id }

func (h turnHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}

func (h *turnHeap) Push(x any) {
	s := x.(*turnSlot)
	s.index = len(*h)
	*h = append(*h, s)
}

func (h *turnHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	old[len(old)-1] = nil
	last.index = -1
	*h = old[:len(old)-1]
	return last
}

// drain отдаёт ID в порядке ходов. Разбирается копия, сама куча не меняется.
func (h turnHeap) drain() []domain.EntityID {
	// копия валидной кучи - тоже куча, heap.Init не нужен
	scratch := make(turnHeap, len(h))
	for i, s := range h {
		scratch[i] = &turnSlot{id: s.id, index: i}
	}

	out := make([]domain.EntityID, 0, len(h))
	for scratch.Len() > 0 {
		out = append(out, heap.Pop(&scratch).(*turnSlot).id)
	}
	return out
}
