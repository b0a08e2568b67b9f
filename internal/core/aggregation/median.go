package aggregation

import (
	"container/heap"

	"github.com/shopspring/decimal"
)

// medianTracker keeps the lower half of the values in a max-heap and the
// upper half in a min-heap. low holds either the same number of values as
// high or exactly one more, so the median is always at the heap tops.
type medianTracker struct {
	low  maxHeap
	high minHeap
}

func (m *medianTracker) push(v int64) {
	if m.low.Len() == 0 || v <= m.low[0] {
		heap.Push(&m.low, v)
	} else {
		heap.Push(&m.high, v)
	}

	switch {
	case m.low.Len() > m.high.Len()+1:
		heap.Push(&m.high, heap.Pop(&m.low))
	case m.high.Len() > m.low.Len():
		heap.Push(&m.low, heap.Pop(&m.high))
	}
}

func (m *medianTracker) value() decimal.Decimal {
	if m.low.Len() == 0 {
		return decimal.Zero
	}
	if m.low.Len() > m.high.Len() {
		return decimal.NewFromInt(m.low[0])
	}
	return meanOfTwo(m.low[0], m.high[0])
}

type minHeap []int64

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	v := old[len(old)-1]
	*h = old[:len(old)-1]
	return v
}

type maxHeap []int64

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	v := old[len(old)-1]
	*h = old[:len(old)-1]
	return v
}
