package routing

import "github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"

// frontierEntry is one priority-queue entry: the state pushed is (node,
// arrival trip tag) even though the best-g table Router keeps is indexed
// by node alone. The trip tag rides along on the queue entry so a
// transfer penalty can still be charged without doubling the state space.
type frontierEntry struct {
	node        graph.NodeID
	gScore      float64
	fScore      float64
	arrivalTrip string
}

// minHeap is a binary min-heap of frontierEntry keyed by fScore, with the
// standard insert/heapify-up, extract-min/heapify-down shape, specialized
// to this one concrete value type since the router never heaps anything
// else.
type minHeap struct {
	items []frontierEntry
}

func newMinHeap() *minHeap {
	return &minHeap{items: make([]frontierEntry, 0)}
}

func (h *minHeap) isEmpty() bool {
	return len(h.items) == 0
}

func parentIdx(i int) int { return (i - 1) / 2 }

func (h *minHeap) heapifyUp(i int) {
	for i != 0 && h.items[i].fScore < h.items[parentIdx(i)].fScore {
		p := parentIdx(i)
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *minHeap) heapifyDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.items[left].fScore < h.items[smallest].fScore {
			smallest = left
		}
		if right < n && h.items[right].fScore < h.items[smallest].fScore {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

func (h *minHeap) push(e frontierEntry) {
	h.items = append(h.items, e)
	h.heapifyUp(len(h.items) - 1)
}

func (h *minHeap) pop() (frontierEntry, bool) {
	if h.isEmpty() {
		return frontierEntry{}, false
	}
	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.heapifyDown(0)
	}
	return root, true
}
