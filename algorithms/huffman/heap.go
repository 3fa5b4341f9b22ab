package huffman

import "errors"

var (
	ErrInvalidCapacity = errors.New("heap capacity must be positive")
	ErrHeapFull        = errors.New("heap is full")
)

type heapEntry struct {
	node *Node
	seq  uint64
}

// MinHeap 按频率排序的数组二叉最小堆，频率相同时先插入者优先
type MinHeap struct {
	entries  []heapEntry
	capacity int
	next     uint64
}

// NewMinHeap 创建容量为 capacity 的空堆
func NewMinHeap(capacity int) (*MinHeap, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MinHeap{
		entries:  make([]heapEntry, 0, capacity),
		capacity: capacity,
	}, nil
}

func (h *MinHeap) Len() int { return len(h.entries) }

func (h *MinHeap) Cap() int { return h.capacity }

func (h *MinHeap) less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.node.freq != b.node.freq {
		return a.node.freq < b.node.freq
	}
	return a.seq < b.seq
}

func (h *MinHeap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

// Insert 插入节点并上浮，堆满时返回 ErrHeapFull 且不修改堆
func (h *MinHeap) Insert(n *Node) error {
	if len(h.entries) == h.capacity {
		return ErrHeapFull
	}
	h.entries = append(h.entries, heapEntry{node: n, seq: h.next})
	h.next++
	h.siftUp(len(h.entries) - 1)
	return nil
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

// ExtractMin 取出频率最小的节点，空堆返回 false
func (h *MinHeap) ExtractMin() (*Node, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}
	top := h.entries[0].node
	last := len(h.entries) - 1
	h.entries[0] = h.entries[last]
	h.entries[last] = heapEntry{}
	h.entries = h.entries[:last]
	h.siftDown(0)
	return top, true
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.entries)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}
