package huffman

import (
	"errors"
	"fmt"
)

// Symbols 字母表大小，每个字节值一个符号
const Symbols = 256

var ErrTooFewSymbols = errors.New("need at least two symbols to build a tree")

// FrequencyTable 以字节值为下标的频率表
type FrequencyTable [Symbols]uint64

// Total 返回所有符号的频率之和
func (f *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, c := range f {
		sum += c
	}
	return sum
}

// Node 表示Huffman树的节点，构建完成后不可修改
// 叶子节点持有符号，内部节点持有两个子节点且频率为两者之和
type Node struct {
	symbol byte
	freq   uint64
	left   *Node
	right  *Node
}

func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

func (n *Node) Symbol() byte { return n.symbol }

func (n *Node) Freq() uint64 { return n.freq }

func (n *Node) Left() *Node { return n.left }

func (n *Node) Right() *Node { return n.right }

// Build 构建覆盖全部256个符号的Huffman树，频率为0的符号同样参与构建
func Build(freq FrequencyTable) *Node {
	leaves := make([]*Node, Symbols)
	for i := range leaves {
		leaves[i] = &Node{symbol: byte(i), freq: freq[i]}
	}
	root, err := merge(leaves)
	if err != nil {
		panic(fmt.Sprintf("huffman: building tree over %d symbols: %v", Symbols, err))
	}
	return root
}

// BuildSymbols 只对给定的符号构建Huffman树，符号按升序入堆
func BuildSymbols(freq map[byte]uint64) (*Node, error) {
	if len(freq) < 2 {
		return nil, ErrTooFewSymbols
	}
	leaves := make([]*Node, 0, len(freq))
	for i := 0; i < Symbols; i++ {
		if c, ok := freq[byte(i)]; ok {
			leaves = append(leaves, &Node{symbol: byte(i), freq: c})
		}
	}
	return merge(leaves)
}

// merge 反复取出两个最小节点合并，直到只剩根节点
func merge(leaves []*Node) (*Node, error) {
	h, err := NewMinHeap(len(leaves))
	if err != nil {
		return nil, err
	}
	for _, leaf := range leaves {
		if err := h.Insert(leaf); err != nil {
			return nil, err
		}
	}

	for i := 0; i < len(leaves)-1; i++ {
		a, ok := h.ExtractMin()
		if !ok {
			return nil, fmt.Errorf("merge %d: heap drained early", i)
		}
		b, ok := h.ExtractMin()
		if !ok {
			return nil, fmt.Errorf("merge %d: heap drained early", i)
		}
		parent := &Node{freq: a.freq + b.freq, left: a, right: b}
		if err := h.Insert(parent); err != nil {
			return nil, fmt.Errorf("merge %d: %w", i, err)
		}
	}

	root, ok := h.ExtractMin()
	if !ok || h.Len() != 0 {
		return nil, fmt.Errorf("expected exactly one root, heap has %d nodes left", h.Len())
	}
	return root, nil
}

// Depths 返回每个叶子符号的深度
func Depths(root *Node) map[byte]int {
	depths := make(map[byte]int)
	var walk func(*Node, int)
	walk = func(n *Node, depth int) {
		if n.IsLeaf() {
			depths[n.symbol] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if root != nil {
		walk(root, 0)
	}
	return depths
}

// WeightedLength 计算 Σ freq(leaf) × depth(leaf)，即编码后的总比特数
func WeightedLength(root *Node) uint64 {
	var total uint64
	var walk func(*Node, uint64)
	walk = func(n *Node, depth uint64) {
		if n.IsLeaf() {
			total += n.freq * depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if root != nil {
		walk(root, 0)
	}
	return total
}
