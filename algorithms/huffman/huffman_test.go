package huffman

import (
	"math/rand"
	"testing"

	reference "github.com/icza/huffman"
	"github.com/stretchr/testify/require"
)

var textbook = map[byte]uint64{'A': 5, 'B': 9, 'C': 12, 'D': 13, 'E': 16, 'F': 45}

func countNodes(n *Node) (leaves, internal int) {
	if n.IsLeaf() {
		return 1, 0
	}
	l1, i1 := countNodes(n.Left())
	l2, i2 := countNodes(n.Right())
	return l1 + l2, i1 + i2 + 1
}

func TestBuildShape(t *testing.T) {
	var freq FrequencyTable
	freq['a'] = 3
	freq['b'] = 1

	root := Build(freq)
	leaves, internal := countNodes(root)
	require.Equal(t, Symbols, leaves)
	require.Equal(t, Symbols-1, internal)
	require.Equal(t, uint64(4), root.Freq())
	require.Len(t, Depths(root), Symbols)
}

func TestBuildEmptyTable(t *testing.T) {
	var freq FrequencyTable
	root := Build(freq)
	require.Equal(t, uint64(0), root.Freq())
	leaves, _ := countNodes(root)
	require.Equal(t, Symbols, leaves)
	for _, d := range Depths(root) {
		require.GreaterOrEqual(t, d, 1)
	}
}

func TestBuildSymbolsTextbook(t *testing.T) {
	root, err := BuildSymbols(textbook)
	require.NoError(t, err)
	require.Equal(t, uint64(224), WeightedLength(root))
	require.Equal(t, uint64(100), root.Freq())

	depths := Depths(root)
	require.Equal(t, 1, depths['F'])
	require.Equal(t, 4, depths['A'])
	require.Equal(t, 4, depths['B'])
}

func TestBuildFullAlphabetTextbook(t *testing.T) {
	var freq FrequencyTable
	for sym, c := range textbook {
		freq[sym] = c
	}
	root := Build(freq)
	// the zero-weight subtree has to pair with 'A', one level deeper than in the six-symbol tree
	require.Equal(t, uint64(229), WeightedLength(root))
	require.Equal(t, WeightedLength(root), Generate(root).Weighted(freq))
}

func TestBuildSymbolsTooFew(t *testing.T) {
	_, err := BuildSymbols(map[byte]uint64{'x': 10})
	require.ErrorIs(t, err, ErrTooFewSymbols)
	_, err = BuildSymbols(nil)
	require.ErrorIs(t, err, ErrTooFewSymbols)
}

// referenceCost 带权路径长度等于所有内部节点权重之和
func referenceCost(freq FrequencyTable) uint64 {
	leaves := make([]*reference.Node, 0, Symbols)
	for sym, c := range freq {
		leaves = append(leaves, &reference.Node{Value: reference.ValueType(sym), Count: int(c)})
	}
	// Build 会改写传入的切片
	root := reference.Build(append([]*reference.Node(nil), leaves...))

	var internal func(n *reference.Node) uint64
	internal = func(n *reference.Node) uint64 {
		if n == nil || n.Left == nil && n.Right == nil {
			return 0
		}
		return uint64(n.Count) + internal(n.Left) + internal(n.Right)
	}
	return internal(root)
}

func TestReferenceCostTextbook(t *testing.T) {
	var freq FrequencyTable
	for sym, c := range textbook {
		freq[sym] = c
	}
	require.Equal(t, uint64(229), referenceCost(freq))
}

func TestBuildOptimalAgainstReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		var freq FrequencyTable
		for i := range freq {
			if rnd.Intn(4) != 0 {
				freq[i] = uint64(1 + rnd.Intn(1000))
			}
		}
		root := Build(freq)
		require.Equal(t, referenceCost(freq), WeightedLength(root), "round %d", round)
	}
}

func TestBuildDeterministic(t *testing.T) {
	var freq FrequencyTable
	for i := range freq {
		freq[i] = uint64(i % 7)
	}
	require.Equal(t, Generate(Build(freq)), Generate(Build(freq)))
}
