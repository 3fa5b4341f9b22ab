package huffman

// Code 从根到叶子的路径，左为 '0' 右为 '1'
type Code string

// CodeTable 符号到编码的映射
type CodeTable map[byte]Code

// Generate 深度优先遍历树生成编码表
func Generate(root *Node) CodeTable {
	codes := make(CodeTable, Symbols)
	if root == nil {
		return codes
	}

	path := make([]byte, 0, Symbols)
	var generate func(*Node)
	generate = func(node *Node) {
		if node.IsLeaf() {
			// string 转换会复制，不共享 path 的底层数组
			codes[node.symbol] = Code(path)
			return
		}
		path = append(path, '0')
		generate(node.left)
		path[len(path)-1] = '1'
		generate(node.right)
		path = path[:len(path)-1]
	}

	generate(root)
	return codes
}

// Lengths 返回每个符号的编码长度
func (c CodeTable) Lengths() map[byte]int {
	lengths := make(map[byte]int, len(c))
	for sym, code := range c {
		lengths[sym] = len(code)
	}
	return lengths
}

// Weighted 按频率加权的编码总长度
func (c CodeTable) Weighted(freq FrequencyTable) uint64 {
	var total uint64
	for sym, code := range c {
		total += freq[sym] * uint64(len(code))
	}
	return total
}

// IsPrefixOf 判断 c 是否为 other 的前缀
func (c Code) IsPrefixOf(other Code) bool {
	return len(c) <= len(other) && other[:len(c)] == c
}
