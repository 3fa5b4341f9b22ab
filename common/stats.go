package common

import (
	"math"

	"huffcodec/algorithms/huffman"
)

// CodeStats 编码表相对于频率表的统计信息
type CodeStats struct {
	Total         uint64  `json:"total"`           // 符号总数
	UniqueCount   int     `json:"unique_count"`    // 出现过的符号数
	Entropy       float64 `json:"entropy"`         // 信息熵（比特/符号）
	AvgCodeLength float64 `json:"avg_code_length"` // 平均码长（比特/符号）
	MinCodeLength int     `json:"min_code_length"` // 出现过的符号中的最短码长
	MaxCodeLength int     `json:"max_code_length"` // 出现过的符号中的最长码长
	Efficiency    float64 `json:"efficiency"`      // 熵 / 平均码长
}

// Entropy 计算频率表的香农熵
func Entropy(freq huffman.FrequencyTable) float64 {
	total := freq.Total()
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range freq {
		if count > 0 {
			p := float64(count) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// AnalyzeCodes 统计编码表在给定频率下的表现
func AnalyzeCodes(freq huffman.FrequencyTable, codes huffman.CodeTable) *CodeStats {
	stats := &CodeStats{
		Total:         freq.Total(),
		Entropy:       Entropy(freq),
		MinCodeLength: math.MaxInt,
	}
	for sym, count := range freq {
		if count == 0 {
			continue
		}
		stats.UniqueCount++
		l := len(codes[byte(sym)])
		stats.MinCodeLength = min(stats.MinCodeLength, l)
		stats.MaxCodeLength = max(stats.MaxCodeLength, l)
	}
	if stats.UniqueCount == 0 {
		stats.MinCodeLength = 0
		return stats
	}

	stats.AvgCodeLength = float64(codes.Weighted(freq)) / float64(stats.Total)
	if stats.AvgCodeLength > 0 {
		stats.Efficiency = stats.Entropy / stats.AvgCodeLength
	}
	return stats
}
