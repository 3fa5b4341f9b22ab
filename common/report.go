package common

import (
	"fmt"
	"io"
)

// Report 压缩结果统计
// CompressedBytes 沿用 "比特数/8" 的口径，实际的 '0'/'1' 字符流大小见 InterchangeBytes
type Report struct {
	OriginalBytes int64 `json:"original_bytes"`
	EncodedBits   int64 `json:"encoded_bits"`
}

func (r Report) CompressedBytes() int64 { return r.EncodedBits / 8 }

func (r Report) InterchangeBytes() int64 { return r.EncodedBits }

// Ratio 返回压缩率百分比，原始大小为0时不适用
func (r Report) Ratio() (float64, bool) {
	if r.OriginalBytes == 0 {
		return 0, false
	}
	return float64(r.OriginalBytes-r.CompressedBytes()) / float64(r.OriginalBytes) * 100, true
}

func (r Report) RatioString() string {
	ratio, ok := r.Ratio()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", ratio)
}

// WriteTo 输出原始大小、压缩大小和压缩率
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"# of bytes of the original text = %d\n"+
			"# of bytes of the compressed text = %d\n"+
			"# of bytes of the encoded file = %d\n"+
			"compression ratio = %s\n",
		r.OriginalBytes, r.CompressedBytes(), r.InterchangeBytes(), r.RatioString())
	return int64(n), err
}
