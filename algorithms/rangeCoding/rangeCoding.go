package rangeCoding

import (
	"errors"
	"fmt"
	"sort"

	"huffcodec/algorithms/huffman"
	"huffcodec/algorithms/simple8b"
	"huffcodec/common"
)

const (
	precision = 32
	top       = uint64(1)<<precision - 1
	quarter   = top/4 + 1
	half      = quarter * 2
	threeQtr  = quarter * 3

	// maxInput 平滑后的总频率必须小于 quarter
	maxInput = int(quarter) - huffman.Symbols - 1
)

var ErrCorrupt = errors.New("rangeCoding: corrupt stream")

// model 静态零阶模型，每个符号频率加一避免零概率
type model struct {
	cum   [huffman.Symbols + 1]uint32
	total uint32
}

func newModel(freq *huffman.FrequencyTable) *model {
	m := &model{}
	for i, c := range freq {
		m.cum[i+1] = m.cum[i] + uint32(c) + 1
	}
	m.total = m.cum[huffman.Symbols]
	return m
}

// lookup 找到累计区间包含 v 的符号
func (m *model) lookup(v uint32) int {
	return sort.Search(huffman.Symbols, func(i int) bool { return m.cum[i+1] > v })
}

type encoder struct {
	low, high uint64
	pending   int
	acc       byte
	nacc      uint8
	out       []byte
}

func (e *encoder) encode(m *model, sym byte) {
	span := e.high - e.low + 1
	e.high = e.low + span*uint64(m.cum[int(sym)+1])/uint64(m.total) - 1
	e.low += span * uint64(m.cum[sym]) / uint64(m.total)

	for {
		switch {
		case e.high < half:
			e.emit(0)
		case e.low >= half:
			e.emit(1)
			e.low -= half
			e.high -= half
		case e.low >= quarter && e.high < threeQtr:
			e.pending++
			e.low -= quarter
			e.high -= quarter
		default:
			return
		}
		e.low <<= 1
		e.high = e.high<<1 | 1
	}
}

// emit 写出一位，再写出 pending 个相反位
func (e *encoder) emit(bit byte) {
	e.put(bit)
	for ; e.pending > 0; e.pending-- {
		e.put(bit ^ 1)
	}
}

func (e *encoder) put(bit byte) {
	e.acc = e.acc<<1 | bit
	e.nacc++
	if e.nacc == 8 {
		e.out = append(e.out, e.acc)
		e.acc, e.nacc = 0, 0
	}
}

func (e *encoder) finish() []byte {
	e.pending++
	if e.low < quarter {
		e.emit(0)
	} else {
		e.emit(1)
	}
	if e.nacc > 0 {
		e.out = append(e.out, e.acc<<(8-e.nacc))
	}
	return e.out
}

type decoder struct {
	low, high, code uint64
	in              []byte
	pos             int
}

func newDecoder(in []byte) *decoder {
	d := &decoder{high: top, in: in}
	for i := 0; i < precision; i++ {
		d.code = d.code<<1 | d.next()
	}
	return d
}

// next 读取下一位，超出输入后补 0
func (d *decoder) next() uint64 {
	i := d.pos >> 3
	shift := 7 - d.pos&7
	d.pos++
	if i >= len(d.in) {
		return 0
	}
	return uint64(d.in[i]>>shift) & 1
}

func (d *decoder) decode(m *model) byte {
	span := d.high - d.low + 1
	v := uint32(((d.code-d.low+1)*uint64(m.total) - 1) / span)
	sym := m.lookup(v)
	d.high = d.low + span*uint64(m.cum[sym+1])/uint64(m.total) - 1
	d.low += span * uint64(m.cum[sym]) / uint64(m.total)

	for {
		switch {
		case d.high < half:
		case d.low >= half:
			d.low -= half
			d.high -= half
			d.code -= half
		case d.low >= quarter && d.high < threeQtr:
			d.low -= quarter
			d.high -= quarter
			d.code -= quarter
		default:
			return byte(sym)
		}
		d.low <<= 1
		d.high = d.high<<1 | 1
		d.code = d.code<<1 | d.next()
	}
}

// CompressBytes 范围编码 src 并追加到 dst
// 格式: 原始长度 | 频率字数 | simple8b 频率表 | 编码位流
func CompressBytes(dst []byte, src []byte) ([]byte, error) {
	if len(src) > maxInput {
		return dst, fmt.Errorf("rangeCoding: input too large (%d bytes)", len(src))
	}
	freq := common.CountBytes(src)
	counts, err := simple8b.Compress(nil, freq[:])
	if err != nil {
		return dst, fmt.Errorf("rangeCoding: %w", err)
	}
	dst = common.Append64(dst, uint64(len(src)))
	dst = common.Append64(dst, uint64(len(counts)/8))
	dst = append(dst, counts...)

	m := newModel(&freq)
	e := &encoder{high: top}
	for _, c := range src {
		e.encode(m, c)
	}
	return append(dst, e.finish()...), nil
}

// DecompressBytes 还原 CompressBytes 的输出并追加到 dst
func DecompressBytes(dst []byte, src []byte) ([]byte, error) {
	size, i, err := common.Get64(src, 0)
	if err != nil {
		return dst, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	nwords, i, err := common.Get64(src, i)
	if err != nil {
		return dst, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if nwords > uint64(len(src)-i)/8 || size > uint64(maxInput) {
		return dst, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	end := i + int(nwords)*8
	counts, err := simple8b.Decompress(nil, src[i:end])
	if err != nil {
		return dst, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(counts) != huffman.Symbols {
		return dst, fmt.Errorf("%w: %d counts", ErrCorrupt, len(counts))
	}
	var freq huffman.FrequencyTable
	copy(freq[:], counts)
	if freq.Total() != size {
		return dst, fmt.Errorf("%w: counts sum to %d, size is %d", ErrCorrupt, freq.Total(), size)
	}

	m := newModel(&freq)
	d := newDecoder(src[end:])
	for n := uint64(0); n < size; n++ {
		dst = append(dst, d.decode(m))
	}
	return dst, nil
}
