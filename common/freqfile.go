package common

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"huffcodec/algorithms/huffman"
	"huffcodec/algorithms/simple8b"
)

var (
	ErrBadFreqFile = errors.New("not a frequency file")
	ErrChecksum    = errors.New("checksum mismatch")
)

const freqMagic = "HFT1"

// FreqFile 编码流旁的频率表文件，解码端据此重建同一棵树
// 格式: "HFT1" | 原始字节数 | xxhash64 | 字数 | simple8b 字
type FreqFile struct {
	Freq     huffman.FrequencyTable
	Size     int64
	Checksum uint64
}

// NewFreqFile 统计 r 的频率和校验和
func NewFreqFile(r io.Reader) (*FreqFile, error) {
	digest := xxhash.New()
	freq, size, err := CountFrequencies(io.TeeReader(r, digest))
	if err != nil {
		return nil, err
	}
	return &FreqFile{Freq: freq, Size: size, Checksum: digest.Sum64()}, nil
}

func (f *FreqFile) MarshalBinary() ([]byte, error) {
	packed, err := simple8b.Compress(nil, f.Freq[:])
	if err != nil {
		return nil, fmt.Errorf("pack frequencies: %w", err)
	}
	buf := make([]byte, 0, len(freqMagic)+24+len(packed))
	buf = append(buf, freqMagic...)
	buf = Append64(buf, uint64(f.Size))
	buf = Append64(buf, f.Checksum)
	buf = Append64(buf, uint64(len(packed)/8))
	return append(buf, packed...), nil
}

func (f *FreqFile) UnmarshalBinary(data []byte) error {
	if len(data) < len(freqMagic) || string(data[:len(freqMagic)]) != freqMagic {
		return ErrBadFreqFile
	}
	i := len(freqMagic)
	size, i, err := Get64(data, i)
	if err != nil {
		return fmt.Errorf("%w: size: %v", ErrBadFreqFile, err)
	}
	sum, i, err := Get64(data, i)
	if err != nil {
		return fmt.Errorf("%w: checksum: %v", ErrBadFreqFile, err)
	}
	nwords, i, err := Get64(data, i)
	if err != nil {
		return fmt.Errorf("%w: word count: %v", ErrBadFreqFile, err)
	}
	if uint64(len(data)-i) != nwords*8 {
		return fmt.Errorf("%w: expected %d words, have %d bytes", ErrBadFreqFile, nwords, len(data)-i)
	}

	counts, err := simple8b.Decompress(nil, data[i:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFreqFile, err)
	}
	if len(counts) != huffman.Symbols {
		return fmt.Errorf("%w: %d counts, want %d", ErrBadFreqFile, len(counts), huffman.Symbols)
	}
	var total uint64
	for j, c := range counts {
		f.Freq[j] = c
		total += c
	}
	if total != size {
		return fmt.Errorf("%w: counts sum to %d, size is %d", ErrBadFreqFile, total, size)
	}
	f.Size = int64(size)
	f.Checksum = sum
	return nil
}

// Verify 比较解码结果的 xxhash64 与记录值
func (f *FreqFile) Verify(got uint64) error {
	if got != f.Checksum {
		return fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, got, f.Checksum)
	}
	return nil
}

func WriteFreqFile(path string, f *FreqFile) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write frequency file '%s': %w", path, err)
	}
	return nil
}

func ReadFreqFile(path string) (*FreqFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frequency file '%s': %w", path, err)
	}
	f := &FreqFile{}
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return f, nil
}
