package huffman

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableFor(src []byte) (*Node, CodeTable) {
	var freq FrequencyTable
	for _, c := range src {
		freq[c]++
	}
	root := Build(freq)
	return root, Generate(root)
}

func randomInput(seed int64, n int) []byte {
	rnd := rand.New(rand.NewSource(seed))
	src := make([]byte, n)
	for i := range src {
		// 偏斜分布，让编码长度差异明显
		src[i] = byte(rnd.ExpFloat64() * 20)
	}
	return src
}

var roundTripCases = []struct {
	name string
	src  []byte
}{
	{"empty", nil},
	{"single", []byte("a")},
	{"repeat", bytes.Repeat([]byte{'z'}, 1000)},
	{"text", []byte("this is an example of a huffman tree")},
	{"allBytes", func() []byte {
		b := make([]byte, 512)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}()},
	{"skewed", randomInput(114514, 20000)},
}

func TestRoundTrip(t *testing.T) {
	for _, tcase := range roundTripCases {
		t.Run(tcase.name, func(t *testing.T) {
			root, codes := tableFor(tcase.src)

			var encoded bytes.Buffer
			bits, err := Encode(codes, bytes.NewReader(tcase.src), &encoded)
			require.NoError(t, err)
			require.Equal(t, int64(encoded.Len()), bits)

			var freq FrequencyTable
			for _, c := range tcase.src {
				freq[c]++
			}
			require.Equal(t, codes.Weighted(freq), uint64(bits))

			var decoded bytes.Buffer
			n, err := Decode(root, &encoded, &decoded)
			require.NoError(t, err)
			require.Equal(t, int64(len(tcase.src)), n)
			require.Equal(t, len(tcase.src), decoded.Len())
			require.True(t, bytes.Equal(tcase.src, decoded.Bytes()))
		})
	}
}

func TestEncodeInterchangeFormat(t *testing.T) {
	src := randomInput(7, 3000)
	_, codes := tableFor(src)
	out, err := EncodeBytes(codes, src)
	require.NoError(t, err)
	require.Empty(t, strings.Trim(string(out), "01"), "only '0' and '1' characters")
}

func TestGeneratePrefixFree(t *testing.T) {
	_, codes := tableFor(randomInput(99, 5000))
	require.Len(t, codes, Symbols)
	for a, ca := range codes {
		require.NotEmpty(t, ca)
		for b, cb := range codes {
			if a == b {
				continue
			}
			require.False(t, ca.IsPrefixOf(cb), "code(%d)=%s is a prefix of code(%d)=%s", a, ca, b, cb)
		}
	}
}

func TestGenerateMatchesDepths(t *testing.T) {
	root, codes := tableFor([]byte("abracadabra"))
	depths := Depths(root)
	for sym, l := range codes.Lengths() {
		require.Equal(t, depths[sym], l)
	}
}

func TestSingleSymbolInput(t *testing.T) {
	src := bytes.Repeat([]byte{'q'}, 37)
	root, codes := tableFor(src)
	require.GreaterOrEqual(t, len(codes['q']), 1)

	encoded, err := EncodeBytes(codes, src)
	require.NoError(t, err)
	require.Len(t, encoded, 37*len(codes['q']))

	decoded, err := DecodeBytes(root, encoded)
	require.NoError(t, err)
	require.Equal(t, src, decoded)
}

func TestEmptyInput(t *testing.T) {
	root, codes := tableFor(nil)
	var encoded bytes.Buffer
	bits, err := Encode(codes, bytes.NewReader(nil), &encoded)
	require.NoError(t, err)
	require.Zero(t, bits)
	require.Zero(t, encoded.Len())

	var decoded bytes.Buffer
	n, err := Decode(root, &encoded, &decoded)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestEncodeMissingCode(t *testing.T) {
	codes := CodeTable{'a': "0", 'b': "1"}
	_, err := EncodeBytes(codes, []byte("abc"))
	require.ErrorIs(t, err, ErrMissingCode)

	_, err = Encode(codes, strings.NewReader("abc"), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrMissingCode)
}

func TestDecodeInvalidBit(t *testing.T) {
	root, _ := tableFor([]byte("hello"))
	_, err := DecodeBytes(root, []byte("0102"))
	require.ErrorIs(t, err, ErrInvalidBit)
}

func TestDecodePartialOutputOnError(t *testing.T) {
	src := []byte("hello")
	root, codes := tableFor(src)
	encoded, err := EncodeBytes(codes, src)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := Decode(root, bytes.NewReader(append(append([]byte(nil), encoded...), 'x')), &out)
	require.ErrorIs(t, err, ErrInvalidBit)
	require.Equal(t, int64(len(src)), n)
	require.Equal(t, src, out.Bytes())

	out.Reset()
	n, err = Decode(root, bytes.NewReader(encoded[:len(encoded)-1]), &out)
	require.ErrorIs(t, err, ErrTruncated)
	require.Equal(t, int64(len(src)-1), n)
	require.Equal(t, src[:len(src)-1], out.Bytes())
}

func TestDecodeTruncated(t *testing.T) {
	src := []byte("hello, world")
	root, codes := tableFor(src)
	encoded, err := EncodeBytes(codes, src)
	require.NoError(t, err)

	// 每个编码长度都 >= 2，去掉最后一位必然停在内部节点
	require.GreaterOrEqual(t, len(codes['d']), 2)
	_, err = DecodeBytes(root, encoded[:len(encoded)-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeNilTree(t *testing.T) {
	_, err := DecodeBytes(nil, []byte("0"))
	require.ErrorIs(t, err, ErrNilTree)
}

func TestEncodeDeterministic(t *testing.T) {
	src := randomInput(2024, 8000)
	_, codes1 := tableFor(src)
	_, codes2 := tableFor(src)
	out1, err := EncodeBytes(codes1, src)
	require.NoError(t, err)
	out2, err := EncodeBytes(codes2, src)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
}

func TestEncodeParallel(t *testing.T) {
	src := randomInput(31337, 100000)
	_, codes := tableFor(src)
	want, err := EncodeBytes(codes, src)
	require.NoError(t, err)

	for _, workers := range []int{1, 3, 8} {
		var got bytes.Buffer
		bits, err := EncodeParallel(context.Background(), codes, src, &got, workers, 4096)
		require.NoError(t, err)
		require.Equal(t, int64(len(want)), bits)
		require.Equal(t, want, got.Bytes())
	}
}

func TestEncodeParallelMissingCode(t *testing.T) {
	codes := CodeTable{'a': "0"}
	_, err := EncodeParallel(context.Background(), codes, []byte("aaab"), &bytes.Buffer{}, 2, 2)
	require.ErrorIs(t, err, ErrMissingCode)
}

func TestEncodeParallelCanceled(t *testing.T) {
	src := randomInput(5, 1000)
	_, codes := tableFor(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EncodeParallel(ctx, codes, src, &bytes.Buffer{}, 2, 100)
	require.ErrorIs(t, err, context.Canceled)
}
