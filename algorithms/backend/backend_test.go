package backend

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"huffcodec/algorithms/huffman"
)

func interchangeStream(t *testing.T) []byte {
	t.Helper()
	rnd := rand.New(rand.NewSource(114514))
	src := make([]byte, 50000)
	for i := range src {
		src[i] = byte(rnd.ExpFloat64() * 16)
	}
	var freq huffman.FrequencyTable
	for _, c := range src {
		freq[c]++
	}
	out, err := huffman.EncodeBytes(huffman.Generate(huffman.Build(freq)), src)
	require.NoError(t, err)
	return out
}

var inputs = []struct {
	name string
	data func(t *testing.T) []byte
}{
	{"bits", interchangeStream},
	{"repeat", func(*testing.T) []byte { return bytes.Repeat([]byte{'1'}, 4096) }},
	{"short", func(*testing.T) []byte { return []byte("0110") }},
	{"random", func(*testing.T) []byte {
		rnd := rand.New(rand.NewSource(1))
		b := make([]byte, 300000)
		rnd.Read(b)
		return b
	}},
}

func TestRoundTrip(t *testing.T) {
	for _, tcase := range append(All(), References()...) {
		t.Run(tcase.Name, func(t *testing.T) {
			for _, in := range inputs {
				src := in.data(t)
				packed, err := tcase.Compress(nil, src)
				require.NoError(t, err, in.name)
				unpacked, err := tcase.Decompress(nil, packed)
				require.NoError(t, err, in.name)
				require.True(t, bytes.Equal(src, unpacked), "%s: round trip mismatch", in.name)
			}
		})
	}
}

func TestCompressAppends(t *testing.T) {
	for _, tcase := range All() {
		prefix := []byte("hdr")
		packed, err := tcase.Compress(append([]byte(nil), prefix...), []byte("0101010101"))
		require.NoError(t, err, tcase.Name)
		require.Equal(t, prefix, packed[:len(prefix)], tcase.Name)

		unpacked, err := tcase.Decompress(nil, packed[len(prefix):])
		require.NoError(t, err, tcase.Name)
		require.Equal(t, []byte("0101010101"), unpacked, tcase.Name)
	}
}

func TestBitStreamShrinks(t *testing.T) {
	src := interchangeStream(t)
	for _, tcase := range All() {
		if tcase.Name == None {
			continue
		}
		packed, err := tcase.Compress(nil, src)
		require.NoError(t, err, tcase.Name)
		require.Less(t, len(packed), len(src), tcase.Name)
	}
}

func TestLookup(t *testing.T) {
	b, err := Lookup("")
	require.NoError(t, err)
	require.Equal(t, None, b.Name)

	b, err = Lookup("xz")
	require.NoError(t, err)
	require.Equal(t, "xz", b.Name)

	_, err = Lookup("gzip")
	require.ErrorIs(t, err, ErrUnknownBackend)
	require.Contains(t, Names(), "snappy")
}
