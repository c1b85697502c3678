package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripZlib(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps over the lazy dog")
	out, err := Compress(Zlib, src)
	require.NoError(t, err)
	back, err := Decompress(Zlib, out, len(src))
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestRoundTripGzip(t *testing.T) {
	src := []byte("gzip round trip payload 0123456789")
	out, err := Compress(Gzip, src)
	require.NoError(t, err)
	back, err := Decompress(Gzip, out, len(src))
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestRoundTripZstd(t *testing.T) {
	src := []byte("zstd round trip payload 0123456789 0123456789 0123456789")
	out, err := Compress(Zstd, src)
	require.NoError(t, err)
	back, err := Decompress(Zstd, out, len(src))
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestRoundTripLZ4(t *testing.T) {
	src := []byte("lz4 round trip payload aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	out, err := Compress(LZ4, src)
	require.NoError(t, err)
	back, err := Decompress(LZ4, out, len(src))
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestNoneIsIdentity(t *testing.T) {
	src := []byte("passthrough")
	out, err := Compress(None, src)
	require.NoError(t, err)
	require.Equal(t, src, out)
	back, err := Decompress(None, out, len(src))
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestOodleStickyFailure(t *testing.T) {
	SetOodleDecompressor(func(compressed, scratch []byte) (int, error) {
		return 0, errOodleBoom
	})
	defer SetOodleDecompressor(nil)

	_, err := Decompress(Oodle, []byte{1, 2, 3}, 8)
	require.Error(t, err)
	_, err2 := Decompress(Oodle, []byte{1, 2, 3}, 8)
	require.Error(t, err2)
	require.Equal(t, err, err2)
}

var errOodleBoom = &oodleTestErr{"boom"}

type oodleTestErr struct{ s string }

func (e *oodleTestErr) Error() string { return e.s }
