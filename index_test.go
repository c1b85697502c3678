package pak

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexV1RoundTrip(t *testing.T) {
	ix := newIndexV1()
	require.NoError(t, ix.addEntry("a.txt", &Entry{Compressed: 4, Uncompressed: 4}))
	require.NoError(t, ix.addEntry("b.txt", &Entry{Compressed: 8, Uncompressed: 8}))

	var buf bytes.Buffer
	require.NoError(t, writeIndex(&buf, V3, "../../mount/", ix, nil))

	mountPoint, out, err := readIndex(bytes.NewReader(buf.Bytes()), bytes.NewReader(nil), V3, &Footer{}, nil)
	require.NoError(t, err)
	require.Equal(t, "../../mount/", mountPoint)

	entries := out.entriesByPath()
	require.Len(t, entries, 2)
	require.Equal(t, uint64(4), entries["a.txt"].Compressed)
	require.Equal(t, uint64(8), entries["b.txt"].Compressed)
}

func TestIndexV2AddEntryUnsupported(t *testing.T) {
	ix := &index{v2: &indexV2{entriesByPath: map[string]*Entry{}}}
	err := ix.addEntry("a.txt", &Entry{})
	require.Error(t, err)
}

func TestWriteIndexV2Unsupported(t *testing.T) {
	ix := &index{v2: &indexV2{entriesByPath: map[string]*Entry{}}}
	var buf bytes.Buffer
	err := writeIndex(&buf, V10, "/", ix, nil)
	require.Error(t, err)
}
