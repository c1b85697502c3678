package pak

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFooterRoundTrip(t *testing.T) {
	for _, v := range []Version{V1, V3, V7, V8A, V8B, V9, V11} {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			in := &Footer{
				Magic:        pakMagic,
				Version:      v,
				VersionMajor: v.Major(),
				IndexOffset:  0x1000,
				IndexSize:    0x200,
				Hash:         [20]byte{1, 2, 3},
			}
			if v.Major() >= EncryptionKeyGuid {
				var raw [16]byte
				copy(raw[:], bytes.Repeat([]byte{0x07}, 16))
				id := uuid.UUID(raw)
				in.EncryptionUUID = &id
			}
			if v.Major() == FrozenIndex {
				in.Frozen = true
			}
			slotCount := compressionSlotCount(v)
			if slotCount > 0 {
				in.Compression = make([]Compression, slotCount)
				in.Compression[0] = CompressionZlib
			}

			var buf bytes.Buffer
			require.NoError(t, writeFooter(&buf, in))

			require.EqualValues(t, v.Size(), buf.Len())

			out, err := readFooter(&buf, v)
			require.NoError(t, err)
			require.Equal(t, in.IndexOffset, out.IndexOffset)
			require.Equal(t, in.IndexSize, out.IndexSize)
			require.Equal(t, in.Hash, out.Hash)
			if slotCount > 0 {
				require.Equal(t, CompressionZlib, out.Compression[0])
			} else {
				require.Equal(t, []Compression{CompressionZlib, CompressionGzip, CompressionOodle}, out.Compression)
			}
		})
	}
}

func TestFooterRejectsBadMagic(t *testing.T) {
	in := &Footer{Magic: 0xDEADBEEF, Version: V7, VersionMajor: V7.Major()}
	var buf bytes.Buffer
	require.NoError(t, writeFooter(&buf, in))

	_, err := readFooter(&buf, V7)
	require.Error(t, err)
}

func TestFooterRejectsWrongVersion(t *testing.T) {
	in := &Footer{Magic: pakMagic, Version: V7, VersionMajor: V7.Major()}
	var buf bytes.Buffer
	require.NoError(t, writeFooter(&buf, in))

	_, err := readFooter(&buf, V6)
	require.Error(t, err)
}

func TestCompressionSlotCount(t *testing.T) {
	require.Equal(t, 0, compressionSlotCount(V7))
	require.Equal(t, 4, compressionSlotCount(V8A))
	require.Equal(t, 5, compressionSlotCount(V8B))
	require.Equal(t, 5, compressionSlotCount(V11))
}
