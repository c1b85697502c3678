package pak

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *Key {
	t.Helper()
	raw := bytes.Repeat([]byte{0x42}, 32)
	k, err := NewKey(raw)
	require.NoError(t, err)
	return k
}

func TestECBRoundTrip(t *testing.T) {
	k := testKey(t)
	plain := bytes.Repeat([]byte{0x01}, 64)
	cipherText := append([]byte(nil), plain...)
	require.NoError(t, k.encryptECB(cipherText))
	require.NotEqual(t, plain, cipherText)

	require.NoError(t, k.decryptECB(cipherText))
	require.Equal(t, plain, cipherText)
}

func TestFallenDollKeyHasNoEncryptDirection(t *testing.T) {
	k := NewFallenDollKey()
	err := k.encryptECB(make([]byte, 16))
	require.Error(t, err)
}

func TestFallenDollKeyDecryptsViaFallenDollCipher(t *testing.T) {
	k := NewFallenDollKey()
	data := bytes.Repeat([]byte{0x00}, 32)
	require.NoError(t, k.decryptECB(data))
	require.NotEqual(t, make([]byte, 32), data)
}

func TestNewKeyRejectsWrongLength(t *testing.T) {
	_, err := NewKey(make([]byte, 16))
	require.Error(t, err)
}

func TestAlign16(t *testing.T) {
	require.Equal(t, uint64(0), align16(0))
	require.Equal(t, uint64(16), align16(1))
	require.Equal(t, uint64(16), align16(16))
	require.Equal(t, uint64(32), align16(17))
}

func TestVariantStandardEncryptsEverything(t *testing.T) {
	require.Equal(t, uint64(8192), VariantStandard.EncryptedExtent("test.uasset", 8192))
}

func TestVariantNetEaseCapsAt4KiB(t *testing.T) {
	require.Equal(t, uint64(0x1000), VariantNetEase.EncryptedExtent("test.uasset", 8192))
	require.Equal(t, uint64(100), VariantNetEase.EncryptedExtent("test.uasset", 100))
}

func TestVariantMarvelRivalsExtentIsAlignedTo64(t *testing.T) {
	extent := VariantMarvelRivals.EncryptedExtent("Content/Test/test.uasset", 8192)
	require.Zero(t, extent&0x3F)
	require.NotZero(t, extent)
}

func TestVariantMarvelRivalsClampsToTotalSize(t *testing.T) {
	extent := VariantMarvelRivals.EncryptedExtent("Content/Test/test.uasset", 10)
	require.Equal(t, uint64(10), extent)
}
