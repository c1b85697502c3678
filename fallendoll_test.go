package pak

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallenDollRejectsUnalignedInput(t *testing.T) {
	c := newFallenDollCipher()
	err := c.decrypt(make([]byte, 17))
	require.Error(t, err)
}

func TestFallenDollIsDeterministic(t *testing.T) {
	c := newFallenDollCipher()
	data1 := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF, 0x01}, 8)
	data2 := append([]byte(nil), data1...)

	require.NoError(t, c.decrypt(data1))
	require.NoError(t, c.decrypt(data2))
	require.Equal(t, data1, data2)
}

func TestFallenDollChangesInput(t *testing.T) {
	c := newFallenDollCipher()
	data := bytes.Repeat([]byte{0x00}, 32)
	orig := append([]byte(nil), data...)

	require.NoError(t, c.decrypt(data))
	require.NotEqual(t, orig, data)
}

func TestFallenDollEmptyInput(t *testing.T) {
	c := newFallenDollCipher()
	require.NoError(t, c.decrypt(nil))
}
