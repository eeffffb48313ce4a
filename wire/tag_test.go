package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_KnownKinds(t *testing.T) {
	tag, ok := Decode(0x39) // int_pos, param 1
	require.True(t, ok)
	require.Equal(t, KindIntPos, tag.Kind)
	require.Equal(t, uint8(1), tag.Param)
}

func TestDecode_UnknownKind(t *testing.T) {
	_, ok := Decode(0x48) // between int_neg (0x40..0x47) and struct (0x50), unused
	require.False(t, ok)
}

func TestDecode_Fault(t *testing.T) {
	tag, ok := Decode(0x78)
	require.True(t, ok)
	require.Equal(t, KindFault, tag.Kind)
}

func TestIsDataTag(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		got := IsDataTag(byte(b))
		want := b >= 1 && b <= 8
		require.Equal(t, want, got, "byte 0x%02x", b)
	}
}

func TestDataLengthWidth(t *testing.T) {
	require.Equal(t, 2, DataLengthWidth(0x01))
	require.Equal(t, 1, DataLengthWidth(0x08))
}
