package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarString_RoundTrip(t *testing.T) {
	names := []string{"clk", "", "mux.out[3]", strings.Repeat("s", 300), "選択"}

	enc := NewVarStringEncoder()
	defer enc.Finish()
	enc.WriteSlice(names)
	require.Equal(t, len(names), enc.Len())

	dec := NewVarStringDecoder()
	got, err := Collect(dec, enc.Bytes(), len(names), errShort)
	require.NoError(t, err)
	require.Equal(t, names, got)

	s, ok := dec.At(enc.Bytes(), 3, len(names))
	require.True(t, ok)
	require.Len(t, s, 300)

	_, ok = dec.At(enc.Bytes(), 5, len(names))
	require.False(t, ok)
}

func TestVarString_Layout(t *testing.T) {
	enc := NewVarStringEncoder()
	defer enc.Finish()
	enc.Write("sel")

	require.Equal(t, []byte{3, 's', 'e', 'l'}, enc.Bytes())
}

func TestVarString_Malformed(t *testing.T) {
	dec := NewVarStringDecoder()

	_, err := Collect(dec, []byte{5, 'a', 'b'}, 1, errShort)
	require.ErrorIs(t, err, errShort)

	_, ok := dec.At([]byte{5, 'a'}, 0, 1)
	require.False(t, ok)
}
