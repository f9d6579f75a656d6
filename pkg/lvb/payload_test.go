package lvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringsRead(t *testing.T) {
	t.Parallel()

	s := &Strings{Blob: []byte("boss_01\x00npc_\xe5\xba\x97\x00")}

	got, err := s.Read(0)
	require.NoError(t, err)
	require.Equal(t, "boss_01", got)

	got, err = s.Read(8)
	require.NoError(t, err)
	require.Equal(t, "npc_店", got)

	// Reading from the middle of a string is valid.
	got, err = s.Read(5)
	require.NoError(t, err)
	require.Equal(t, "01", got)
}

func TestStringsReadOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	s := &Strings{Blob: []byte("abc\x00")}

	_, err := s.Read(4)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)
	_, err = s.Read(400)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)

	// Unterminated tail.
	_, err = (&Strings{Blob: []byte("abc")}).Read(0)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = (&Strings{}).Read(0)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestStringsReadInvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := (&Strings{Blob: []byte{0xff, 0xfe, 0x00}}).Read(0)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestPayloadDecodersRejectShortEntries(t *testing.T) {
	t.Parallel()

	short := make([]byte, 8)
	for name, fn := range map[string]MapperFunc{
		"info":        decodeInfo,
		"legacy info": decodeLegacyInfo,
		"transform":   decodeTransform,
		"debug":       decodeDebug,
	} {
		_, err := fn(short)
		require.ErrorIs(t, err, ErrCorruptSection, name)
	}
}

func TestTransformDecode(t *testing.T) {
	t.Parallel()

	entry := transformEntry(3.5)
	p, err := decodeTransform(entry)
	require.NoError(t, err)
	xf := p.(*Transform)
	require.EqualValues(t, 3.5, xf.Matrix[0])
	require.EqualValues(t, 1, xf.Matrix[15])
	for _, v := range xf.Matrix[1:15] {
		require.Zero(t, v)
	}
}
