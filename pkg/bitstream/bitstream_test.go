package bitstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPacksMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBits([]uint8{0, 0, 0, 1}))
	pad, err := w.Pad()
	require.NoError(t, err)
	require.Equal(t, 4, pad)
	require.NoError(t, w.Close())

	require.Equal(t, []byte{0x10}, buf.Bytes())
	require.Equal(t, uint64(8), w.Bits())
}

func TestWriterBytesThenBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteString("huf"))
	require.NoError(t, w.WriteBits([]uint8{1, 1, 1, 1, 1, 1, 1, 1, 1}))
	require.NoError(t, w.Close())

	require.Equal(t, []byte{'h', 'u', 'f', 0xff, 0x80}, buf.Bytes())
	require.Equal(t, uint64(40), w.Bits())
}

func TestWriterPadOnBoundaryIsNoop(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteByte(0x42))
	pad, err := w.Pad()
	require.NoError(t, err)
	require.Zero(t, pad)
	require.NoError(t, w.Close())
	require.Equal(t, []byte{0x42}, buf.Bytes())
}

func TestReaderBits(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xf2, 0x80}))
	r.SetBitMode(true)

	var got []uint8
	for r.HasNextBit() {
		b, err := r.ReadBit()
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Equal(t, []uint8{1, 1, 1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0}, got)

	_, err := r.ReadBit()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderModeSwitchDropsPartialByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{'x', 0xa0, 'y', 0x80}))

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('x'), b)

	r.SetBitMode(true)
	bit, err := r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint8(1), bit)
	bit, err = r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint8(0), bit)

	// the remaining six bits of 0xa0 are discarded
	r.SetBitMode(false)
	b, err = r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('y'), b)

	r.SetBitMode(true)
	bit, err = r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint8(1), bit)
}

func TestReaderRejectsWrongMode(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1}))
	_, err := r.ReadBit()
	require.ErrorIs(t, err, ErrMode)

	r.SetBitMode(true)
	_, err = r.ReadByte()
	require.ErrorIs(t, err, ErrMode)
}

func TestHasNextBitEmpty(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	require.False(t, r.HasNextBit())
	r.SetBitMode(true)
	require.False(t, r.HasNextBit())
}

func TestRoundTripBits(t *testing.T) {
	bits := []uint8{1, 0, 1, 1, 0, 0, 0, 1, 1, 1, 0}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBits(bits))
	require.NoError(t, w.Close())
	require.Equal(t, 2, buf.Len())

	r := NewReader(&buf)
	r.SetBitMode(true)
	for i, want := range bits {
		got, err := r.ReadBit()
		require.NoError(t, err, "bit %d", i)
		require.Equal(t, want, got, "bit %d", i)
	}
}
