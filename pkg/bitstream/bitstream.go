// Package bitstream adapts byte streams to bit streams and back.
// Bits are packed MSB-first: the first bit written lands in bit 7 of the first byte.
package bitstream

import (
	"bufio"
	"errors"
	"io"

	"github.com/icza/bitio"
)

var ErrMode = errors.New("bitstream: read does not match stream mode")

/*** ---------- 비트 쓰기 (MSB-first) ---------- ***/

// Writer buffers single bits into whole bytes. Full bytes written with
// WriteByte bypass the bit buffer and must only be written on a byte boundary.
type Writer struct {
	bw   *bitio.Writer
	bits uint64
}

func NewWriter(w io.Writer) *Writer { return &Writer{bw: bitio.NewWriter(w)} }

// WriteBit writes the low bit of b.
func (w *Writer) WriteBit(b uint8) error {
	if err := w.bw.WriteBool(b&1 == 1); err != nil {
		return err
	}
	w.bits++
	return nil
}

// WriteBits writes each element of bits (0 or 1) in order.
func (w *Writer) WriteBits(bits []uint8) error {
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteByte(b byte) error {
	if err := w.bw.WriteByte(b); err != nil {
		return err
	}
	w.bits += 8
	return nil
}

// WriteString writes s byte by byte.
func (w *Writer) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := w.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Pad appends zero bits up to the next byte boundary and reports how many were added.
func (w *Writer) Pad() (int, error) {
	skipped, err := w.bw.Align()
	if err != nil {
		return 0, err
	}
	w.bits += uint64(skipped)
	return int(skipped), nil
}

// Bits returns the number of bits written so far, padding included.
func (w *Writer) Bits() uint64 { return w.bits }

// Close pads the last byte and flushes. The underlying writer is not closed.
func (w *Writer) Close() error {
	if _, err := w.Pad(); err != nil {
		return err
	}
	return w.bw.Close()
}

/*** ---------- 비트/바이트 읽기 ---------- ***/

// Reader reads either whole bytes (byte mode, the default) or single bits
// (bit mode) from the same underlying stream.
type Reader struct {
	src     *bufio.Reader
	br      *bitio.Reader
	pos     uint8 // bits already taken from the current byte
	bitMode bool
}

func NewReader(r io.Reader) *Reader {
	src, ok := r.(*bufio.Reader)
	if !ok {
		src = bufio.NewReader(r)
	}
	return &Reader{src: src, br: bitio.NewReader(src)}
}

// SetBitMode switches between byte and bit reads. Any bits left in a
// partially consumed byte are dropped.
func (r *Reader) SetBitMode(on bool) {
	r.br.Align()
	r.pos = 0
	r.bitMode = on
}

func (r *Reader) BitMode() bool { return r.bitMode }

// HasNextBit reports whether another bit (bit mode) or byte (byte mode) can be read.
func (r *Reader) HasNextBit() bool {
	if r.pos != 0 {
		return true
	}
	_, err := r.src.Peek(1)
	return err == nil
}

// ReadBit returns the next bit as 0 or 1. It returns io.EOF when the stream is exhausted.
func (r *Reader) ReadBit() (uint8, error) {
	if !r.bitMode {
		return 0, ErrMode
	}
	b, err := r.br.ReadBool()
	if err != nil {
		return 0, err
	}
	r.pos = (r.pos + 1) % 8
	if b {
		return 1, nil
	}
	return 0, nil
}

func (r *Reader) ReadByte() (byte, error) {
	if r.bitMode {
		return 0, ErrMode
	}
	return r.br.ReadByte()
}
