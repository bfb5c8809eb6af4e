package huf

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"huf_go/pkg/bitstream"
	"huf_go/pkg/huffman"
)

// escape brackets code lengths of two or more digits. It can never be a
// single-digit length, so a reader can tell both forms apart by the first byte.
const escape = 0xFF

// EncodeLength renders a code length as one ASCII digit, or as
// 0xFF <digits> 0xFF when it needs more than one digit.
func EncodeLength(n int) []byte {
	digits := strconv.Itoa(n)
	if len(digits) == 1 {
		return []byte(digits)
	}
	out := make([]byte, 0, len(digits)+2)
	out = append(out, escape)
	out = append(out, digits...)
	return append(out, escape)
}

// DecodeLength reads one length field written by EncodeLength.
func DecodeLength(r *bitstream.Reader) (int, error) {
	b, err := readByte(r, "code length")
	if err != nil {
		return 0, err
	}
	if b != escape {
		if b < '0' || b > '9' {
			return 0, fmt.Errorf("%w: code length byte %#x", ErrFormat, b)
		}
		return int(b - '0'), nil
	}

	var digits []byte
	for {
		b, err := readByte(r, "code length")
		if err != nil {
			return 0, err
		}
		if b == escape {
			break
		}
		if b < '0' || b > '9' || len(digits) == 3 {
			return 0, fmt.Errorf("%w: escaped code length %q", ErrFormat, append(digits, b))
		}
		digits = append(digits, b)
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil || n > maxSymbols {
		return 0, fmt.Errorf("%w: escaped code length %q", ErrFormat, digits)
	}
	return n, nil
}

// WriteTable writes one entry per symbol: the symbol byte, its code length and
// the code as ASCII '0'/'1' characters.
func WriteTable(w *bitstream.Writer, table huffman.CodeTable) error {
	for _, e := range table {
		if err := w.WriteByte(e.Symbol); err != nil {
			return err
		}
		for _, b := range EncodeLength(len(e.Code)) {
			if err := w.WriteByte(b); err != nil {
				return err
			}
		}
		if err := w.WriteString(e.Code.String()); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable reads n entries written by WriteTable.
func ReadTable(r *bitstream.Reader, n int) (huffman.CodeTable, error) {
	table := make(huffman.CodeTable, 0, n)
	for i := 0; i < n; i++ {
		sym, err := readByte(r, "symbol")
		if err != nil {
			return nil, err
		}
		size, err := DecodeLength(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		raw := make([]byte, size)
		for j := range raw {
			if raw[j], err = readByte(r, "code"); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		code, err := huffman.ParseCode(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrFormat, i, err)
		}
		table = append(table, huffman.CodeEntry{Symbol: sym, Code: code})
	}
	return table, nil
}

func readByte(r *bitstream.Reader, what string) (byte, error) {
	b, err := r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %s: %w", ErrFormat, what, io.ErrUnexpectedEOF)
	}
	return b, err
}
