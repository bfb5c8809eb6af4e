package huf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"huf_go/pkg/bitstream"
	"huf_go/pkg/huffman"
)

// Stats describes one compression run.
type Stats struct {
	Header
	Table       huffman.CodeTable
	PayloadBits uint64 // code bits, padding excluded
	PadBits     int
	OutputBytes uint64
}

// IsCompressed reports whether r starts with the magic marker. It consumes up
// to three bytes of r.
func IsCompressed(r io.Reader) (bool, error) {
	var magic [len(Magic)]byte
	_, err := io.ReadFull(r, magic[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(magic[:]) == Magic, nil
}

// Compress reads r twice, once to count symbols and once to emit their codes,
// and writes a complete .huf file to w. ext is stored so the original name can
// be restored; it must not contain a space.
func Compress(r io.ReadSeeker, w io.Writer, ext string) (Stats, error) {
	if err := checkExtension(ext); err != nil {
		return Stats{}, err
	}
	compressed, err := IsCompressed(r)
	if err != nil {
		return Stats{}, fmt.Errorf("sniff input: %w", err)
	}
	if compressed {
		return Stats{}, ErrAlreadyCompressed
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Stats{}, err
	}
	entries, err := huffman.Frequencies(r)
	if err != nil {
		return Stats{}, err
	}
	table := huffman.GenerateCodes(huffman.BuildTree(entries))

	st := Stats{
		Header: Header{Extension: ext, Symbols: len(table), Length: huffman.Total(entries)},
		Table:  table,
	}

	bw := bitstream.NewWriter(w)
	if err := WriteHeader(bw, st.Header); err != nil {
		return Stats{}, fmt.Errorf("write header: %w", err)
	}
	if err := WriteTable(bw, table); err != nil {
		return Stats{}, fmt.Errorf("write code table: %w", err)
	}
	headerBits := bw.Bits()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Stats{}, err
	}
	lookup := table.Lookup()
	br := bitstream.NewReader(r)
	var n uint64
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Stats{}, fmt.Errorf("read input: %w", err)
		}
		code := lookup[b]
		if code == nil {
			return Stats{}, fmt.Errorf("input changed between passes: byte %#x has no code", b)
		}
		if err := bw.WriteBits(code); err != nil {
			return Stats{}, fmt.Errorf("write payload: %w", err)
		}
		n++
	}
	if n != st.Length {
		return Stats{}, fmt.Errorf("input changed between passes: counted %d bytes, encoded %d", st.Length, n)
	}

	st.PayloadBits = bw.Bits() - headerBits
	if st.PadBits, err = bw.Pad(); err != nil {
		return Stats{}, fmt.Errorf("write payload: %w", err)
	}
	if err := bw.Close(); err != nil {
		return Stats{}, fmt.Errorf("flush: %w", err)
	}
	st.OutputBytes = bw.Bits() / 8
	return st, nil
}

// CompressBytes compresses an in-memory input.
func CompressBytes(data []byte, ext string) ([]byte, Stats, error) {
	var out bytes.Buffer
	st, err := Compress(bytes.NewReader(data), &out, ext)
	if err != nil {
		return nil, Stats{}, err
	}
	return out.Bytes(), st, nil
}

// Decompress reads a .huf file from r and writes the original bytes to w.
func Decompress(r io.Reader, w io.Writer) (Header, error) {
	br := bitstream.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return Header{}, err
	}
	table, err := ReadTable(br, h.Symbols)
	if err != nil {
		return Header{}, fmt.Errorf("read code table: %w", err)
	}
	tree, err := huffman.Reconstruct(table)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	out := bufio.NewWriter(w)
	br.SetBitMode(true)
	if err := tree.Decode(br, h.Length, out); err != nil {
		if errors.Is(err, huffman.ErrInvalidTable) {
			return Header{}, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return Header{}, fmt.Errorf("decode payload: %w", err)
	}
	if err := out.Flush(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// DecompressBytes decompresses an in-memory .huf file.
func DecompressBytes(data []byte) ([]byte, Header, error) {
	var out bytes.Buffer
	h, err := Decompress(bytes.NewReader(data), &out)
	if err != nil {
		return nil, Header{}, err
	}
	return out.Bytes(), h, nil
}
