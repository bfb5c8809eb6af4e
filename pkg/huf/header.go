// Package huf reads and writes the .huf container: a text header, the stored
// code table and the packed payload.
package huf

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"huf_go/pkg/bitstream"
)

const (
	Magic = "huf"
	// Ext is the file name extension of compressed files, dot included.
	Ext = ".huf"

	fieldSep   = ' '
	maxField   = 255
	maxSymbols = 256
)

var (
	ErrNotCompressed     = errors.New("not a huf compressed file")
	ErrAlreadyCompressed = errors.New("file is already huf compressed")
	ErrFormat            = errors.New("malformed huf file")
	ErrInvalidExtension  = errors.New("invalid file extension")
)

// Header is the fixed part of a .huf file that precedes the code table.
type Header struct {
	Extension string // original extension without the dot, may be empty
	Symbols   int    // number of code table entries
	Length    uint64 // number of bytes the payload decodes to
}

func checkExtension(ext string) error {
	if len(ext) > maxField || strings.IndexByte(ext, fieldSep) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return nil
}

// WriteHeader writes the magic marker followed by the three space-terminated fields.
func WriteHeader(w *bitstream.Writer, h Header) error {
	if err := checkExtension(h.Extension); err != nil {
		return err
	}
	fields := []string{
		Magic + h.Extension,
		strconv.Itoa(h.Symbols),
		strconv.FormatUint(h.Length, 10),
	}
	for _, f := range fields {
		if err := w.WriteString(f); err != nil {
			return err
		}
		if err := w.WriteByte(fieldSep); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeader validates the magic marker and parses the header fields.
// r must be in byte mode.
func ReadHeader(r *bitstream.Reader) (Header, error) {
	var magic [len(Magic)]byte
	for i := range magic {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return Header{}, ErrNotCompressed
		}
		if err != nil {
			return Header{}, err
		}
		magic[i] = b
	}
	if string(magic[:]) != Magic {
		return Header{}, ErrNotCompressed
	}

	var h Header
	ext, err := readField(r, "extension")
	if err != nil {
		return Header{}, err
	}
	h.Extension = ext

	raw, err := readField(r, "symbol count")
	if err != nil {
		return Header{}, err
	}
	h.Symbols, err = strconv.Atoi(raw)
	if err != nil || h.Symbols < 0 || h.Symbols > maxSymbols {
		return Header{}, fmt.Errorf("%w: symbol count %q", ErrFormat, raw)
	}

	raw, err = readField(r, "length")
	if err != nil {
		return Header{}, err
	}
	h.Length, err = strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: length %q", ErrFormat, raw)
	}

	if h.Symbols == 0 && h.Length != 0 {
		return Header{}, fmt.Errorf("%w: %d bytes with an empty code table", ErrFormat, h.Length)
	}
	return h, nil
}

func readField(r *bitstream.Reader, name string) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s: %w", ErrFormat, name, io.ErrUnexpectedEOF)
		}
		if err != nil {
			return "", err
		}
		if b == fieldSep {
			return sb.String(), nil
		}
		if sb.Len() == maxField {
			return "", fmt.Errorf("%w: %s field too long", ErrFormat, name)
		}
		sb.WriteByte(b)
	}
}
