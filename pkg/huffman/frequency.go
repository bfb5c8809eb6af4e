package huffman

import (
	"errors"
	"fmt"
	"io"

	"huf_go/pkg/bitstream"
)

// FrequencyEntry is a symbol and the number of times it occurs in the input.
type FrequencyEntry struct {
	Symbol byte
	Count  uint64
}

// Frequencies scans r once and returns one entry per distinct byte, in order of
// first occurrence. Tie-breaking in BuildTree depends on that order.
func Frequencies(r io.Reader) ([]FrequencyEntry, error) {
	br := bitstream.NewReader(r)

	var index [256]int // 1-based position in entries, 0 = unseen
	entries := make([]FrequencyEntry, 0, 16)
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("count frequencies: %w", err)
		}
		if i := index[b]; i != 0 {
			entries[i-1].Count++
			continue
		}
		entries = append(entries, FrequencyEntry{Symbol: b, Count: 1})
		index[b] = len(entries)
	}
}

// Total returns the sum of all counts, which equals the input length.
func Total(entries []FrequencyEntry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Count
	}
	return n
}
