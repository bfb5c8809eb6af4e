package huffman

import (
	"fmt"
	"strings"
)

// Code is a sequence of bits, one per element, each 0 or 1.
type Code []uint8

// ParseCode parses a string of '0' and '1' characters.
func ParseCode(s string) (Code, error) {
	c := make(Code, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			c[i] = 1
		default:
			return nil, fmt.Errorf("%w: bad code character %q", ErrInvalidTable, s[i])
		}
	}
	return c, nil
}

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, b := range c {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

func (c Code) with(bit uint8) Code {
	out := make(Code, len(c)+1)
	copy(out, c)
	out[len(c)] = bit
	return out
}

type CodeEntry struct {
	Symbol byte
	Code   Code
}

// CodeTable lists codes in the order they are stored in the container.
type CodeTable []CodeEntry

// Lookup indexes the table by symbol. Symbols without a code map to nil.
func (ct CodeTable) Lookup() [256]Code {
	var out [256]Code
	for _, e := range ct {
		out[e.Symbol] = e.Code
	}
	return out
}

// GenerateCodes walks the tree pre-order, left ('0') before right ('1'), and
// emits one entry per leaf. A tree that is a single leaf gets the code "0" so
// no code is ever empty.
func GenerateCodes(t *Tree) CodeTable {
	if t.Empty() {
		return nil
	}
	if root := t.nodes[t.root]; root.leaf {
		return CodeTable{{Symbol: root.Symbol, Code: Code{0}}}
	}

	type frame struct {
		h    int
		code Code
	}
	table := make(CodeTable, 0, (len(t.nodes)+1)/2)
	stack := []frame{{h: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.h]
		if n.leaf {
			table = append(table, CodeEntry{Symbol: n.Symbol, Code: f.code})
			continue
		}
		// 왼쪽을 먼저 방문하도록 오른쪽을 먼저 push
		stack = append(stack,
			frame{h: n.Right, code: f.code.with(1)},
			frame{h: n.Left, code: f.code.with(0)},
		)
	}
	return table
}
