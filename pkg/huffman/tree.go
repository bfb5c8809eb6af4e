// Package huffman builds static Huffman trees, derives code tables from them
// and rebuilds trees from stored code tables for decoding.
package huffman

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"huf_go/pkg/bitstream"
)

var (
	ErrInvalidTable          = errors.New("invalid code table")
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")
)

// none marks a missing child or an empty tree.
const none = -1

/*** ---------- 데이터 구조 ---------- ***/

// Node는 아레나의 한 칸이에요. 자식은 같은 아레나의 핸들이에요.
type Node struct {
	Symbol      byte
	Weight      uint64
	Left, Right int
	leaf        bool
}

func (n Node) IsLeaf() bool { return n.leaf }

// Tree is an arena of nodes. Handles stay valid for the life of the tree.
type Tree struct {
	nodes []Node
	root  int
}

func (t *Tree) Root() int       { return t.root }
func (t *Tree) Node(h int) Node { return t.nodes[h] }
func (t *Tree) Len() int        { return len(t.nodes) }
func (t *Tree) Empty() bool     { return t.root == none }

func (t *Tree) child(h int, bit uint8) int {
	if bit == 0 {
		return t.nodes[h].Left
	}
	return t.nodes[h].Right
}

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func newLeaf(sym byte, weight uint64) Node {
	return Node{Symbol: sym, Weight: weight, Left: none, Right: none, leaf: true}
}

/*** ---------- 트리 구성 (동률은 현재 순서 유지) ---------- ***/

// BuildTree merges the two lightest nodes until one remains. The working set is
// stable-sorted by weight every round, so equal weights keep their current order;
// the lower one becomes the left child and the merged node goes to the back.
func BuildTree(entries []FrequencyEntry) *Tree {
	t := &Tree{root: none, nodes: make([]Node, 0, 2*len(entries))}
	work := make([]int, 0, len(entries))
	for _, e := range entries {
		work = append(work, t.add(newLeaf(e.Symbol, e.Count)))
	}

	for len(work) > 1 {
		sort.SliceStable(work, func(i, j int) bool {
			return t.nodes[work[i]].Weight < t.nodes[work[j]].Weight
		})
		l, r := work[0], work[1]
		merged := t.add(Node{
			Weight: t.nodes[l].Weight + t.nodes[r].Weight,
			Left:   l,
			Right:  r,
		})
		work = append(work[2:], merged)
	}
	if len(work) == 1 {
		t.root = work[0]
	}
	return t
}

/*** ---------- 코드표로 트리 복원 ---------- ***/

// Reconstruct rebuilds a decoding tree from a stored code table by walking each
// code from the root and creating branch nodes on demand. Weights are not kept.
func Reconstruct(table CodeTable) (*Tree, error) {
	t := &Tree{root: none}
	if len(table) == 0 {
		return t, nil
	}
	t.root = t.add(Node{Left: none, Right: none})

	var seen [256]bool
	for _, e := range table {
		if len(e.Code) == 0 {
			return nil, fmt.Errorf("%w: symbol %d has an empty code", ErrInvalidTable, e.Symbol)
		}
		if seen[e.Symbol] {
			return nil, fmt.Errorf("%w: symbol %d appears twice", ErrInvalidTable, e.Symbol)
		}
		seen[e.Symbol] = true

		h := t.root
		for _, bit := range e.Code {
			if bit > 1 {
				return nil, fmt.Errorf("%w: symbol %d: bit value %d", ErrInvalidTable, e.Symbol, bit)
			}
			if t.nodes[h].leaf {
				return nil, fmt.Errorf("%w: code %s of symbol %d extends another code", ErrInvalidTable, e.Code, e.Symbol)
			}
			next := t.child(h, bit)
			if next == none {
				next = t.add(Node{Left: none, Right: none})
				if bit == 0 {
					t.nodes[h].Left = next
				} else {
					t.nodes[h].Right = next
				}
			}
			h = next
		}

		n := &t.nodes[h]
		if n.leaf || n.Left != none || n.Right != none {
			return nil, fmt.Errorf("%w: code %s of symbol %d is a prefix of another code", ErrInvalidTable, e.Code, e.Symbol)
		}
		n.leaf = true
		n.Symbol = e.Symbol
	}
	return t, nil
}

/*** ---------- 디코딩 ---------- ***/

// Decode reads bits from r and writes exactly n symbols to w. Trailing bits
// past the n-th symbol are left unread.
func (t *Tree) Decode(r *bitstream.Reader, n uint64, w io.ByteWriter) error {
	if n == 0 {
		return nil
	}
	if t.Empty() {
		return fmt.Errorf("%w: empty tree for %d symbols", ErrInvalidTable, n)
	}
	if !r.BitMode() {
		r.SetBitMode(true)
	}

	for i := uint64(0); i < n; i++ {
		h := t.root
		// 루트가 리프 하나뿐이어도 코드 "0" 한 비트를 소비해요
		if t.nodes[h].leaf {
			if _, err := readBit(r, i, n); err != nil {
				return err
			}
		}
		for !t.nodes[h].leaf {
			bit, err := readBit(r, i, n)
			if err != nil {
				return err
			}
			h = t.child(h, bit)
			if h == none {
				return fmt.Errorf("%w: dead end after %d symbols", ErrInvalidTable, i)
			}
		}
		if err := w.WriteByte(t.nodes[h].Symbol); err != nil {
			return err
		}
	}
	return nil
}

func readBit(r *bitstream.Reader, decoded, want uint64) (uint8, error) {
	if !r.HasNextBit() {
		return 0, fmt.Errorf("%w: decoded %d of %d symbols", ErrUnexpectedEndOfStream, decoded, want)
	}
	bit, err := r.ReadBit()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: decoded %d of %d symbols", ErrUnexpectedEndOfStream, decoded, want)
	}
	return bit, err
}
