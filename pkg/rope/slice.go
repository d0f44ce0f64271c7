package rope

import "github.com/caretext/rope/internal/rbtree"

// Slice is an immutable, O(log n)-constructed view of a contiguous byte
// range of a rope. No data is copied; CharLen and LineLen are the
// difference of the endpoints' precomputed Info, so they don't
// re-descend from the rope's root. A Slice has no per-index
// conversions of its own.
type Slice struct {
	slice   *rbtree.Slice[Chunk, Info]
	order   int
	maxLeaf int
}

// Len returns the slice's byte length.
func (s *Slice) Len() int { return s.slice.Len() }

// CharLen returns the slice's length in scalars.
func (s *Slice) CharLen() int {
	return s.slice.EndInfo.Sub(s.slice.StartInfo).Chars
}

// LineLen returns the slice's line count.
func (s *Slice) LineLen() int {
	return s.slice.EndInfo.Sub(s.slice.StartInfo).Lines + 1
}

// ToRope materializes the slice as a standalone rope.
func (s *Slice) ToRope() *Rope {
	return &Rope{tree: s.slice.ToTree(s.order, s.maxLeaf)}
}

// CursorFront returns a cursor at the slice's start.
func (s *Slice) CursorFront() *Cursor { return &Cursor{cur: s.slice.CursorFront()} }

// CursorBack returns a cursor at the slice's end.
func (s *Slice) CursorBack() *Cursor { return &Cursor{cur: s.slice.CursorBack()} }

// CursorAt returns a cursor at the slice-relative position pos.
func (s *Slice) CursorAt(pos int) *Cursor { return &Cursor{cur: s.slice.CursorAt(pos)} }

// Chunks returns the slice's leaf substrings in order, each trimmed to
// the slice's boundary.
func (s *Slice) Chunks() []string { return collectChunks(s.CursorFront()) }

// ChunksRev returns the slice's leaf substrings in reverse order.
func (s *Slice) ChunksRev() []string { return collectChunksRev(s.CursorBack()) }

// Compare performs a lexicographic byte comparison against other by
// joining each slice's chunks into a string and comparing the two
// strings.
func (s *Slice) Compare(other *Slice) int {
	ca := s.Chunks()
	cb := other.Chunks()
	a, b := joinChunks(ca), joinChunks(cb)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func joinChunks(chunks []string) string {
	var b []byte
	for _, c := range chunks {
		b = append(b, c...)
	}
	return string(b)
}
