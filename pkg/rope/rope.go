// Package rope implements a UTF-8-aware rope: a B-tree-backed string
// container supporting logarithmic random-access queries and sub-linear
// edits at arbitrary positions. It instantiates the generic tree in
// internal/rbtree with a bounded-length string Chunk and a
// (char_count, line_break_count) Info.
package rope

import (
	"unicode/utf8"

	"github.com/caretext/rope/internal/rbtree"
)

// Default tunables for production use: a 1 KiB leaf cap and an order
// chosen so an internal node's child slots fit a cache line's worth of
// entries.
const (
	DefaultMaxLen = 1024
	DefaultOrder  = 16
)

// Rope is an editable Unicode string backed by an order-B tree of
// bounded UTF-8 chunks.
type Rope struct {
	tree *rbtree.Tree[Chunk, Info]
}

// New returns an empty rope using the default production tunables.
func New() *Rope {
	return NewWithConfig(DefaultOrder, DefaultMaxLen)
}

// NewWithConfig returns an empty rope with the given fan-out and leaf
// byte cap. Tests typically use a small order/maxLen (e.g. 4/8) to
// exercise tree rebalancing without huge inputs.
func NewWithConfig(order, maxLen int) *Rope {
	return &Rope{tree: rbtree.New[Chunk, Info](order, maxLen, "")}
}

// FromString builds a rope from s in one pass, validating UTF-8 up
// front. Returns InvalidUTF8 if s is not valid UTF-8.
func FromString(s string) (*Rope, error) {
	return FromStringWithConfig(s, DefaultOrder, DefaultMaxLen)
}

// FromStringWithConfig is FromString with explicit tunables.
func FromStringWithConfig(s string, order, maxLen int) (*Rope, error) {
	if !utf8.ValidString(s) {
		return nil, errInvalidUTF8()
	}
	b := NewBuilderWithConfig(order, maxLen)
	b.PushChunk(s)
	return b.Build(), nil
}

// Clone returns a rope sharing this rope's internal nodes, O(1).
func (r *Rope) Clone() *Rope {
	return &Rope{tree: r.tree.Clone()}
}

// Len returns the rope's length in bytes.
func (r *Rope) Len() int { return r.tree.Len() }

// CharLen returns the rope's length in Unicode scalar values.
func (r *Rope) CharLen() int { return r.tree.Info().Chars }

// LineLen returns the number of lines: one more than the line-break
// count, since a trailing (possibly empty) line always exists.
func (r *Rope) LineLen() int { return r.tree.Info().Lines + 1 }

// IsCharBoundary reports whether byte index i lands on a UTF-8 scalar
// boundary (and not inside a CR LF pair).
func (r *Rope) IsCharBoundary(i int) bool {
	if i < 0 || i > r.Len() {
		return false
	}
	c := r.CursorAt(i)
	return c.isAtCharBoundary()
}

// ByteToChar returns the number of scalars in [0, i).
func (r *Rope) ByteToChar(i int) (int, error) {
	if i < 0 || i > r.Len() {
		return 0, errIndexOutOfBounds(i, r.Len())
	}
	return r.tree.IndexToInfo(i).Chars, nil
}

// ByteToLine returns the number of 0x0A bytes in [0, i).
func (r *Rope) ByteToLine(i int) (int, error) {
	if i < 0 || i > r.Len() {
		return 0, errIndexOutOfBounds(i, r.Len())
	}
	return r.tree.IndexToInfo(i).Lines, nil
}

// CharToByte returns the smallest character-boundary byte index i such
// that ByteToChar(i) == charIndex: the byte at which the charIndex-th
// scalar starts, or Len() when charIndex == CharLen().
func (r *Rope) CharToByte(charIndex int) (int, error) {
	if charIndex < 0 || charIndex > r.CharLen() {
		return 0, errIndexOutOfBounds(charIndex, r.CharLen())
	}
	if charIndex == 0 {
		return 0, nil
	}
	chunk, prefixLen, prefixInfo, ok := r.tree.SearchBy(func(_ int, info Info) bool {
		return charIndex <= info.Chars
	})
	if !ok {
		return r.Len(), nil
	}
	return prefixLen + chunk.charIndexToByteIndex(charIndex-prefixInfo.Chars), nil
}

// LineToByte returns the byte index immediately after the line-th
// 0x0A byte; 0 when line == 0.
func (r *Rope) LineToByte(line int) (int, error) {
	if line < 0 || line >= r.LineLen() {
		return 0, errIndexOutOfBounds(line, r.LineLen())
	}
	if line == 0 {
		return 0, nil
	}
	chunk, prefixLen, prefixInfo, ok := r.tree.SearchBy(func(_ int, info Info) bool {
		return line <= info.Lines
	})
	if !ok {
		return r.Len(), nil
	}
	return prefixLen + chunk.lineIndexToByteIndex(line-prefixInfo.Lines), nil
}

// Append concatenates other onto the end of r, repairing a CR LF seam
// that may straddle the join so that the pair is never split across
// chunks again.
func (r *Rope) Append(other *Rope) {
	if other.Len() == 0 {
		return
	}
	if r.Len() == 0 {
		r.tree = other.tree
		return
	}
	selfLast := r.lastByte()
	otherFirst := other.firstByte()
	if selfLast == 0x0D && otherFirst == 0x0A {
		r.tree.TruncateBack(r.Len() - 1)
		other.tree.TruncateFront(1)
		crlf, _ := FromStringWithConfig("\r\n", r.tree.Order(), r.tree.MaxLeaf())
		r.tree.Append(crlf.tree)
	}
	r.tree.Append(other.tree)
}

func (r *Rope) lastByte() byte {
	c := r.CursorBack()
	chunk, lo, hi := c.cur.Current()
	_ = lo
	if hi == 0 {
		return 0
	}
	return chunk[hi-1]
}

func (r *Rope) firstByte() byte {
	c := r.CursorFront()
	chunk, lo, hi := c.cur.Current()
	if hi <= lo {
		return 0
	}
	return chunk[lo]
}

// SplitOff truncates r to [0, at) and returns the [at, len) suffix as a
// new rope. at must be a character boundary.
func (r *Rope) SplitOff(at int) (*Rope, error) {
	if at < 0 || at > r.Len() {
		return nil, errIndexOutOfBounds(at, r.Len())
	}
	if !r.IsCharBoundary(at) {
		return nil, errInvalidBoundary(at)
	}
	right := r.tree.SplitOff(at)
	return &Rope{tree: right}, nil
}

// TruncateFront discards [0, start).
func (r *Rope) TruncateFront(start int) error {
	if start < 0 || start > r.Len() {
		return errIndexOutOfBounds(start, r.Len())
	}
	if !r.IsCharBoundary(start) {
		return errInvalidBoundary(start)
	}
	r.tree.TruncateFront(start)
	return nil
}

// TruncateBack discards [end, len).
func (r *Rope) TruncateBack(end int) error {
	if end < 0 || end > r.Len() {
		return errIndexOutOfBounds(end, r.Len())
	}
	if !r.IsCharBoundary(end) {
		return errInvalidBoundary(end)
	}
	r.tree.TruncateBack(end)
	return nil
}

// ReplaceRange replaces the byte range [start, end) with replacement's
// contents in place.
func (r *Rope) ReplaceRange(start, end int, replacement *Rope) error {
	if start < 0 || end > r.Len() || start > end {
		return errIndexOutOfBounds(end, r.Len())
	}
	if !r.IsCharBoundary(start) {
		return errInvalidBoundary(start)
	}
	if !r.IsCharBoundary(end) {
		return errInvalidBoundary(end)
	}
	if start == end {
		tail, _ := r.SplitOff(start)
		r.Append(replacement.Clone())
		r.Append(tail)
		return nil
	}
	other := r.Clone()
	if err := r.TruncateBack(start); err != nil {
		return err
	}
	if err := other.TruncateFront(end); err != nil {
		return err
	}
	r.Append(replacement.Clone())
	r.Append(other)
	return nil
}

// Slice returns a read-only view of the byte range [start, end).
func (r *Rope) Slice(start, end int) (*Slice, error) {
	if start < 0 || end > r.Len() || start > end {
		return nil, errIndexOutOfBounds(end, r.Len())
	}
	return &Slice{slice: r.tree.Slice(start, end), order: r.tree.Order(), maxLeaf: r.tree.MaxLeaf()}, nil
}

// String materializes the rope's full contents. Equivalent to
// concatenating Chunks().
func (r *Rope) String() string {
	var b []byte
	for _, c := range r.Chunks() {
		b = append(b, c...)
	}
	return string(b)
}

// Compare returns -1, 0, or 1 per the byte-lexicographic order of r and
// other's contents, regardless of internal chunking.
func (r *Rope) Compare(other *Rope) int {
	sa, _ := r.Slice(0, r.Len())
	sb, _ := other.Slice(0, other.Len())
	return sa.Compare(sb)
}
