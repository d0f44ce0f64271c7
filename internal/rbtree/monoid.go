// Package rbtree implements a generic order-B tree keyed by cumulative
// length, with a secondary "summary" monoid cached per subtree. It knows
// nothing about strings, UTF-8, or lines — that belongs to the layer
// built on top (see pkg/rope). Keeping this layer generic lets an
// alternate summary (UTF-16 code units, syntax-tree span roots, ...) be
// added later without touching the tree itself.
package rbtree

// Info is a commutative monoid: Add is associative and commutative, and
// the zero value of I must be the identity element. Sub is the inverse
// of Add and is used for slice-delta arithmetic (a.Sub(b) where a >= b
// component-wise).
type Info[I any] interface {
	Add(other I) I
	Sub(other I) I
}

// Chunk is a leaf payload: a variable-length contiguous sequence of
// items bounded by a caller-chosen MAX_LEN. Slice and Append are the
// only structural primitives the tree needs — prefix/suffix shifting
// between adjacent chunks (the "shift_left"/"shift_right" described for
// rope leaves) is expressed generically here as Append-then-Slice, so
// Chunk implementations don't need their own shifting logic.
type Chunk[C any, I any] interface {
	// Len returns the chunk's length in the tree's base unit (bytes,
	// for the string rope).
	Len() int

	// IsBoundary reports whether index i is a legal split point for
	// this chunk. Must hold for i == 0 and i == Len().
	IsBoundary(i int) bool

	// Slice returns the sub-chunk covering [start, end). Both bounds
	// must be legal boundaries.
	Slice(start, end int) C

	// Summary derives this chunk's Info.
	Summary() I

	// Append concatenates other onto this chunk and returns the
	// result. Used both to merge undersized leaves and to extend the
	// builder's scratch buffer.
	Append(other C) C
}
