package rope

import "github.com/caretext/rope/internal/rbtree"

// Builder streams arbitrary-length string pieces into chunk-sized
// leaves and assembles a balanced rope without the O(n log n) cost of
// repeated Append calls.
type Builder struct {
	b *rbtree.Builder[Chunk, Info]
}

// NewBuilder returns a Builder using the default production tunables.
func NewBuilder() *Builder { return NewBuilderWithConfig(DefaultOrder, DefaultMaxLen) }

// NewBuilderWithConfig returns a Builder with explicit tunables.
func NewBuilderWithConfig(order, maxLen int) *Builder {
	return &Builder{b: rbtree.NewBuilder[Chunk, Info](order, maxLen, "")}
}

// PushChunk streams s into the builder's scratch buffer, flushing full
// leaves as they fill. Before splitting a chunk, the split index is
// walked backward to the nearest legal boundary so emitted leaves
// always satisfy the chunk boundary invariant.
func (b *Builder) PushChunk(s string) {
	b.b.Push(Chunk(s))
}

// Build finishes the rope, flushing any buffered scratch content.
func (b *Builder) Build() *Rope {
	return &Rope{tree: b.b.Build()}
}
