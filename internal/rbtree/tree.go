package rbtree

const defaultOrder = 16

// Tree is a generic order-B tree over (Chunk, Info). The zero value is
// not usable; construct with New or a Builder.
type Tree[C Chunk[C, I], I Info[I]] struct {
	root    *node[C, I]
	order   int
	maxLeaf int
}

// New returns an empty tree: a single empty leaf, per the invariant
// that the tree never contains zero leaves.
func New[C Chunk[C, I], I Info[I]](order, maxLeaf int, empty C) *Tree[C, I] {
	if order < 2 {
		order = defaultOrder
	}
	return &Tree[C, I]{root: newLeaf[C, I](empty), order: order, maxLeaf: maxLeaf}
}

// Clone returns a tree sharing this tree's internal nodes. O(1): nodes
// are immutable, so no copying is needed until a mutation uniquifies
// the affected path.
func (t *Tree[C, I]) Clone() *Tree[C, I] {
	return &Tree[C, I]{root: t.root, order: t.order, maxLeaf: t.maxLeaf}
}

// Len returns the tree's length in the base unit, O(1).
func (t *Tree[C, I]) Len() int { return t.root.length() }

// Info returns the aggregate Info of the whole tree, O(1).
func (t *Tree[C, I]) Info() I { return t.root.info() }

// Order returns the tree's configured fan-out.
func (t *Tree[C, I]) Order() int { return t.order }

// MaxLeaf returns the tree's configured leaf byte cap.
func (t *Tree[C, I]) MaxLeaf() int { return t.maxLeaf }

// SearchBy returns the first leaf whose inclusive prefix aggregate
// satisfies pred, along with the length and info accumulated strictly
// before that leaf. pred must be monotone: once true for a given
// (length, info) it must stay true as both only grow. Returns ok=false
// when pred does not hold even for the aggregate of the whole tree
// (which includes an empty tree whose sole leaf never satisfies pred).
func (t *Tree[C, I]) SearchBy(pred func(length int, info I) bool) (chunk C, prefixLen int, prefixInfo I, ok bool) {
	n := t.root
	var cumLen int
	var cumInfo I
	for !n.leaf {
		advanced := false
		for _, e := range n.children {
			tryLen := cumLen + e.ln
			tryInfo := cumInfo.Add(e.info)
			if pred(tryLen, tryInfo) {
				n = e.kid
				advanced = true
				break
			}
			cumLen = tryLen
			cumInfo = tryInfo
		}
		if !advanced {
			if len(n.children) == 0 {
				var zero C
				return zero, cumLen, cumInfo, false
			}
			last := n.children[len(n.children)-1]
			n = last.kid
		}
	}
	if !pred(cumLen+n.chunk.Len(), cumInfo.Add(n.chunk.Summary())) {
		return n.chunk, cumLen, cumInfo, false
	}
	return n.chunk, cumLen, cumInfo, true
}

// IndexToInfo descends to the leaf containing byteIndex and returns the
// Info of the prefix [0, byteIndex).
func (t *Tree[C, I]) IndexToInfo(byteIndex int) I {
	return indexToInfo[C, I](t.root, byteIndex)
}

func indexToInfo[C Chunk[C, I], I Info[I]](root *node[C, I], byteIndex int) I {
	chunk, prefixLen, prefixInfo, ok := searchNode[C, I](root, func(length int, _ I) bool { return length >= byteIndex })
	if !ok {
		return root.info()
	}
	offset := byteIndex - prefixLen
	return prefixInfo.Add(chunk.Slice(0, offset).Summary())
}

func searchNode[C Chunk[C, I], I Info[I]](root *node[C, I], pred func(int, I) bool) (C, int, I, bool) {
	n := root
	var cumLen int
	var cumInfo I
	for !n.leaf {
		advanced := false
		for _, e := range n.children {
			tryLen := cumLen + e.ln
			tryInfo := cumInfo.Add(e.info)
			if pred(tryLen, tryInfo) {
				n = e.kid
				advanced = true
				break
			}
			cumLen = tryLen
			cumInfo = tryInfo
		}
		if !advanced {
			if len(n.children) == 0 {
				var zero C
				return zero, cumLen, cumInfo, false
			}
			n = n.children[len(n.children)-1].kid
		}
	}
	return n.chunk, cumLen, cumInfo, true
}

// nearestBoundaryAtMost walks backward from min(at, c.Len()) to find the
// closest legal split boundary <= at. Always terminates because
// IsBoundary(0) must hold.
func nearestBoundaryAtMost[C Chunk[C, I], I Info[I]](c C, at int) int {
	if at > c.Len() {
		at = c.Len()
	}
	for at > 0 && !c.IsBoundary(at) {
		at--
	}
	return at
}

// nearestBoundary searches outward from target for the closest legal
// boundary in either direction, preferring the left side on a tie.
func nearestBoundary[C Chunk[C, I], I Info[I]](c C, target int) int {
	if target < 0 {
		target = 0
	}
	if target > c.Len() {
		target = c.Len()
	}
	for d := 0; ; d++ {
		lo, hi := target-d, target+d
		if lo < 0 && hi > c.Len() {
			return 0
		}
		if lo >= 0 && c.IsBoundary(lo) {
			return lo
		}
		if hi <= c.Len() && c.IsBoundary(hi) {
			return hi
		}
	}
}

// Append concatenates other onto the end of t, consuming other (callers
// should not continue to use other afterwards, matching move semantics
// of the teacher's single-owner store).
func (t *Tree[C, I]) Append(other *Tree[C, I]) {
	if other.Len() == 0 {
		return
	}
	if t.Len() == 0 {
		t.root = other.root
		return
	}
	entries := appendAt[C, I](t.root, other.root, t.order, t.maxLeaf)
	t.root = buildNodeFromChildren[C, I](entries)
}

func appendAt[C Chunk[C, I], I Info[I]](a, b *node[C, I], order, maxLeaf int) []entry[C, I] {
	if a.leaf && b.leaf {
		return mergeLeaves[C, I](a, b, maxLeaf)
	}
	ha, hb := height[C, I](a), height[C, I](b)
	switch {
	case ha == hb:
		return []entry[C, I]{wrapEntry[C, I](a), wrapEntry[C, I](b)}
	case ha > hb:
		lastIdx := len(a.children) - 1
		sub := appendAt[C, I](a.children[lastIdx].kid, b, order, maxLeaf)
		children := append(append([]entry[C, I]{}, a.children[:lastIdx]...), sub...)
		return splitIfNeeded[C, I](children, order)
	default:
		sub := appendAt[C, I](a, b.children[0].kid, order, maxLeaf)
		children := append(append([]entry[C, I]{}, sub...), b.children[1:]...)
		return splitIfNeeded[C, I](children, order)
	}
}

func splitIfNeeded[C Chunk[C, I], I Info[I]](children []entry[C, I], order int) []entry[C, I] {
	if len(children) <= order {
		return []entry[C, I]{wrapEntry[C, I](buildNodeFromChildren[C, I](children))}
	}
	mid := len(children) / 2
	left := buildNodeFromChildren[C, I](append([]entry[C, I]{}, children[:mid]...))
	right := buildNodeFromChildren[C, I](append([]entry[C, I]{}, children[mid:]...))
	return []entry[C, I]{wrapEntry[C, I](left), wrapEntry[C, I](right)}
}

func mergeLeaves[C Chunk[C, I], I Info[I]](a, b *node[C, I], maxLeaf int) []entry[C, I] {
	combined := a.chunk.Append(b.chunk)
	if combined.Len() <= maxLeaf {
		return []entry[C, I]{wrapEntry[C, I](newLeaf[C, I](combined))}
	}
	min := maxLeaf / 2
	split := a.chunk.Len()
	if split < min || combined.Len()-split < min {
		split = nearestBoundary[C, I](combined, combined.Len()/2)
	} else {
		split = nearestBoundaryAtMost[C, I](combined, split)
	}
	left := combined.Slice(0, split)
	right := combined.Slice(split, combined.Len())
	return []entry[C, I]{wrapEntry[C, I](newLeaf[C, I](left)), wrapEntry[C, I](newLeaf[C, I](right))}
}

// SplitOff truncates t to [0, at) and returns the [at, len) suffix as a
// new tree.
func (t *Tree[C, I]) SplitOff(at int) *Tree[C, I] {
	left, right := splitAt[C, I](t.root, at, t.order)
	t.root = left
	return &Tree[C, I]{root: right, order: t.order, maxLeaf: t.maxLeaf}
}

// TruncateFront discards [0, start), keeping [start, len).
func (t *Tree[C, I]) TruncateFront(start int) {
	_, right := splitAt[C, I](t.root, start, t.order)
	t.root = right
}

// TruncateBack discards [end, len), keeping [0, end).
func (t *Tree[C, I]) TruncateBack(end int) {
	left, _ := splitAt[C, I](t.root, end, t.order)
	t.root = left
}

func splitAt[C Chunk[C, I], I Info[I]](n *node[C, I], at int, order int) (*node[C, I], *node[C, I]) {
	if n.leaf {
		boundary := nearestBoundaryAtMost[C, I](n.chunk, at)
		left := n.chunk.Slice(0, boundary)
		right := n.chunk.Slice(boundary, n.chunk.Len())
		return newLeaf[C, I](left), newLeaf[C, I](right)
	}
	cum := 0
	idx := len(n.children) - 1
	for i, e := range n.children {
		if at <= cum+e.ln {
			idx = i
			break
		}
		cum += e.ln
	}
	localAt := at - cum
	childLeft, childRight := splitAt[C, I](n.children[idx].kid, localAt, order)

	leftChildren := splitSideChildren[C, I](n.children[:idx], childLeft, nil)
	rightChildren := splitSideChildren[C, I](nil, childRight, n.children[idx+1:])

	left := collapseSplitSide[C, I](leftChildren, childLeft, order)
	right := collapseSplitSide[C, I](rightChildren, childRight, order)
	return left, right
}

// isEmptyLeaf reports whether n is the zero-length leaf a split
// manufactures when the split point lands exactly on an existing
// child's boundary.
func isEmptyLeaf[C Chunk[C, I], I Info[I]](n *node[C, I]) bool {
	return n.leaf && n.chunk.Len() == 0
}

// splitSideChildren assembles one side of an internal split from the
// untouched siblings plus the freshly split child, dropping the child
// when it came out as an empty leaf rather than threading a persistent
// empty leaf into the tree alongside real siblings.
func splitSideChildren[C Chunk[C, I], I Info[I]](before []entry[C, I], child *node[C, I], after []entry[C, I]) []entry[C, I] {
	children := append([]entry[C, I]{}, before...)
	if !isEmptyLeaf[C, I](child) {
		children = append(children, wrapEntry[C, I](child))
	}
	return append(children, after...)
}

// collapseSplitSide builds one side of a split from its already-filtered
// children, falling back to the split's own empty leaf when every child
// on this side was empty: the tree never contains an empty leaf except
// when it is the entire, empty rope.
func collapseSplitSide[C Chunk[C, I], I Info[I]](children []entry[C, I], emptyCandidate *node[C, I], order int) *node[C, I] {
	if len(children) == 0 {
		return emptyCandidate
	}
	return buildNodeFromChildren[C, I](fixLevel[C, I](children, order))
}

// Slice is an immutable O(log n) view (root, start, end) with
// precomputed endpoint Info, so that queries within the slice need not
// re-descend from the tree root for the start offset.
type Slice[C Chunk[C, I], I Info[I]] struct {
	root             *node[C, I]
	Start, End       int
	StartInfo, EndInfo I
}

// Slice returns a view of the byte range [start, end). No data is
// copied.
func (t *Tree[C, I]) Slice(start, end int) *Slice[C, I] {
	return &Slice[C, I]{
		root:      t.root,
		Start:     start,
		End:       end,
		StartInfo: indexToInfo[C, I](t.root, start),
		EndInfo:   indexToInfo[C, I](t.root, end),
	}
}

// ToTree materializes the slice as a standalone tree.
func (s *Slice[C, I]) ToTree(order, maxLeaf int) *Tree[C, I] {
	left, _ := splitAt[C, I](s.root, s.End, order)
	_, mid := splitAt[C, I](left, s.Start, order)
	return &Tree[C, I]{root: mid, order: order, maxLeaf: maxLeaf}
}

// Len returns the slice's byte length.
func (s *Slice[C, I]) Len() int { return s.End - s.Start }

