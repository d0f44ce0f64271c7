package rbtree

// entry is a child slot: a pointer to the child subtree plus the
// cached (length, info) pair for that subtree, per the spec's "internal
// node caches, for each child, the true sum over that child's subtree"
// invariant.
type entry[C Chunk[C, I], I Info[I]] struct {
	kid  *node[C, I]
	ln   int
	info I
}

// node is either a leaf owning one chunk or an internal node owning an
// ordered list of child entries. Nodes are immutable once constructed:
// every mutating tree operation builds new nodes along the affected
// path and leaves untouched subtrees shared between old and new trees,
// which is what makes Clone (a shallow copy of the root pointer) O(1).
type node[C Chunk[C, I], I Info[I]] struct {
	leaf     bool
	chunk    C
	children []entry[C, I]
}

func newLeaf[C Chunk[C, I], I Info[I]](c C) *node[C, I] {
	return &node[C, I]{leaf: true, chunk: c}
}

func newInternal[C Chunk[C, I], I Info[I]](children []entry[C, I]) *node[C, I] {
	return &node[C, I]{leaf: false, children: children}
}

func (n *node[C, I]) length() int {
	if n.leaf {
		return n.chunk.Len()
	}
	total := 0
	for _, e := range n.children {
		total += e.ln
	}
	return total
}

func (n *node[C, I]) info() I {
	if n.leaf {
		return n.chunk.Summary()
	}
	var acc I
	for _, e := range n.children {
		acc = acc.Add(e.info)
	}
	return acc
}

func wrapEntry[C Chunk[C, I], I Info[I]](n *node[C, I]) entry[C, I] {
	return entry[C, I]{kid: n, ln: n.length(), info: n.info()}
}

func height[C Chunk[C, I], I Info[I]](n *node[C, I]) int {
	h := 1
	for !n.leaf {
		h++
		n = n.children[0].kid
	}
	return h
}

// distribute splits n items into groups, each in [ceil(order/2), order]
// (the internal-node fan-out invariant), returning the size of each
// group. Requires n >= 1.
func distribute(n, order int) []int {
	if n <= order {
		return []int{n}
	}
	k := (n + order - 1) / order
	base := n / k
	extra := n % k
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

func minChildren(order int) int {
	return (order + 1) / 2
}

// buildNodeFromChildren collapses a single-entry list down to its sole
// child (no internal node may have exactly one child) and otherwise
// wraps the list as a fresh internal node.
func buildNodeFromChildren[C Chunk[C, I], I Info[I]](children []entry[C, I]) *node[C, I] {
	for len(children) == 1 && !children[0].kid.leaf {
		children = children[0].kid.children
	}
	if len(children) == 1 {
		return children[0].kid
	}
	return newInternal[C, I](children)
}

// fixLevel repairs an under-full child one level down by flattening it
// with its siblings and redistributing, per the "rebalance under-full
// nodes along both spines" step of split/append. It is a local,
// single-pass repair rather than a full recursive rebalance.
func fixLevel[C Chunk[C, I], I Info[I]](children []entry[C, I], order int) []entry[C, I] {
	if len(children) <= 1 {
		return children
	}
	min := minChildren(order)
	underfull := false
	for _, e := range children {
		if !e.kid.leaf && len(e.kid.children) < min {
			underfull = true
			break
		}
	}
	if !underfull {
		return children
	}
	var flat []entry[C, I]
	for _, e := range children {
		if e.kid.leaf {
			flat = append(flat, e)
			continue
		}
		flat = append(flat, e.kid.children...)
	}
	if len(flat) == 0 {
		return children
	}
	sizes := distribute(len(flat), order)
	out := make([]entry[C, I], 0, len(sizes))
	idx := 0
	for _, sz := range sizes {
		group := append([]entry[C, I]{}, flat[idx:idx+sz]...)
		idx += sz
		out = append(out, wrapEntry[C, I](buildNodeFromChildren[C, I](group)))
	}
	return out
}

// buildTree builds a perfectly balanced tree bottom-up from an ordered
// list of leaf entries, used by both Builder and the append/split
// reconstruction paths.
func buildTree[C Chunk[C, I], I Info[I]](leaves []entry[C, I], order int) *node[C, I] {
	if len(leaves) == 0 {
		return nil
	}
	level := leaves
	for len(level) > 1 {
		sizes := distribute(len(level), order)
		next := make([]entry[C, I], 0, len(sizes))
		idx := 0
		for _, sz := range sizes {
			group := append([]entry[C, I]{}, level[idx:idx+sz]...)
			idx += sz
			next = append(next, wrapEntry[C, I](newInternal[C, I](group)))
		}
		level = next
	}
	return level[0].kid
}
