package rbtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInfo counts bytes and vowels, just enough structure to exercise
// the Add/Sub monoid contract independently of pkg/rope's Info.
type testInfo struct {
	Bytes  int
	Vowels int
}

func (i testInfo) Add(o testInfo) testInfo { return testInfo{i.Bytes + o.Bytes, i.Vowels + o.Vowels} }
func (i testInfo) Sub(o testInfo) testInfo { return testInfo{i.Bytes - o.Bytes, i.Vowels - o.Vowels} }

// testChunk treats every byte offset as a legal boundary, which is
// simpler than the UTF-8 rule pkg/rope needs but exercises the same
// Slice/Append/Summary contract.
type testChunk string

func (c testChunk) Len() int                { return len(c) }
func (c testChunk) IsBoundary(i int) bool    { return i >= 0 && i <= len(c) }
func (c testChunk) Slice(s, e int) testChunk { return c[s:e] }
func (c testChunk) Append(o testChunk) testChunk { return c + o }
func (c testChunk) Summary() testInfo {
	v := 0
	for _, r := range string(c) {
		if strings.ContainsRune("aeiouAEIOU", r) {
			v++
		}
	}
	return testInfo{Bytes: len(c), Vowels: v}
}

func buildFromString(t *testing.T, s string, order, maxLeaf int) *Tree[testChunk, testInfo] {
	t.Helper()
	b := NewBuilder[testChunk, testInfo](order, maxLeaf, "")
	for i := 0; i < len(s); i += maxLeaf {
		end := i + maxLeaf
		if end > len(s) {
			end = len(s)
		}
		b.Push(testChunk(s[i:end]))
	}
	return b.Build()
}

func treeString(tr *Tree[testChunk, testInfo]) string {
	var sb strings.Builder
	n := tr.root
	var walk func(n *node[testChunk, testInfo])
	walk = func(n *node[testChunk, testInfo]) {
		if n.leaf {
			sb.WriteString(string(n.chunk))
			return
		}
		for _, e := range n.children {
			walk(e.kid)
		}
	}
	walk(n)
	return sb.String()
}

func TestEmptyTree(t *testing.T) {
	tr := New[testChunk, testInfo](4, 8, "")
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, testInfo{}, tr.Info())
}

func TestBuilderRoundTrip(t *testing.T) {
	s := "the quick brown fox jumps over the lazy dog"
	tr := buildFromString(t, s, 4, 8)
	assert.Equal(t, len(s), tr.Len())
	assert.Equal(t, s, treeString(tr))
}

func TestBuilderSummaryMatchesWholeString(t *testing.T) {
	s := "hello world, this is a reasonably long string of english text"
	tr := buildFromString(t, s, 4, 8)
	want := testChunk(s).Summary()
	assert.Equal(t, want, tr.Info())
}

func TestAppendConcatenates(t *testing.T) {
	left := buildFromString(t, "hello, ", 4, 4)
	right := buildFromString(t, "world!", 4, 4)
	left.Append(right)
	assert.Equal(t, "hello, world!", treeString(left))
	assert.Equal(t, len("hello, world!"), left.Len())
}

func TestAppendEmptyIsNoop(t *testing.T) {
	left := buildFromString(t, "abc", 4, 4)
	empty := New[testChunk, testInfo](4, 4, "")
	left.Append(empty)
	assert.Equal(t, "abc", treeString(left))
}

func TestSplitOff(t *testing.T) {
	s := "0123456789abcdef"
	tr := buildFromString(t, s, 4, 4)

	tail := tr.SplitOff(10)
	assert.Equal(t, s[:10], treeString(tr))
	assert.Equal(t, s[10:], treeString(tail))
}

func TestTruncateFrontAndBack(t *testing.T) {
	s := "0123456789abcdef"
	front := buildFromString(t, s, 4, 4)
	front.TruncateFront(4)
	assert.Equal(t, s[4:], treeString(front))

	back := buildFromString(t, s, 4, 4)
	back.TruncateBack(4)
	assert.Equal(t, s[:4], treeString(back))
}

func TestSliceToTree(t *testing.T) {
	s := "abcdefghijklmnop"
	tr := buildFromString(t, s, 4, 4)
	sl := tr.Slice(3, 9)
	assert.Equal(t, 6, sl.Len())

	sub := sl.ToTree(4, 4)
	assert.Equal(t, s[3:9], treeString(sub))
}

func TestIndexToInfo(t *testing.T) {
	s := "aeiou bcdfg aeiou"
	tr := buildFromString(t, s, 4, 4)
	info := tr.IndexToInfo(5)
	assert.Equal(t, testChunk(s[:5]).Summary(), info)
}

func TestSearchByFindsLeafAtBoundary(t *testing.T) {
	s := strings.Repeat("x", 40)
	tr := buildFromString(t, s, 4, 4)
	_, prefixLen, _, ok := tr.SearchBy(func(length int, _ testInfo) bool { return length >= 20 })
	require.True(t, ok)
	assert.LessOrEqual(t, prefixLen, 20)
}

func TestNoInternalNodeHasExactlyOneChild(t *testing.T) {
	s := strings.Repeat("abcdefgh", 30)
	tr := buildFromString(t, s, 4, 4)

	var check func(n *node[testChunk, testInfo])
	check = func(n *node[testChunk, testInfo]) {
		if n.leaf {
			return
		}
		assert.NotEqual(t, 1, len(n.children), "internal node must never have exactly one child")
		for _, e := range n.children {
			check(e.kid)
		}
	}
	check(tr.root)
}

func TestAllLeavesAtEqualDepth(t *testing.T) {
	s := strings.Repeat("0123456789", 50)
	tr := buildFromString(t, s, 4, 4)

	depths := map[int]bool{}
	var walk func(n *node[testChunk, testInfo], depth int)
	walk = func(n *node[testChunk, testInfo], depth int) {
		if n.leaf {
			depths[depth] = true
			return
		}
		for _, e := range n.children {
			walk(e.kid, depth+1)
		}
	}
	walk(tr.root, 0)
	assert.Len(t, depths, 1, "every leaf must be at the same depth")
}

func assertNoEmptyLeaves(t *testing.T, n *node[testChunk, testInfo], wholeTreeLen int) {
	t.Helper()
	if n.leaf {
		if wholeTreeLen != 0 {
			assert.NotEqual(t, 0, n.chunk.Len(), "tree must never contain an empty leaf except when the whole tree is empty")
		}
		return
	}
	for _, e := range n.children {
		assertNoEmptyLeaves(t, e.kid, wholeTreeLen)
	}
}

func TestSplitAtExactLeafBoundaryProducesNoEmptyLeaf(t *testing.T) {
	s := strings.Repeat("abcd", 8) // eight 4-byte leaves with maxLeaf=4

	for at := 0; at <= len(s); at += 4 {
		front := buildFromString(t, s, 4, 4)
		tail := front.SplitOff(at)
		assertNoEmptyLeaves(t, front.root, front.Len())
		assertNoEmptyLeaves(t, tail.root, tail.Len())
		assert.Equal(t, s[:at], treeString(front))
		assert.Equal(t, s[at:], treeString(tail))
	}

	for at := 0; at <= len(s); at += 4 {
		truncFront := buildFromString(t, s, 4, 4)
		truncFront.TruncateFront(at)
		assertNoEmptyLeaves(t, truncFront.root, truncFront.Len())

		truncBack := buildFromString(t, s, 4, 4)
		truncBack.TruncateBack(at)
		assertNoEmptyLeaves(t, truncBack.root, truncBack.Len())
	}
}

func TestNoEmptyLeavesAcrossRandomSplits(t *testing.T) {
	s := strings.Repeat("0123456789", 20)
	for at := 0; at < len(s); at += 7 { // odd stride to also hit non-boundary splits
		tr := buildFromString(t, s, 4, 4)
		tail := tr.SplitOff(at)
		assertNoEmptyLeaves(t, tr.root, tr.Len())
		assertNoEmptyLeaves(t, tail.root, tail.Len())
	}
}

func TestCursorWalksEveryChunkInOrder(t *testing.T) {
	s := "abcdefghijklmnopqrstuvwxyz"
	tr := buildFromString(t, s, 4, 4)

	cur := tr.CursorFront()
	var sb strings.Builder
	for {
		c, lo, hi := cur.Current()
		sb.WriteString(string(c[lo:hi]))
		if cur.IsAtBack() {
			break
		}
		if !cur.MoveNextChunk() {
			break
		}
	}
	assert.Equal(t, s, sb.String())
}

func TestCursorAtPositionsCorrectly(t *testing.T) {
	s := "the quick brown fox"
	tr := buildFromString(t, s, 4, 4)

	cur := tr.CursorAt(10)
	assert.Equal(t, 10, cur.Position())
}
