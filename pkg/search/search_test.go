package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretext/rope/pkg/docstore"
	"github.com/caretext/rope/pkg/registry"
)

func newTestEngine(t *testing.T) (*Engine, *registry.Registry) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "caretext_search_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := docstore.Open(filepath.Join(tmpDir, "db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reg := registry.New(tmpDir, store, 0)
	return New(reg), reg
}

func TestFindReturnsEveryMatch(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("the cat sat on the mat, the cat slept")
	require.NoError(t, err)

	matches, err := engine.Find(context.Background(), doc.ID, "cat")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 4, matches[0].Byte)
	assert.Equal(t, 28, matches[1].Byte)
}

func TestFindRejectsEmptyQuery(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("content")
	require.NoError(t, err)

	_, err = engine.Find(context.Background(), doc.ID, "")
	assert.Error(t, err)
}

func TestFindComputesLineNumber(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("line zero\nline one\nline two target")
	require.NoError(t, err)

	matches, err := engine.Find(context.Background(), doc.ID, "target")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
}

func TestLineRangeExtractsHalfOpenRange(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("alpha\nbeta\ngamma\ndelta")
	require.NoError(t, err)

	text, err := engine.LineRange(context.Background(), doc.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "beta\ngamma", text)
}

func TestLineRangeRejectsInvertedRange(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("a\nb\nc")
	require.NoError(t, err)

	_, err = engine.LineRange(context.Background(), doc.ID, 2, 1)
	assert.Error(t, err)
}

func TestByteAtResolvesCharAndLine(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("ab\ncd\nef")
	require.NoError(t, err)

	charIdx, lineIdx, err := engine.ByteAt(context.Background(), doc.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, charIdx)
	assert.Equal(t, 2, lineIdx)
}

func TestByteAtRejectsOutOfRange(t *testing.T) {
	engine, reg := newTestEngine(t)
	doc, err := reg.Create("abc")
	require.NoError(t, err)

	_, _, err = engine.ByteAt(context.Background(), doc.ID, 99)
	assert.Error(t, err)
}
