package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segmentio/ksuid"

	"github.com/caretext/rope/pkg/docstore"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "caretext_registry_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := docstore.Open(filepath.Join(tmpDir, "db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(tmpDir, store, 0), tmpDir
}

func TestCreateAndGetOrOpen(t *testing.T) {
	reg, _ := newTestRegistry(t)

	doc, err := reg.Create("hello, world")
	require.NoError(t, err)
	assert.Equal(t, "hello, world", doc.Text())

	again, err := reg.GetOrOpen(doc.ID)
	require.NoError(t, err)
	assert.Same(t, doc, again, "GetOrOpen must return the already-open document, not a new one")
}

func TestAppendIsDurableAcrossReopen(t *testing.T) {
	reg, dataDir := newTestRegistry(t)

	doc, err := reg.Create("hello")
	require.NoError(t, err)
	require.NoError(t, doc.Append(", world"))
	require.NoError(t, reg.Close(doc.ID))

	store, err := docstore.Open(filepath.Join(dataDir, "db"))
	require.NoError(t, err)
	defer store.Close()
	reopened := New(dataDir, store, 0)

	recovered, err := reopened.GetOrOpen(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", recovered.Text())
}

func TestReplaceRangeRecoversFromJournal(t *testing.T) {
	reg, dataDir := newTestRegistry(t)

	doc, err := reg.Create("the quick brown fox")
	require.NoError(t, err)
	require.NoError(t, doc.ReplaceRange(4, 9, "slow"))
	// Simulate a crash: no Close/Snapshot before reopening, so recovery
	// must replay the journal rather than rely on a fresh snapshot.

	store, err := docstore.Open(filepath.Join(dataDir, "db"))
	require.NoError(t, err)
	defer store.Close()
	reopened := New(dataDir, store, 0)

	recovered, err := reopened.GetOrOpen(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "the slow brown fox", recovered.Text())
}

func TestDeleteRemovesSnapshot(t *testing.T) {
	reg, _ := newTestRegistry(t)
	doc, err := reg.Create("content")
	require.NoError(t, err)
	require.NoError(t, reg.Close(doc.ID))
	require.NoError(t, reg.Delete(doc.ID))

	_, err = reg.GetOrOpen(doc.ID)
	assert.Error(t, err)
}

func TestListReturnsCreatedDocuments(t *testing.T) {
	reg, _ := newTestRegistry(t)
	doc1, err := reg.Create("a")
	require.NoError(t, err)
	doc2, err := reg.Create("b")
	require.NoError(t, err)

	ids, err := reg.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{doc1.ID.String(), doc2.ID.String()}, idStrings(ids))
}

func TestCloseAllSnapshotsEveryOpenDocument(t *testing.T) {
	reg, dataDir := newTestRegistry(t)
	doc, err := reg.Create("x")
	require.NoError(t, err)
	require.NoError(t, doc.Append("y"))

	require.NoError(t, reg.CloseAll())

	store, err := docstore.Open(filepath.Join(dataDir, "db"))
	require.NoError(t, err)
	defer store.Close()
	content, err := store.Get(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "xy", string(content))
}

func TestStatReflectsSize(t *testing.T) {
	reg, _ := newTestRegistry(t)
	doc, err := reg.Create("abc\ndef")
	require.NoError(t, err)
	stat := doc.Stat()
	assert.Equal(t, 7, stat.Bytes)
	assert.Equal(t, 7, stat.Chars)
	assert.Equal(t, 2, stat.Lines)
}

func TestCreateWithNonzeroFsyncInterval(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "caretext_registry_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)
	store, err := docstore.Open(filepath.Join(tmpDir, "db"))
	require.NoError(t, err)
	defer store.Close()

	reg := New(tmpDir, store, 50*time.Millisecond)
	doc, err := reg.Create("x")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func idStrings(ids []ksuid.KSUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
