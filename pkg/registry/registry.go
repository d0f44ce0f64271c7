// Package registry tracks open documents in memory, lazily recovering
// each one from its last durable snapshot plus any trailing journal
// records the first time it is touched.
package registry

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/caretext/rope/pkg/docstore"
	"github.com/caretext/rope/pkg/journal"
	"github.com/caretext/rope/pkg/rope"
)

// Registry is the in-memory bookkeeping of open documents, mirroring
// the map+RWMutex accessor shape used elsewhere in this module for
// per-key state, keyed here by document ID instead of field name.
type Registry struct {
	dataDir       string
	store         *docstore.Store
	fsyncInterval time.Duration

	mu   sync.RWMutex
	docs map[ksuid.KSUID]*Document
}

// New returns a Registry backed by store for snapshots, with journal
// files under dataDir/journal.
func New(dataDir string, store *docstore.Store, fsyncInterval time.Duration) *Registry {
	return &Registry{dataDir: dataDir, store: store, fsyncInterval: fsyncInterval, docs: make(map[ksuid.KSUID]*Document)}
}

// Create mints a fresh document ID, writes its initial content as a
// snapshot, and opens it for editing.
func (r *Registry) Create(content string) (*Document, error) {
	id := docstore.NewDocumentID()
	if err := r.store.Put(id, []byte(content)); err != nil {
		return nil, err
	}
	return r.GetOrOpen(id)
}

// GetOrOpen returns the already-open document for id, or recovers it
// from its last snapshot plus any journal records written since.
func (r *Registry) GetOrOpen(id ksuid.KSUID) (*Document, error) {
	r.mu.RLock()
	if doc, ok := r.docs[id]; ok {
		r.mu.RUnlock()
		return doc, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok {
		return doc, nil
	}

	content, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	rp, err := rope.FromString(string(content))
	if err != nil {
		return nil, err
	}

	path := journalPath(r.dataDir, id)
	if err := r.replayJournal(id, rp, path); err != nil {
		return nil, err
	}

	writer, err := journal.NewWriter(journal.WriterConfig{FilePath: path, FsyncInterval: r.fsyncInterval})
	if err != nil {
		return nil, err
	}

	doc := &Document{ID: id, rope: rp, writer: writer, store: r.store, journal: path}
	r.docs[id] = doc
	return doc, nil
}

func (r *Registry) replayJournal(id ksuid.KSUID, rp *rope.Rope, path string) error {
	reader, err := journal.NewReader(journal.ReaderConfig{FilePath: path})
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	defer reader.Close()

	it := reader.Iterator()
	for it.Next() {
		if err := applyRecord(rp, it.Record()); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}

// Close snapshots and closes a single open document, evicting it from
// the registry.
func (r *Registry) Close(id ksuid.KSUID) error {
	r.mu.Lock()
	doc, ok := r.docs[id]
	if ok {
		delete(r.docs, id)
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}
	if err := doc.Snapshot(); err != nil {
		doc.Close()
		return err
	}
	if err := doc.Close(); err != nil {
		return err
	}
	return removeJournal(doc.journal)
}

// removeJournal deletes a closed document's journal once its snapshot
// holds every edit, so reopening does not replay them a second time.
func removeJournal(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Delete removes a document's durable snapshot. The caller is
// responsible for closing it first if currently open.
func (r *Registry) Delete(id ksuid.KSUID) error {
	r.mu.Lock()
	delete(r.docs, id)
	r.mu.Unlock()
	return r.store.Delete(id)
}

// List returns the IDs of every document with a durable snapshot.
func (r *Registry) List() ([]ksuid.KSUID, error) {
	return r.store.List()
}

// CloseAll snapshots and closes every currently open document.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	docs := make([]*Document, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d)
	}
	r.docs = make(map[ksuid.KSUID]*Document)
	r.mu.Unlock()

	var firstErr error
	for _, d := range docs {
		snapErr := d.Snapshot()
		closeErr := d.Close()
		if snapErr == nil && closeErr == nil {
			closeErr = removeJournal(d.journal)
		}
		if snapErr != nil && firstErr == nil {
			firstErr = snapErr
		}
		if closeErr != nil && firstErr == nil {
			firstErr = closeErr
		}
	}
	return firstErr
}
