package journal

import "sync"

// Index tracks, for each open document, the byte offset in its journal
// file up to which the in-memory rope already reflects — i.e. the
// point replay should resume from after a snapshot.
type Index struct {
	mu      sync.RWMutex
	offsets map[string]int64
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{offsets: make(map[string]int64)}
}

// Set records docID's replay offset.
func (idx *Index) Set(docID string, offset int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.offsets[docID] = offset
}

// Get returns docID's replay offset, or (0, false) if unknown.
func (idx *Index) Get(docID string) (int64, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	off, ok := idx.offsets[docID]
	return off, ok
}

// Delete forgets docID's replay offset.
func (idx *Index) Delete(docID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.offsets, docID)
}

// BuildFromReader replays every record in r, invoking apply for each,
// and records the final offset for docID. Used to recover a document's
// rope from its last snapshot plus any trailing journal records.
func (idx *Index) BuildFromReader(docID string, r *Reader, apply func(*Record) error) error {
	it := r.Iterator()
	for it.Next() {
		if err := apply(it.Record()); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	idx.Set(docID, r.Offset())
	return nil
}
