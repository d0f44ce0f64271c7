// Package docstore persists full document snapshots durably so that a
// document's rope can be reconstructed without replaying its entire
// journal from the beginning. Snapshots are zstd-compressed before
// being written to a pebble keyspace keyed by the document's KSUID.
package docstore

import (
	"github.com/DataDog/zstd"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Store is a durable, compressed key-value snapshot store keyed by
// document ID.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if needed) the pebble database at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewDocumentID mints a fresh, time-ordered document identifier.
func NewDocumentID() ksuid.KSUID { return ksuid.New() }

// ParseDocumentID parses s as a KSUID.
func ParseDocumentID(s string) (ksuid.KSUID, error) { return ksuid.Parse(s) }

// Put compresses content and writes it as id's latest snapshot.
func (s *Store) Put(id ksuid.KSUID, content []byte) error {
	compressed, err := zstd.Compress(nil, content)
	if err != nil {
		return err
	}
	return s.db.Set(id.Bytes(), compressed, pebble.Sync)
}

// Get reads and decompresses id's latest snapshot.
func (s *Store) Get(id ksuid.KSUID) ([]byte, error) {
	compressed, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return zstd.Decompress(nil, compressed)
}

// Delete removes id's snapshot.
func (s *Store) Delete(id ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.Sync)
}

// List returns every document ID with a stored snapshot, in key
// (creation-time) order.
func (s *Store) List() ([]ksuid.KSUID, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, iter.Error()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
