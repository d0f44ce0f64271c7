package registry

import (
	"path/filepath"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/caretext/rope/pkg/docstore"
	"github.com/caretext/rope/pkg/journal"
	"github.com/caretext/rope/pkg/rope"
)

// Document pairs an in-memory rope with the journal that durably
// records every mutation applied to it.
type Document struct {
	ID      ksuid.KSUID
	mu      sync.RWMutex
	rope    *rope.Rope
	writer  *journal.Writer
	store   *docstore.Store
	journal string // journal file path, removed by Registry.Close/CloseAll after a snapshot
}

// Stats summarizes a document's current content.
type Stats struct {
	Bytes int
	Chars int
	Lines int
}

// Text returns the document's full current content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rope.String()
}

// Stat returns the document's current size statistics.
func (d *Document) Stat() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Stats{Bytes: d.rope.Len(), Chars: d.rope.CharLen(), Lines: d.rope.LineLen()}
}

// Append appends text to the document, journaling the edit before
// applying it to the in-memory rope.
func (d *Document) Append(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.writer.Append(journal.NewRecord(journal.OpAppend, int64(d.rope.Len()), 0, []byte(text))); err != nil {
		return err
	}
	addition, err := rope.FromString(text)
	if err != nil {
		return err
	}
	d.rope.Append(addition)
	return nil
}

// ReplaceRange replaces [start, end) with replacement, journaling the
// edit before applying it.
func (d *Document) ReplaceRange(start, end int, replacement string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.writer.Append(journal.NewRecord(journal.OpReplaceRange, int64(start), int64(end), []byte(replacement))); err != nil {
		return err
	}
	repl, err := rope.FromString(replacement)
	if err != nil {
		return err
	}
	return d.rope.ReplaceRange(start, end, repl)
}

// Snapshot flushes the document's current content to durable storage
// and fsyncs its journal. It does not truncate the journal: recovery
// replays the whole journal file on top of the snapshot, so
// Registry.Close and CloseAll delete the file after snapshotting.
func (d *Document) Snapshot() error {
	d.mu.RLock()
	content := d.rope.String()
	d.mu.RUnlock()

	if err := d.store.Put(d.ID, []byte(content)); err != nil {
		return err
	}
	return d.writer.Sync()
}

// Close flushes and closes the document's journal writer.
func (d *Document) Close() error {
	return d.writer.Close()
}

func journalPath(dataDir string, id ksuid.KSUID) string {
	return filepath.Join(dataDir, "journal", id.String()+".log")
}

func applyRecord(r *rope.Rope, rec *journal.Record) error {
	switch rec.Op {
	case journal.OpAppend:
		addition, err := rope.FromString(string(rec.Payload))
		if err != nil {
			return err
		}
		r.Append(addition)
	case journal.OpReplaceRange:
		repl, err := rope.FromString(string(rec.Payload))
		if err != nil {
			return err
		}
		return r.ReplaceRange(int(rec.Start), int(rec.End), repl)
	case journal.OpTruncateFront:
		return r.TruncateFront(int(rec.Start))
	case journal.OpTruncateBack:
		return r.TruncateBack(int(rec.End))
	}
	return nil
}
