package journal

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	FilePath      string        // path to this document's journal file
	FsyncInterval time.Duration // 0 means fsync every write
	BufferSize    int           // write buffer size; 0 uses bufio's default
}

// Writer appends framed edit records to a document's journal file.
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	fsyncTimer *time.Timer
	config     WriterConfig
	mutex      sync.Mutex
	offset     int64
}

// NewWriter opens (creating if needed) the journal file at
// config.FilePath for append-only writes.
func NewWriter(config WriterConfig) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, os.SEEK_END); err != nil {
		file.Close()
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	bufSize := config.BufferSize
	var bw *bufio.Writer
	if bufSize > 0 {
		bw = bufio.NewWriterSize(file, bufSize)
	} else {
		bw = bufio.NewWriter(file)
	}

	w := &Writer{file: file, writer: bw, config: config, offset: stat.Size()}
	if config.FsyncInterval > 0 {
		w.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			w.mutex.Lock()
			defer w.mutex.Unlock()
			w.sync()
		})
	}
	return w, nil
}

// Append writes r to the journal and returns the byte offset at which
// it begins.
func (w *Writer) Append(r *Record) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	data, err := Encode(r)
	if err != nil {
		return 0, err
	}
	n, err := w.writer.Write(data)
	if err != nil {
		return 0, err
	}
	recordOffset := w.offset
	w.offset += int64(n)

	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			return 0, err
		}
	} else if w.fsyncTimer != nil {
		w.fsyncTimer.Reset(w.config.FsyncInterval)
	}
	return recordOffset, nil
}

// Sync forces a flush and fsync.
func (w *Writer) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.sync()
}

func (w *Writer) sync() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Size returns the current journal file size in bytes.
func (w *Writer) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Close flushes, fsyncs, and closes the journal file.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}
	if err := w.sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
