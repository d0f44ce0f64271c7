package journal

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	FilePath    string
	StartOffset int64
}

// Reader provides sequential access to the records in a journal file.
type Reader struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	config ReaderConfig
}

// NewReader opens the journal file at config.FilePath for sequential
// reads, optionally starting past config.StartOffset.
func NewReader(config ReaderConfig) (*Reader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}
	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, 0); err != nil {
			file.Close()
			return nil, err
		}
	}
	return &Reader{file: file, reader: bufio.NewReader(file), offset: config.StartOffset, config: config}, nil
}

// ReadNext reads the next record, returning io.EOF once the journal is
// exhausted.
func (r *Reader) ReadNext() (*Record, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r.reader, header)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	r.offset += int64(n)

	payloadSize := int(binary.LittleEndian.Uint32(header[21:25]))
	full := make([]byte, headerSize+payloadSize)
	copy(full, header)
	if payloadSize > 0 {
		n, err = io.ReadFull(r.reader, full[headerSize:])
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrCorruption
			}
			return nil, err
		}
		r.offset += int64(n)
	}

	return Decode(full)
}

// Offset returns the reader's current byte offset.
func (r *Reader) Offset() int64 { return r.offset }

// Close closes the underlying file.
func (r *Reader) Close() error { return r.file.Close() }

// Iterator streams records from the reader until EOF or error.
type Iterator struct {
	reader *Reader
	record *Record
	err    error
}

// Iterator returns a streaming iterator over r's remaining records.
func (r *Reader) Iterator() *Iterator { return &Iterator{reader: r} }

// Next advances the iterator, reporting whether a record was read.
func (it *Iterator) Next() bool {
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

// Record returns the record most recently read by Next.
func (it *Iterator) Record() *Record { return it.record }

// Err returns the error that stopped iteration, if any other than EOF.
func (it *Iterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}
