// Package journal implements the append-only edit log that backs each
// open document: every mutation is framed, checksummed, and appended
// before it is applied to the in-memory rope, so a crash can replay the
// log against the last durable snapshot.
package journal

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Op tags the kind of edit a Record carries.
type Op uint8

const (
	OpAppend Op = iota
	OpReplaceRange
	OpTruncateFront
	OpTruncateBack
)

// Record is one framed entry in a document's edit log.
// Wire format: [CRC32(4)][Op(1)][Start(8)][End(8)][PayloadSize(4)][Payload]
type Record struct {
	CRC32       uint32
	Op          Op
	Start       int64
	End         int64
	PayloadSize uint32
	Payload     []byte
}

const headerSize = 4 + 1 + 8 + 8 + 4

// NewRecord builds a record for op, ready to be Encoded.
func NewRecord(op Op, start, end int64, payload []byte) *Record {
	return &Record{Op: op, Start: start, End: end, PayloadSize: uint32(len(payload)), Payload: payload}
}

// Size returns the total encoded size of the record.
func (r *Record) Size() int { return headerSize + len(r.Payload) }

// Encode serializes r into its on-disk framing, computing the CRC32
// over everything but the checksum field itself.
func Encode(r *Record) ([]byte, error) {
	buf := make([]byte, headerSize+len(r.Payload))
	buf[4] = byte(r.Op)
	binary.LittleEndian.PutUint64(buf[5:13], uint64(r.Start))
	binary.LittleEndian.PutUint64(buf[13:21], uint64(r.End))
	binary.LittleEndian.PutUint32(buf[21:25], r.PayloadSize)
	copy(buf[headerSize:], r.Payload)

	crc := crc32.ChecksumIEEE(buf[4:])
	binary.LittleEndian.PutUint32(buf[0:4], crc)
	r.CRC32 = crc
	return buf, nil
}

// Decode parses a full record (header + payload) from data.
func Decode(data []byte) (*Record, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("journal: record shorter than header (%d bytes)", len(data))
	}
	r := &Record{
		CRC32:       binary.LittleEndian.Uint32(data[0:4]),
		Op:          Op(data[4]),
		Start:       int64(binary.LittleEndian.Uint64(data[5:13])),
		End:         int64(binary.LittleEndian.Uint64(data[13:21])),
		PayloadSize: binary.LittleEndian.Uint32(data[21:25]),
	}
	want := headerSize + int(r.PayloadSize)
	if len(data) < want {
		return nil, fmt.Errorf("journal: truncated record, want %d bytes got %d", want, len(data))
	}
	r.Payload = data[headerSize:want]
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate recomputes the CRC32 over the record's body and compares it
// against the stored checksum.
func (r *Record) Validate() error {
	crc := crc32.NewIEEE()
	crc.Write([]byte{byte(r.Op)})
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(r.Start))
	crc.Write(scratch[:])
	binary.LittleEndian.PutUint64(scratch[:], uint64(r.End))
	crc.Write(scratch[:])
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], r.PayloadSize)
	crc.Write(sizeBuf[:])
	crc.Write(r.Payload)
	if crc.Sum32() != r.CRC32 {
		return ErrCorruption
	}
	return nil
}
