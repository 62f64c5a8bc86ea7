// Package molecule implements the subset of the molecule serialization
// format needed to build and parse CKB scripts and lock arguments: fixed
// size byte arrays, little endian integers, byte vectors (fixvec<byte>)
// and tables.
package molecule

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the size in bytes of a molecule length or offset word.
const HeaderSize = 4

// ErrMalformed is returned whenever a byte string does not follow the
// expected molecule layout.
var ErrMalformed = errors.New("malformed molecule data")

// Writer serializes molecule primitives into an internal buffer.
type Writer struct {
	buffer *bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{bytes.NewBuffer(nil)}
}

// Bytes returns writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buffer.Bytes()
}

// WriteUint32 writes the given uint32 value as little endian.
func (w *Writer) WriteUint32(val uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], val)
	w.buffer.Write(b[:])
}

// WriteUint64 writes the given uint64 value as little endian.
func (w *Writer) WriteUint64(val uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], val)
	w.buffer.Write(b[:])
}

// WriteSlice appends the given bytes as they are.
func (w *Writer) WriteSlice(val []byte) {
	w.buffer.Write(val)
}

// WriteFixVec appends the given bytes prefixed by their length, i.e. as a
// molecule fixvec<byte>.
func (w *Writer) WriteFixVec(val []byte) {
	w.WriteUint32(uint32(len(val)))
	w.WriteSlice(val)
}

// Uint32 returns the molecule serialization of a Uint32.
func Uint32(val uint32) []byte {
	w := NewWriter()
	w.WriteUint32(val)
	return w.Bytes()
}

// Uint64 returns the molecule serialization of a Uint64.
func Uint64(val uint64) []byte {
	w := NewWriter()
	w.WriteUint64(val)
	return w.Bytes()
}

// FixVec returns the molecule serialization of a fixvec<byte>.
func FixVec(val []byte) []byte {
	w := NewWriter()
	w.WriteFixVec(val)
	return w.Bytes()
}

// Table returns the molecule serialization of a table made of the given
// already serialized fields, in order.
//
//	total_size | offset_0 | ... | offset_n-1 | field_0 | ... | field_n-1
func Table(fields ...[]byte) []byte {
	headerSize := HeaderSize * (len(fields) + 1)
	total := headerSize
	for _, f := range fields {
		total += len(f)
	}

	w := NewWriter()
	w.WriteUint32(uint32(total))
	offset := headerSize
	for _, f := range fields {
		w.WriteUint32(uint32(offset))
		offset += len(f)
	}
	for _, f := range fields {
		w.WriteSlice(f)
	}
	return w.Bytes()
}

// ReadUint32 parses a molecule Uint32. The input must be exactly 4 bytes.
func ReadUint32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("%w: uint32 requires 4 bytes, got %d", ErrMalformed, len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 parses a molecule Uint64. The input must be exactly 8 bytes.
func ReadUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: uint64 requires 8 bytes, got %d", ErrMalformed, len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadFixVec parses a molecule fixvec<byte> and returns its items. The
// declared length must match the input size exactly.
func ReadFixVec(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: fixvec header requires %d bytes, got %d",
			ErrMalformed, HeaderSize, len(data))
	}
	n := binary.LittleEndian.Uint32(data)
	if uint64(n)+HeaderSize != uint64(len(data)) {
		return nil, fmt.Errorf("%w: fixvec declares %d items but carries %d bytes",
			ErrMalformed, n, len(data)-HeaderSize)
	}
	items := make([]byte, n)
	copy(items, data[HeaderSize:])
	return items, nil
}

// ReadTable splits a molecule table into its raw fields. The table must
// declare exactly fieldCount fields.
func ReadTable(data []byte, fieldCount int) ([][]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: table header requires %d bytes, got %d",
			ErrMalformed, HeaderSize, len(data))
	}
	total := binary.LittleEndian.Uint32(data)
	if uint64(total) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: table declares %d bytes but has %d",
			ErrMalformed, total, len(data))
	}

	headerSize := HeaderSize * (fieldCount + 1)
	if fieldCount == 0 {
		if len(data) != HeaderSize {
			return nil, fmt.Errorf("%w: empty table must be %d bytes", ErrMalformed, HeaderSize)
		}
		return [][]byte{}, nil
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: table header requires %d bytes, got %d",
			ErrMalformed, headerSize, len(data))
	}

	offsets := make([]int, fieldCount+1)
	for i := 0; i < fieldCount; i++ {
		start := HeaderSize * (i + 1)
		offsets[i] = int(binary.LittleEndian.Uint32(data[start : start+HeaderSize]))
	}
	offsets[fieldCount] = len(data)

	if offsets[0] != headerSize {
		return nil, fmt.Errorf("%w: table declares %d fields, expected %d",
			ErrMalformed, offsets[0]/HeaderSize-1, fieldCount)
	}

	for i := 0; i < fieldCount; i++ {
		if offsets[i] > len(data) {
			return nil, fmt.Errorf("%w: field %d has offset %d past table end %d",
				ErrMalformed, i, offsets[i], len(data))
		}
		if offsets[i] > offsets[i+1] {
			return nil, fmt.Errorf("%w: field %d has offset %d past next offset %d",
				ErrMalformed, i, offsets[i], offsets[i+1])
		}
	}

	fields := make([][]byte, fieldCount)
	for i := 0; i < fieldCount; i++ {
		fields[i] = data[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}
